package ctaeb

import (
	"fmt"
	"io"
	"strings"
)

// Render formats an expression and, recursively, its subtree. Constants
// render through fmt, variables as their display names. A compound with a
// single operand renders as "sym(x)" when its operation is Prefix and as the
// symbol directly followed by the operand otherwise; two operands render
// infix as "x sym y" unless the operation is Prefix; three or more always
// render as "sym(x, y, ...)". Rendering a tag with no registry entry reports
// an OpError.
func Render(e Expr) (string, error) {
	var b strings.Builder
	if err := render(&b, e); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Fprint writes the rendered expression to w.
func Fprint(w io.Writer, e Expr) error {
	s, err := Render(e)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func render(b *strings.Builder, e Expr) error {
	switch e := e.(type) {
	case Constant:
		fmt.Fprintf(b, "%v", e.value)
	case Variable:
		b.WriteString(e.name)
	case Compound:
		op, ok := lookup(e.op)
		if !ok {
			return &OpError{Tag: e.op}
		}
		switch {
		case len(e.kids) == 1 && op.Fixing != Prefix:
			// "-x"; a symbol with a trailing space gives "not x".
			b.WriteString(op.Symbol)
			return render(b, e.kids[0])
		case len(e.kids) == 2 && op.Fixing != Prefix:
			if err := render(b, e.kids[0]); err != nil {
				return err
			}
			b.WriteByte(' ')
			b.WriteString(op.Symbol)
			b.WriteByte(' ')
			return render(b, e.kids[1])
		default:
			b.WriteString(op.Symbol)
			b.WriteByte('(')
			for i, k := range e.kids {
				if i > 0 {
					b.WriteString(", ")
				}
				if err := render(b, k); err != nil {
					return err
				}
			}
			b.WriteByte(')')
		}
	}
	return nil
}

// String renders the constant's value.
func (c Constant) String() string {
	return fmt.Sprintf("%v", c.value)
}

// String returns the variable's display name.
func (v Variable) String() string {
	return v.name
}

// String renders the compound. If a reachable operation tag has no registry
// entry, the error text is returned in place of a rendering.
func (c Compound) String() string {
	s, err := Render(c)
	if err != nil {
		return "%!(" + err.Error() + ")"
	}
	return s
}
