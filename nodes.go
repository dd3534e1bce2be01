package ctaeb

import "strconv"

// Expr is a node in an expression tree: a Constant, a Variable, or a
// Compound. The set of implementations is closed.
type Expr interface {
	// Eval substitutes args for the variables in the tree and applies the
	// captured operations bottom-up. Evaluation never mutates the tree, so
	// the same expression may be evaluated any number of times, with
	// different argument lists, from any number of goroutines.
	Eval(args ...any) (any, error)

	// String renders the expression as text. See Render.
	String() string

	expr()
}

// Constant is a leaf holding an immutable value. Evaluating a constant
// ignores the argument list and returns the value unchanged.
type Constant struct {
	value any
}

// Lit wraps a value into a Constant. Builders call it implicitly for
// operands that are not expressions, so it is rarely needed directly.
func Lit(v any) Constant {
	return Constant{value: v}
}

// Value returns the held value.
func (c Constant) Value() any {
	return c.value
}

func (Constant) expr() {}

// Variable is a leaf that resolves to one positional argument at evaluation
// time. Variables carry no state between evaluations; any number of Variable
// values with the same index resolve to the same argument.
type Variable struct {
	index int
	name  string
}

// Var creates a variable with 1-based index n and the generated display name
// "_n". Var panics if n < 1.
func Var(n int) Variable {
	if n < 1 {
		panic("ctaeb: variable index " + strconv.Itoa(n) + " out of range")
	}
	return Variable{index: n, name: "_" + strconv.Itoa(n)}
}

// NamedVar creates a variable with 1-based index n and an explicit display
// name. NamedVar panics if n < 1.
func NamedVar(n int, name string) Variable {
	v := Var(n)
	v.name = name
	return v
}

// Index returns the variable's 1-based positional index.
func (v Variable) Index() int {
	return v.index
}

// Name returns the variable's display name.
func (v Variable) Name() string {
	return v.name
}

func (Variable) expr() {}

// Compound joins child expressions with an operation. The children and their
// order are fixed at construction; a compound owns its entire subtree.
type Compound struct {
	op   OpTag
	kids []Expr
}

// NewCompound builds a compound from an operation tag and its operands.
// Operands that are not expressions are wrapped into Constants, keeping
// their original types. NewCompound panics when given no operands.
func NewCompound(op OpTag, operands ...any) Compound {
	if len(operands) == 0 {
		panic("ctaeb: compound " + strconv.Quote(string(op)) + " with no operands")
	}
	kids := make([]Expr, len(operands))
	for i, v := range operands {
		kids[i] = lift(v)
	}
	return Compound{op: op, kids: kids}
}

// lift wraps non-expression values into Constants.
func lift(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return Lit(v)
}

// Op returns the compound's operation tag.
func (c Compound) Op() OpTag {
	return c.op
}

// Children returns a copy of the compound's child expressions.
func (c Compound) Children() []Expr {
	return append([]Expr(nil), c.kids...)
}

func (Compound) expr() {}

// NumArgs returns the minimum number of arguments needed to evaluate the
// expression, which is the largest variable index anywhere in the tree.
func NumArgs(e Expr) int {
	switch e := e.(type) {
	case Variable:
		return e.index
	case Compound:
		n := 0
		for _, k := range e.kids {
			if m := NumArgs(k); m > n {
				n = m
			}
		}
		return n
	}
	return 0
}

// Vars returns the display names of the variables in the expression, ordered
// by index. Indices that do not occur in the tree are skipped. When several
// variables share an index, the name of the first one found wins.
func Vars(e Expr) []string {
	names := make(map[int]string)
	walkvars(e, names)
	if len(names) == 0 {
		return nil
	}
	r := make([]string, 0, len(names))
	for i := 1; len(r) < len(names); i++ {
		if s, ok := names[i]; ok {
			r = append(r, s)
		}
	}
	return r
}

func walkvars(e Expr, names map[int]string) {
	switch e := e.(type) {
	case Variable:
		if _, ok := names[e.index]; !ok {
			names[e.index] = e.name
		}
	case Compound:
		for _, k := range e.kids {
			walkvars(k, names)
		}
	}
}
