package ctaeb

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgCountError is an error indicating that a variable's index exceeds the
// number of arguments supplied to an evaluation.
type ArgCountError struct {
	// Index is the variable's 1-based index.
	Index int
	// Name is the variable's display name.
	Name string
	// Given is the number of arguments that were supplied.
	Given int
}

func (err *ArgCountError) Error() string {
	return "variable " + strconv.Quote(err.Name) + " needs argument " +
		strconv.Itoa(err.Index) + " but " + strconv.Itoa(err.Given) + " given"
}

// TypeError is an error indicating that an operation has no semantics for
// the concrete operand types of one call. The expression stays usable with a
// compatible combination of argument types.
type TypeError struct {
	// Symbol is the operation's printed symbol.
	Symbol string
	// Args are the offending operand values.
	Args []any
}

func (err *TypeError) Error() string {
	var b strings.Builder
	b.WriteString("operation ")
	b.WriteString(strconv.Quote(strings.TrimSpace(err.Symbol)))
	b.WriteString(" undefined for (")
	for i, a := range err.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%T", a)
	}
	b.WriteString(")")
	return b.String()
}

// OpError is an error indicating an operation tag with no registry entry.
type OpError struct {
	// Tag is the unregistered tag.
	Tag OpTag
}

func (err *OpError) Error() string {
	return "operation " + strconv.Quote(string(err.Tag)) + " is not registered"
}

// DomainError is an error returned when an operation is applied to an
// argument outside its domain.
type DomainError struct {
	// X is the out-of-domain operand.
	X any
	// Func is the symbol of the operation.
	Func string
}

func (err *DomainError) Error() string {
	return fmt.Sprintf("%v outside domain of %s", err.X, err.Func)
}

var (
	_ error = (*ArgCountError)(nil)
	_ error = (*TypeError)(nil)
	_ error = (*OpError)(nil)
	_ error = (*DomainError)(nil)
)
