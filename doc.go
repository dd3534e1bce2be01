// Package ctaeb builds and evaluates algebraic expression trees whose shape
// is fixed at construction.
//
// An expression is a Constant, a Variable, or a Compound joining child
// expressions with an operation. Variables resolve positionally from the
// argument list supplied at evaluation time, so the same tree can be built
// once and evaluated many times with different values, including values of
// different types:
//
//	x := ctaeb.NamedVar(1, "x")
//	y := ctaeb.NamedVar(2, "y")
//	sum := ctaeb.Add(x, y)
//	sum.Eval(3, 4)                // 7
//	sum.Eval("concat", "enation") // "concatenation"
//
// Operands keep their original types; the library never inserts a conversion
// on its own, so an operation applied to incompatible types reports a
// TypeError for that call, and the same tree stays usable with a compatible
// combination. Logical conjunction and disjunction short-circuit the way
// Go's && and || do. Custom operations plug in through Register.
package ctaeb
