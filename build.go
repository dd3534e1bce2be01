package ctaeb

// The builders below are the construction surface of the library. Each takes
// operands that are either expressions or plain values; plain values are
// wrapped into Constants with their original types, so Add(x, 1) builds the
// tree for x + 1. At least one operand is usually an expression, although a
// tree of constants is legal and evaluates with an empty argument list.

// Add builds the (x + y) expression.
func Add(x, y any) Compound { return NewCompound(OpAdd, x, y) }

// Sub builds the (x - y) expression.
func Sub(x, y any) Compound { return NewCompound(OpSub, x, y) }

// Mul builds the (x * y) expression.
func Mul(x, y any) Compound { return NewCompound(OpMul, x, y) }

// Quo builds the (x / y) expression.
func Quo(x, y any) Compound { return NewCompound(OpQuo, x, y) }

// Eq builds the (x == y) expression. The comparison is not performed here;
// it resolves only when the built expression is evaluated.
func Eq(x, y any) Compound { return NewCompound(OpEq, x, y) }

// Ne builds the (x != y) expression.
func Ne(x, y any) Compound { return NewCompound(OpNe, x, y) }

// Lt builds the (x < y) expression.
func Lt(x, y any) Compound { return NewCompound(OpLt, x, y) }

// Le builds the (x <= y) expression.
func Le(x, y any) Compound { return NewCompound(OpLe, x, y) }

// Gt builds the (x > y) expression.
func Gt(x, y any) Compound { return NewCompound(OpGt, x, y) }

// Ge builds the (x >= y) expression.
func Ge(x, y any) Compound { return NewCompound(OpGe, x, y) }

// And builds the (x && y) expression. Evaluation short-circuits: the second
// operand stays unevaluated when the first is falsy.
func And(x, y any) Compound { return NewCompound(OpAnd, x, y) }

// Or builds the (x || y) expression. Evaluation short-circuits: the second
// operand stays unevaluated when the first is truthy.
func Or(x, y any) Compound { return NewCompound(OpOr, x, y) }

// Pow builds the (x ^ y) exponentiation expression.
func Pow(x, y any) Compound { return NewCompound(OpPow, x, y) }

// Not builds the logical negation of x.
func Not(x any) Compound { return NewCompound(OpNot, x) }

// Neg builds the arithmetic negation of x.
func Neg(x any) Compound { return NewCompound(OpNeg, x) }

// Exp builds the exp(x) expression.
func Exp(x any) Compound { return NewCompound(OpExp, x) }

// Log builds the natural logarithm expression log(x).
func Log(x any) Compound { return NewCompound(OpLog, x) }

// Sqrt builds the sqrt(x) expression.
func Sqrt(x any) Compound { return NewCompound(OpSqrt, x) }
