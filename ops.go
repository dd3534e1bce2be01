package ctaeb

import (
	"errors"
	"math"
	"math/big"
	"reflect"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// OpTag identifies an operation in the process-wide registry.
type OpTag string

// Tags of the operations registered by default.
const (
	OpAdd OpTag = "add"
	OpSub OpTag = "sub"
	OpMul OpTag = "mul"
	OpQuo OpTag = "quo"

	OpEq OpTag = "eq"
	OpNe OpTag = "ne"
	OpLt OpTag = "lt"
	OpLe OpTag = "le"
	OpGt OpTag = "gt"
	OpGe OpTag = "ge"

	OpAnd OpTag = "and"
	OpOr  OpTag = "or"
	OpNot OpTag = "not"

	OpNeg  OpTag = "neg"
	OpPow  OpTag = "pow"
	OpExp  OpTag = "exp"
	OpLog  OpTag = "log"
	OpSqrt OpTag = "sqrt"
)

// Op is the executable semantics of an operation. Apply combines the
// evaluated child results into the compound's result. args has the
// compound's arity; Apply must not retain or modify it.
type Op interface {
	Apply(args []any) (any, error)
}

// OpFunc adapts a function to the Op interface.
type OpFunc func(args []any) (any, error)

// Apply calls f(args).
func (f OpFunc) Apply(args []any) (any, error) {
	return f(args)
}

// Fixing selects the printed form of an operation.
type Fixing int8

const (
	// Infix prints two operands around the symbol and a single operand
	// directly after it.
	Infix Fixing = iota
	// Prefix prints the symbol followed by the parenthesized operand list.
	Prefix
)

// Circuit selects the evaluation strategy of a two-operand operation. Any
// other arity always evaluates strictly.
type Circuit int8

const (
	// Strict evaluates every operand.
	Strict Circuit = iota
	// AndCircuit leaves the second operand unevaluated when the first is
	// falsy, returning false.
	AndCircuit
	// OrCircuit leaves the second operand unevaluated when the first is
	// truthy, returning true.
	OrCircuit
)

// Operation is a registry entry: the executable semantics of an operation
// together with its print metadata and evaluation strategy.
type Operation struct {
	Apply   Op
	Symbol  string
	Fixing  Fixing
	Circuit Circuit
}

var optab = make(map[OpTag]Operation)

// Register adds an operation to the registry. The first registration of a
// tag wins; registering a tag that is already known is a no-op. Entries are
// never removed or altered. Registration must complete before expressions
// using the tag are evaluated or rendered concurrently; lookups never lock.
func Register(tag OpTag, op Operation) error {
	if tag == "" {
		return errors.New("ctaeb: empty operation tag")
	}
	if op.Apply == nil {
		return errors.New("ctaeb: operation " + strconv.Quote(string(tag)) + " has no semantics")
	}
	if _, ok := optab[tag]; ok {
		return nil
	}
	optab[tag] = op
	return nil
}

func lookup(tag OpTag) (Operation, bool) {
	op, ok := optab[tag]
	return op, ok
}

func init() {
	builtins := map[OpTag]Operation{
		OpAdd: {Apply: OpFunc(addValues), Symbol: "+"},
		OpSub: {Apply: OpFunc(subValues), Symbol: "-"},
		OpMul: {Apply: OpFunc(mulValues), Symbol: "*"},
		OpQuo: {Apply: OpFunc(quoValues), Symbol: "/"},

		OpEq: {Apply: OpFunc(eqValues), Symbol: "=="},
		OpNe: {Apply: OpFunc(neValues), Symbol: "!="},
		OpLt: {Apply: cmpValues("<", func(c int) bool { return c < 0 }), Symbol: "<"},
		OpLe: {Apply: cmpValues("<=", func(c int) bool { return c <= 0 }), Symbol: "<="},
		OpGt: {Apply: cmpValues(">", func(c int) bool { return c > 0 }), Symbol: ">"},
		OpGe: {Apply: cmpValues(">=", func(c int) bool { return c >= 0 }), Symbol: ">="},

		OpAnd: {Apply: OpFunc(andValues), Symbol: "&&", Circuit: AndCircuit},
		OpOr:  {Apply: OpFunc(orValues), Symbol: "||", Circuit: OrCircuit},
		OpNot: {Apply: OpFunc(notValue), Symbol: "not "},

		OpNeg:  {Apply: OpFunc(negValue), Symbol: "-"},
		OpPow:  {Apply: OpFunc(powValues), Symbol: "^"},
		OpExp:  {Apply: monadic("exp", math.Exp, bigfloat.Exp), Symbol: "exp", Fixing: Prefix},
		OpLog:  {Apply: monadic("log", math.Log, bigfloat.Log), Symbol: "log", Fixing: Prefix},
		OpSqrt: {Apply: monadic("sqrt", math.Sqrt, (*big.Float).Sqrt), Symbol: "sqrt", Fixing: Prefix},
	}
	for tag, op := range builtins {
		if err := Register(tag, op); err != nil {
			panic(err)
		}
	}
}

// newFloat allocates a result with the wider of the operands' precisions.
// Builtin semantics never write through their operands; that keeps
// evaluation of a shared tree safe without locking.
func newFloat(x, y *big.Float) *big.Float {
	prec := x.Prec()
	if y != nil && y.Prec() > prec {
		prec = y.Prec()
	}
	return new(big.Float).SetPrec(prec)
}

// arityErr reports a TypeError unless an operation received exactly n
// operands. NewCompound accepts any arity for any tag, so the builtin
// semantics validate their own before indexing into args.
func arityErr(sym string, n int, args []any) error {
	if len(args) != n {
		return &TypeError{Symbol: sym, Args: args}
	}
	return nil
}

func addValues(args []any) (any, error) {
	if err := arityErr("+", 2, args); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case int:
		if y, ok := args[1].(int); ok {
			return x + y, nil
		}
	case int64:
		if y, ok := args[1].(int64); ok {
			return x + y, nil
		}
	case float64:
		if y, ok := args[1].(float64); ok {
			return x + y, nil
		}
	case string:
		if y, ok := args[1].(string); ok {
			return x + y, nil
		}
	case *big.Float:
		if y, ok := args[1].(*big.Float); ok {
			return newFloat(x, y).Add(x, y), nil
		}
	}
	return nil, &TypeError{Symbol: "+", Args: args}
}

func subValues(args []any) (any, error) {
	if err := arityErr("-", 2, args); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case int:
		if y, ok := args[1].(int); ok {
			return x - y, nil
		}
	case int64:
		if y, ok := args[1].(int64); ok {
			return x - y, nil
		}
	case float64:
		if y, ok := args[1].(float64); ok {
			return x - y, nil
		}
	case *big.Float:
		if y, ok := args[1].(*big.Float); ok {
			return newFloat(x, y).Sub(x, y), nil
		}
	}
	return nil, &TypeError{Symbol: "-", Args: args}
}

func mulValues(args []any) (any, error) {
	if err := arityErr("*", 2, args); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case int:
		if y, ok := args[1].(int); ok {
			return x * y, nil
		}
	case int64:
		if y, ok := args[1].(int64); ok {
			return x * y, nil
		}
	case float64:
		if y, ok := args[1].(float64); ok {
			return x * y, nil
		}
	case *big.Float:
		if y, ok := args[1].(*big.Float); ok {
			return newFloat(x, y).Mul(x, y), nil
		}
	}
	return nil, &TypeError{Symbol: "*", Args: args}
}

func quoValues(args []any) (any, error) {
	if err := arityErr("/", 2, args); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case int:
		if y, ok := args[1].(int); ok {
			if y == 0 {
				return nil, &DomainError{X: y, Func: "/"}
			}
			return x / y, nil
		}
	case int64:
		if y, ok := args[1].(int64); ok {
			if y == 0 {
				return nil, &DomainError{X: y, Func: "/"}
			}
			return x / y, nil
		}
	case float64:
		if y, ok := args[1].(float64); ok {
			// Guard against invalid divisions, 0/0 or inf/inf.
			if x == 0 && y == 0 || math.IsInf(x, 0) && math.IsInf(y, 0) {
				return nil, &DomainError{X: y, Func: "/"}
			}
			return x / y, nil
		}
	case *big.Float:
		if y, ok := args[1].(*big.Float); ok {
			if x.Sign() == 0 && y.Sign() == 0 || x.IsInf() && y.IsInf() {
				return nil, &DomainError{X: y, Func: "/"}
			}
			return newFloat(x, y).Quo(x, y), nil
		}
	}
	return nil, &TypeError{Symbol: "/", Args: args}
}

func eqValues(args []any) (any, error) {
	return sameValues("==", args)
}

func neValues(args []any) (any, error) {
	eq, err := sameValues("!=", args)
	if err != nil {
		return nil, err
	}
	return !eq, nil
}

// sameValues compares operands of one identical comparable type. Big floats
// compare by value so that equal numbers at different pointers are equal.
func sameValues(sym string, args []any) (bool, error) {
	if err := arityErr(sym, 2, args); err != nil {
		return false, err
	}
	if x, ok := args[0].(*big.Float); ok {
		if y, ok := args[1].(*big.Float); ok {
			return x.Cmp(y) == 0, nil
		}
		return false, &TypeError{Symbol: sym, Args: args}
	}
	t := reflect.TypeOf(args[0])
	if t == nil || t != reflect.TypeOf(args[1]) || !t.Comparable() {
		return false, &TypeError{Symbol: sym, Args: args}
	}
	return args[0] == args[1], nil
}

// cmpValues builds an ordering operation from a predicate on the comparison
// result.
func cmpValues(sym string, keep func(int) bool) OpFunc {
	return func(args []any) (any, error) {
		c, err := compareValues(sym, args)
		if err != nil {
			return nil, err
		}
		return keep(c), nil
	}
}

func compareValues(sym string, args []any) (int, error) {
	if err := arityErr(sym, 2, args); err != nil {
		return 0, err
	}
	switch x := args[0].(type) {
	case int:
		if y, ok := args[1].(int); ok {
			return ordered(x < y, x > y), nil
		}
	case int64:
		if y, ok := args[1].(int64); ok {
			return ordered(x < y, x > y), nil
		}
	case float64:
		if y, ok := args[1].(float64); ok {
			return ordered(x < y, x > y), nil
		}
	case string:
		if y, ok := args[1].(string); ok {
			return ordered(x < y, x > y), nil
		}
	case *big.Float:
		if y, ok := args[1].(*big.Float); ok {
			return x.Cmp(y), nil
		}
	}
	return 0, &TypeError{Symbol: sym, Args: args}
}

func ordered(lt, gt bool) int {
	switch {
	case lt:
		return -1
	case gt:
		return 1
	}
	return 0
}

// truthy implements the contextual boolean conversion used by the logical
// operations: booleans convert to themselves, supported numeric types to
// "is non-zero". sym names the operation in the error on any other type.
func truthy(sym string, v any) (bool, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	case *big.Float:
		return v.Sign() != 0, nil
	}
	return false, &TypeError{Symbol: sym, Args: []any{v}}
}

func andValues(args []any) (any, error) {
	if err := arityErr("&&", 2, args); err != nil {
		return nil, err
	}
	x, err := truthy("&&", args[0])
	if err != nil {
		return nil, err
	}
	y, err := truthy("&&", args[1])
	if err != nil {
		return nil, err
	}
	return x && y, nil
}

func orValues(args []any) (any, error) {
	if err := arityErr("||", 2, args); err != nil {
		return nil, err
	}
	x, err := truthy("||", args[0])
	if err != nil {
		return nil, err
	}
	y, err := truthy("||", args[1])
	if err != nil {
		return nil, err
	}
	return x || y, nil
}

func notValue(args []any) (any, error) {
	if err := arityErr("not", 1, args); err != nil {
		return nil, err
	}
	x, err := truthy("not", args[0])
	if err != nil {
		return nil, err
	}
	return !x, nil
}

func negValue(args []any) (any, error) {
	if err := arityErr("-", 1, args); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case int:
		return -x, nil
	case int64:
		return -x, nil
	case float64:
		return -x, nil
	case *big.Float:
		return newFloat(x, nil).Neg(x), nil
	}
	return nil, &TypeError{Symbol: "-", Args: args}
}

func powValues(args []any) (any, error) {
	if err := arityErr("^", 2, args); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case int:
		if y, ok := args[1].(int); ok {
			if y < 0 {
				return nil, &DomainError{X: y, Func: "^"}
			}
			r, ok := ipow(int64(x), int64(y))
			if !ok {
				return nil, &DomainError{X: x, Func: "^"}
			}
			return int(r), nil
		}
	case int64:
		if y, ok := args[1].(int64); ok {
			if y < 0 {
				return nil, &DomainError{X: y, Func: "^"}
			}
			r, ok := ipow(x, y)
			if !ok {
				return nil, &DomainError{X: x, Func: "^"}
			}
			return r, nil
		}
	case float64:
		if y, ok := args[1].(float64); ok {
			if x < 0 {
				return nil, &DomainError{X: x, Func: "^"}
			}
			return math.Pow(x, y), nil
		}
	case *big.Float:
		if y, ok := args[1].(*big.Float); ok {
			// Negative bases are rejected rather than left to produce NaN.
			if x.Signbit() {
				return nil, &DomainError{X: x, Func: "^"}
			}
			return bigfloat.Pow(newFloat(x, y), x, y), nil
		}
	}
	return nil, &TypeError{Symbol: "^", Args: args}
}

// ipow is exponentiation by squaring. y must be non-negative. ok is false
// when the result overflows int64.
func ipow(x, y int64) (r int64, ok bool) {
	r = int64(1)
	for y > 0 {
		if y&1 == 1 {
			if r, ok = mulInt64(r, x); !ok {
				return 0, false
			}
		}
		y >>= 1
		if y > 0 {
			if x, ok = mulInt64(x, x); !ok {
				return 0, false
			}
		}
	}
	return r, true
}

// mulInt64 is multiplication with an overflow check.
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a || a == math.MinInt64 && b == -1 || b == math.MinInt64 && a == -1 {
		return 0, false
	}
	return p, true
}

// monadic builds the semantics of a one-argument numeric function from its
// float64 and big.Float forms. The big.Float forms panic with big.ErrNaN on
// arguments outside their domain; that surfaces as a DomainError.
func monadic(sym string, f func(float64) float64, bf func(z, x *big.Float) *big.Float) OpFunc {
	return func(args []any) (r any, err error) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if _, ok := p.(big.ErrNaN); ok {
				r, err = nil, &DomainError{X: args[0], Func: sym}
				return
			}
			panic(p)
		}()
		if err := arityErr(sym, 1, args); err != nil {
			return nil, err
		}
		switch x := args[0].(type) {
		case float64:
			v := f(x)
			if math.IsNaN(v) {
				return nil, &DomainError{X: x, Func: sym}
			}
			return v, nil
		case *big.Float:
			return bf(newFloat(x, nil), x), nil
		}
		return nil, &TypeError{Symbol: sym, Args: args}
	}
}
