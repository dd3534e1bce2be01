package ctaeb_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/ichalenko/ctaeb"
)

func TestRegisterValidation(t *testing.T) {
	apply := ctaeb.OpFunc(func([]any) (any, error) { return nil, nil })
	if err := ctaeb.Register("", ctaeb.Operation{Apply: apply, Symbol: "?"}); err == nil {
		t.Error("no error registering an empty tag")
	}
	if err := ctaeb.Register("test-no-sem", ctaeb.Operation{Symbol: "?"}); err == nil {
		t.Error("no error registering an operation without semantics")
	}
}

func TestRegisterFirstWins(t *testing.T) {
	first := ctaeb.Operation{
		Apply:  ctaeb.OpFunc(func([]any) (any, error) { return 1, nil }),
		Symbol: "first",
	}
	second := ctaeb.Operation{
		Apply:  ctaeb.OpFunc(func([]any) (any, error) { return 2, nil }),
		Symbol: "second",
	}
	if err := ctaeb.Register("test-dup", first); err != nil {
		t.Fatal("registration error:", err)
	}
	if err := ctaeb.Register("test-dup", second); err != nil {
		t.Fatal("re-registration is not a no-op:", err)
	}
	r, err := ctaeb.NewCompound("test-dup", 0).Eval()
	if err != nil {
		t.Fatal("evaluation error:", err)
	}
	if r != 1 {
		t.Errorf("entry was altered: want 1, got %v", r)
	}
}

func TestBuiltinTags(t *testing.T) {
	// Every prepopulated tag must evaluate without an OpError.
	x := ctaeb.Var(1)
	y := ctaeb.Var(2)
	exprs := []ctaeb.Compound{
		ctaeb.Add(x, y), ctaeb.Sub(x, y), ctaeb.Mul(x, y), ctaeb.Quo(x, y),
		ctaeb.Eq(x, y), ctaeb.Ne(x, y),
		ctaeb.Lt(x, y), ctaeb.Le(x, y), ctaeb.Gt(x, y), ctaeb.Ge(x, y),
		ctaeb.And(x, y), ctaeb.Or(x, y), ctaeb.Not(x), ctaeb.Neg(x),
		ctaeb.Pow(x, y), ctaeb.Exp(x), ctaeb.Log(x), ctaeb.Sqrt(x),
	}
	for _, e := range exprs {
		if _, err := e.Eval(2.0, 3.0); err != nil {
			if _, ok := err.(*ctaeb.OpError); ok {
				t.Errorf("tag %q not prepopulated: %v", e.Op(), err)
			}
		}
	}
}

// TestBuiltinArity checks that a builtin applied to the wrong number of
// operands reports a TypeError instead of crashing: NewCompound accepts any
// arity for any tag.
func TestBuiltinArity(t *testing.T) {
	x := ctaeb.Var(1)
	y := ctaeb.Var(2)
	z := ctaeb.Var(3)
	cases := []struct {
		name string
		e    ctaeb.Expr
		args []any
	}{
		{"add-unary", ctaeb.NewCompound(ctaeb.OpAdd, x), []any{3}},
		{"add-ternary", ctaeb.NewCompound(ctaeb.OpAdd, x, y, z), []any{1, 2, 3}},
		{"not-binary", ctaeb.NewCompound(ctaeb.OpNot, x, y), []any{true, false}},
		{"neg-binary", ctaeb.NewCompound(ctaeb.OpNeg, x, y), []any{1, 2}},
		{"and-ternary", ctaeb.NewCompound(ctaeb.OpAnd, x, y, z), []any{true, true, true}},
		{"lt-unary", ctaeb.NewCompound(ctaeb.OpLt, x), []any{1}},
		{"eq-unary", ctaeb.NewCompound(ctaeb.OpEq, x), []any{1}},
		{"quo-unary", ctaeb.NewCompound(ctaeb.OpQuo, x), []any{1}},
		{"pow-unary", ctaeb.NewCompound(ctaeb.OpPow, x), []any{2}},
		{"exp-binary", ctaeb.NewCompound(ctaeb.OpExp, x, y), []any{1.0, 2.0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := c.e.Eval(c.args...)
			if err == nil {
				t.Fatalf("no error, result %v", r)
			}
			if _, ok := err.(*ctaeb.TypeError); !ok {
				t.Errorf("error was %#v, not TypeError", err)
			}
		})
	}
}

func TestBigFloatArithmetic(t *testing.T) {
	x := ctaeb.Var(1)
	y := ctaeb.Var(2)
	cases := []struct {
		name string
		e    ctaeb.Expr
		a, b float64
		r    float64
	}{
		{"add", ctaeb.Add(x, y), 2, 3, 5},
		{"sub", ctaeb.Sub(x, y), 2, 3, -1},
		{"mul", ctaeb.Mul(x, y), 2, 3, 6},
		{"quo", ctaeb.Quo(x, y), 3, 2, 1.5},
		{"neg", ctaeb.Neg(x), 2, 0, -2},
		{"pow", ctaeb.Pow(x, y), 2, 10, 1024},
		{"sqrt", ctaeb.Sqrt(x), 9, 0, 3},
		{"log", ctaeb.Log(x), math.E, 0, 1},
		{"exp", ctaeb.Exp(x), 0, 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := c.e.Eval(big.NewFloat(c.a), big.NewFloat(c.b))
			if err != nil {
				t.Fatal("evaluation error:", err)
			}
			f, ok := r.(*big.Float)
			if !ok {
				t.Fatalf("result is %T, not *big.Float", r)
			}
			if g, _ := f.Float64(); math.Abs(g-c.r) > 1e-12 {
				t.Errorf("wrong result: want %g, got %g", c.r, g)
			}
		})
	}
}

// TestBigFloatPurity checks that evaluation allocates results instead of
// writing through its operands.
func TestBigFloatPurity(t *testing.T) {
	a := big.NewFloat(2)
	b := big.NewFloat(3)
	e := ctaeb.Pow(ctaeb.Var(1), ctaeb.Var(2))
	if _, err := e.Eval(a, b); err != nil {
		t.Fatal("evaluation error:", err)
	}
	if a.Cmp(big.NewFloat(2)) != 0 || b.Cmp(big.NewFloat(3)) != 0 {
		t.Errorf("operands modified: a=%v b=%v", a, b)
	}
}

func TestDomainErrors(t *testing.T) {
	x := ctaeb.Var(1)
	y := ctaeb.Var(2)
	inf := math.Inf(1)
	cases := []struct {
		name string
		e    ctaeb.Expr
		args []any
	}{
		{"int-div-zero", ctaeb.Quo(x, y), []any{1, 0}},
		{"float-zero-zero", ctaeb.Quo(x, y), []any{0.0, 0.0}},
		{"float-inf-inf", ctaeb.Quo(x, y), []any{inf, inf}},
		{"big-zero-zero", ctaeb.Quo(x, y), []any{big.NewFloat(0), big.NewFloat(0)}},
		{"pow-neg-base", ctaeb.Pow(x, y), []any{-1.0, 0.5}},
		{"pow-neg-exp", ctaeb.Pow(x, y), []any{2, -1}},
		{"big-pow-neg-base", ctaeb.Pow(x, y), []any{big.NewFloat(-1), big.NewFloat(2)}},
		{"pow-overflow", ctaeb.Pow(x, y), []any{2, 70}},
		{"pow-overflow-int64", ctaeb.Pow(x, y), []any{int64(10), int64(19)}},
		{"sqrt-neg", ctaeb.Sqrt(x), []any{-1.0}},
		{"big-sqrt-neg", ctaeb.Sqrt(x), []any{big.NewFloat(-1)}},
		{"log-neg", ctaeb.Log(x), []any{-1.0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := c.e.Eval(c.args...)
			if err == nil {
				t.Fatalf("no error, result %v", r)
			}
			if _, ok := err.(*ctaeb.DomainError); !ok {
				t.Errorf("error was %#v, not DomainError", err)
			}
		})
	}
}

func TestTypeErrors(t *testing.T) {
	x := ctaeb.Var(1)
	y := ctaeb.Var(2)
	cases := []struct {
		name string
		e    ctaeb.Expr
		args []any
	}{
		{"add-mixed", ctaeb.Add(x, y), []any{1, "s"}},
		{"add-mixed-ints", ctaeb.Add(x, y), []any{int64(1), 2}},
		{"sub-strings", ctaeb.Sub(x, y), []any{"a", "b"}},
		{"eq-mixed", ctaeb.Eq(x, y), []any{1, 1.0}},
		{"eq-uncomparable", ctaeb.Eq(x, y), []any{[]int{1}, []int{1}}},
		{"lt-mixed", ctaeb.Lt(x, y), []any{1, "b"}},
		{"and-string", ctaeb.And(x, y), []any{"yes", true}},
		{"not-string", ctaeb.Not(x), []any{"no"}},
		{"neg-string", ctaeb.Neg(x), []any{"n"}},
		{"exp-string", ctaeb.Exp(x), []any{"e"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := c.e.Eval(c.args...)
			if err == nil {
				t.Fatalf("no error, result %v", r)
			}
			if _, ok := err.(*ctaeb.TypeError); !ok {
				t.Errorf("error was %#v, not TypeError", err)
			}
		})
	}
}

func TestPowLargeExact(t *testing.T) {
	e := ctaeb.Pow(ctaeb.Var(1), ctaeb.Var(2))
	r, err := e.Eval(2, 62)
	if err != nil {
		t.Fatal("evaluation error:", err)
	}
	if r != 1<<62 {
		t.Errorf("wrong result: want %d, got %v", 1<<62, r)
	}
}

func TestEqByValue(t *testing.T) {
	x := ctaeb.Var(1)
	y := ctaeb.Var(2)
	e := ctaeb.Eq(x, y)
	r, err := e.Eval(big.NewFloat(2.5), big.NewFloat(2.5))
	if err != nil {
		t.Fatal("evaluation error:", err)
	}
	if r != true {
		t.Error("distinct pointers to equal big floats compared unequal")
	}
	r, err = e.Eval("ab", "ab")
	if err != nil {
		t.Fatal("evaluation error:", err)
	}
	if r != true {
		t.Error("equal strings compared unequal")
	}
}
