package ctaeb

// Eval evaluates an expression with a positional argument list. It is the
// function form of Expr.Eval.
func Eval(e Expr, args ...any) (any, error) {
	return eval(e, args)
}

// Eval returns the constant's value. The arguments are ignored.
func (c Constant) Eval(args ...any) (any, error) {
	return eval(c, args)
}

// Eval returns the argument at the variable's index. Fewer arguments than
// the index reports an ArgCountError.
func (v Variable) Eval(args ...any) (any, error) {
	return eval(v, args)
}

// Eval evaluates the compound's children with args and applies its
// operation to the results.
func (c Compound) Eval(args ...any) (any, error) {
	return eval(c, args)
}

// eval is the substitution algorithm: one recursive function over the closed
// node set. Arguments are propagated unchanged into every subtree.
func eval(e Expr, args []any) (any, error) {
	switch e := e.(type) {
	case Constant:
		return e.value, nil
	case Variable:
		if e.index > len(args) {
			return nil, &ArgCountError{Index: e.index, Name: e.name, Given: len(args)}
		}
		return args[e.index-1], nil
	case Compound:
		op, ok := lookup(e.op)
		if !ok {
			return nil, &OpError{Tag: e.op}
		}
		// Short-circuit strategies apply only at arity 2; any other arity
		// evaluates strictly.
		if len(e.kids) == 2 {
			switch op.Circuit {
			case AndCircuit:
				return evalAnd(e, op, args)
			case OrCircuit:
				return evalOr(e, op, args)
			}
		}
		results := make([]any, len(e.kids))
		for i, k := range e.kids {
			r, err := eval(k, args)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return op.Apply.Apply(results)
	}
	panic("ctaeb: unknown expression kind")
}

// evalAnd evaluates a short-circuiting conjunction. When the first operand
// is falsy the result is false and the second operand stays unevaluated;
// otherwise both results go through the operation's own semantics.
func evalAnd(e Compound, op Operation, args []any) (any, error) {
	r1, err := eval(e.kids[0], args)
	if err != nil {
		return nil, err
	}
	t, err := truthy(op.Symbol, r1)
	if err != nil {
		return nil, err
	}
	if !t {
		return false, nil
	}
	r2, err := eval(e.kids[1], args)
	if err != nil {
		return nil, err
	}
	return op.Apply.Apply([]any{r1, r2})
}

// evalOr evaluates a short-circuiting disjunction. When the first operand is
// truthy the result is true and the second operand stays unevaluated.
func evalOr(e Compound, op Operation, args []any) (any, error) {
	r1, err := eval(e.kids[0], args)
	if err != nil {
		return nil, err
	}
	t, err := truthy(op.Symbol, r1)
	if err != nil {
		return nil, err
	}
	if t {
		return true, nil
	}
	r2, err := eval(e.kids[1], args)
	if err != nil {
		return nil, err
	}
	return op.Apply.Apply([]any{r1, r2})
}
