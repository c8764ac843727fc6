package calc

import (
	"errors"
	"math"
	"strconv"
)

// Eval evaluates a tree. Variables are looked up in env, which may be nil to
// evaluate without any variables. For an *Equation, the right-hand side is
// evaluated and nothing is assigned.
//
// The only errors are for variables missing from env and numbers that don't
// parse. Division by zero and arguments outside a function's domain give
// infinities and NaN.
func Eval(n Node, env *Env) (float64, error) {
	switch n := n.(type) {
	case *Number:
		v, err := strconv.ParseFloat(n.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, &RuntimeError{Msg: "invalid number " + strconv.Quote(n.Text)}
		}
		return v, nil
	case *Variable:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return 0, &RuntimeError{Name: n.Name, Msg: "Variable " + n.Name + " does not exist"}
		}
		return v, nil
	case *Paren:
		return Eval(n.Inner, env)
	case *BinaryOp:
		l, err := Eval(n.LHS, env)
		if err != nil {
			return 0, err
		}
		r, err := Eval(n.RHS, env)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case OpAdd:
			return l + r, nil
		case OpSub:
			return l - r, nil
		case OpMul:
			return l * r, nil
		case OpDiv:
			return l / r, nil
		case OpPow:
			// A negative base keeps its sign: -2^2 is -4.
			if l < 0 {
				return -math.Pow(-l, r), nil
			}
			return math.Pow(l, r), nil
		default:
			panic("calc: invalid operator " + n.Op.String())
		}
	case *Function:
		x, err := Eval(n.Operand, env)
		if err != nil {
			return 0, err
		}
		return n.Func.Apply(x), nil
	case *Equation:
		return Eval(n.RHS, env)
	default:
		panic("calc: invalid AST node")
	}
}

// Eval evaluates the right-hand side of the line.
func (e *Expr) Eval(env *Env) (float64, error) {
	return Eval(e.eq.RHS, env)
}

// EvalString is a shortcut to parse a line and evaluate its right-hand side
// in a fresh environment. Nothing is assigned.
func EvalString(src string, opts ...EnvOption) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return a.Eval(NewEnv(opts...))
}

// RuntimeError is an error from calculating a line that parsed: a variable
// that doesn't exist, or an assignment to something other than a variable.
type RuntimeError struct {
	// Name is the missing variable, if that is the problem.
	Name string
	// Msg describes the problem.
	Msg string
}

func (err *RuntimeError) Error() string {
	return err.Msg
}
