package calc

import (
	"math"
	"math/big"
	"strconv"
	"sync"

	"github.com/zephyrtronium/bigfloat"
)

// FuncKind is the function applied by a Function node.
type FuncKind int8

const (
	FuncNone FuncKind = iota
	FuncSqrt
	FuncSin
	FuncCos
	FuncTan
	FuncAsin
	FuncAcos
	FuncAtan
	FuncLog10
	FuncLn
)

var funcs = [...]struct {
	name, word string
	f          func(float64) float64
}{
	FuncNone:  {"None", "?", nil},
	FuncSqrt:  {"Sqrt", "sqrt", math.Sqrt},
	FuncSin:   {"Sin", "sin", math.Sin},
	FuncCos:   {"Cos", "cos", math.Cos},
	FuncTan:   {"Tan", "tan", math.Tan},
	FuncAsin:  {"Asin", "asin", math.Asin},
	FuncAcos:  {"Acos", "acos", math.Acos},
	FuncAtan:  {"Atan", "atan", math.Atan},
	FuncLog10: {"Log10", "log", math.Log10},
	FuncLn:    {"Ln", "ln", math.Log},
}

func (k FuncKind) valid() bool {
	return FuncNone < k && int(k) < len(funcs)
}

func (k FuncKind) String() string {
	if !k.valid() {
		return "FuncKind(" + strconv.Itoa(int(k)) + ")"
	}
	return funcs[k].name
}

// Name returns the keyword that calls k.
func (k FuncKind) Name() string {
	if !k.valid() {
		return "?"
	}
	return funcs[k].word
}

// Apply evaluates the function at x. Arguments outside the function's domain
// give NaN or an infinity rather than an error.
func (k FuncKind) Apply(x float64) float64 {
	if !k.valid() {
		panic("calc: invalid function " + k.String())
	}
	return funcs[k].f(x)
}

// tokenFuncs maps function keyword tokens to their functions.
var tokenFuncs = map[TokenKind]FuncKind{
	TokenSqrt: FuncSqrt,
	TokenSin:  FuncSin,
	TokenCos:  FuncCos,
	TokenTan:  FuncTan,
	TokenAsin: FuncAsin,
	TokenAcos: FuncAcos,
	TokenAtan: FuncAtan,
	TokenLog:  FuncLog10,
	TokenLn:   FuncLn,
}

const (
	// constPrec is the precision in bits used to compute named constants.
	constPrec = 128
	// constDigits is the number of digits after the point in the text of
	// named constants, which is all that constPrec can represent.
	constDigits = 36
)

var (
	constOnce sync.Once
	constText map[string]string
)

// Constant returns the decimal text of a named constant: pi, e, phi (the
// golden ratio), or tau (2 pi).
func Constant(name string) (string, bool) {
	constOnce.Do(func() {
		constText = make(map[string]string, 4)
		for name, f := range map[string]func(out *big.Float) *big.Float{
			"pi":  bigfloat.Pi,
			"e":   euler,
			"phi": golden,
			"tau": tau,
		} {
			r := f(new(big.Float).SetPrec(constPrec))
			constText[name] = r.Text('f', constDigits)
		}
	})
	s, ok := constText[name]
	return s, ok
}

func euler(out *big.Float) *big.Float {
	var one big.Float
	one.SetPrec(out.Prec()).SetInt64(1)
	return bigfloat.Exp(out, &one)
}

func golden(out *big.Float) *big.Float {
	five := new(big.Float).SetPrec(out.Prec()).SetInt64(5)
	out.Sqrt(five)
	out.Add(out, big.NewFloat(1))
	return out.Quo(out, big.NewFloat(2))
}

func tau(out *big.Float) *big.Float {
	bigfloat.Pi(out)
	return out.Mul(out, big.NewFloat(2))
}
