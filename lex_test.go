package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func num(s string) Token    { return Token{Kind: TokenNumber, Text: s} }
func name(s string) Token   { return Token{Kind: TokenVariable, Text: s} }
func kind(k TokenKind) Token { return Token{Kind: k} }

func konst(t *testing.T, s string) Token {
	t.Helper()
	text, ok := Constant(s)
	if !ok {
		t.Fatalf("no constant %q", s)
	}
	return num(text)
}

var (
	end = kind(TokenEnd)
	mul = kind(TokenMultiply)
)

func TestLex(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		tokens []Token
	}{
		// spaces
		{"empty", "", []Token{end}},
		{"spaces", " \t \r\n ", []Token{end}},
		{"vt-ff", "\v1\f", []Token{num("1"), end}},
		// numbers
		{"int", "0", []Token{num("0"), end}},
		{"long", "9876543210", []Token{num("9876543210"), end}},
		{"real", "1.25", []Token{num("1.25"), end}},
		{"comma", "1,25", []Token{num("1.25"), end}},
		{"two", "1 0", []Token{num("1"), mul, num("0"), end}},
		{"neg", "-1", []Token{kind(TokenMinus), num("1"), end}},
		{"dot", ".5", []Token{{Kind: TokenUnknown, Text: "."}, num("5"), end}},
		// identifiers
		{"var", "x", []Token{name("x"), end}},
		{"upper", "X", []Token{name("X"), end}},
		{"ans", "ans", []Token{name("ans"), end}},
		{"letters", "xy", []Token{name("x"), mul, name("y"), end}},
		{"funcs", "sqrt sin cos tan asin acos atan log ln", []Token{
			kind(TokenSqrt), kind(TokenSin), kind(TokenCos), kind(TokenTan),
			kind(TokenAsin), kind(TokenAcos), kind(TokenAtan), kind(TokenLog),
			kind(TokenLn), end,
		}},
		{"exp", "exp", []Token{konst(t, "e"), mul, name("x"), mul, name("p"), end}},
		{"an", "an", []Token{name("a"), mul, name("n"), end}},
		// operators
		{"ops", "= ( ) + - * / ^", []Token{
			kind(TokenEquals), kind(TokenLParen), kind(TokenRParen),
			kind(TokenPlus), kind(TokenMinus), kind(TokenMultiply),
			kind(TokenDivide), kind(TokenPower), end,
		}},
		{"assign", "a=b", []Token{name("a"), kind(TokenEquals), name("b"), end}},
		// unknown
		{"dollar", "$", []Token{{Kind: TokenUnknown, Text: "$"}, end}},
		{"num-dollar", "2$", []Token{num("2"), {Kind: TokenUnknown, Text: "$"}, end}},
		{"rune", "π", []Token{{Kind: TokenUnknown, Text: "π"}, end}},
		{"bang", "3!", []Token{num("3"), {Kind: TokenUnknown, Text: "!"}, end}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("scanning %q: unexpected error %v", c.src, err)
			}
			if diff := cmp.Diff(c.tokens, got, cmpopts.IgnoreFields(Token{}, "Pos")); diff != "" {
				t.Errorf("scanning %q: wrong tokens (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestLexConstants(t *testing.T) {
	cases := []struct {
		src string
		v   float64
	}{
		{"pi", math.Pi},
		{"e", math.E},
		{"phi", math.Phi},
		{"tau", 2 * math.Pi},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			if err != nil {
				t.Fatal(err)
			}
			if len(toks) != 2 || toks[0].Kind != TokenNumber {
				t.Fatalf("want one number, got %v", toks)
			}
			v, err := strconv.ParseFloat(toks[0].Text, 64)
			if err != nil {
				t.Fatal(err)
			}
			if v != c.v {
				t.Errorf("want %v, got %v from %q", c.v, v, toks[0].Text)
			}
		})
	}
}

func TestLexImplicit(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		tokens []Token
	}{
		{"num-var", "2x", []Token{num("2"), mul, name("x"), end}},
		{"var-paren", "x(2+1)", []Token{
			name("x"), mul, kind(TokenLParen), num("2"), kind(TokenPlus), num("1"), kind(TokenRParen), end,
		}},
		{"parens", ")(", []Token{kind(TokenRParen), mul, kind(TokenLParen), end}},
		{"num-func", "2sqrt(4)", []Token{
			num("2"), mul, kind(TokenSqrt), kind(TokenLParen), num("4"), kind(TokenRParen), end,
		}},
		{"consts", "pi e", []Token{konst(t, "pi"), mul, konst(t, "e"), end}},
		{"var-num", "x 2", []Token{name("x"), mul, num("2"), end}},
		{"neg-var", "-x", []Token{num("-1"), mul, name("x"), end}},
		{"neg-paren", "-(3)", []Token{num("-1"), mul, kind(TokenLParen), num("3"), kind(TokenRParen), end}},
		{"neg-num", "-2", []Token{kind(TokenMinus), num("2"), end}},
		{"sub-var", "x-y", []Token{name("x"), kind(TokenMinus), name("y"), end}},
		{"sub-paren", "2-(3)", []Token{
			num("2"), kind(TokenMinus), kind(TokenLParen), num("3"), kind(TokenRParen), end,
		}},
		{"sub-neg", "3 - -2", []Token{num("3"), kind(TokenMinus), kind(TokenMinus), num("2"), end}},
		{"paren-neg", "(-x)", []Token{kind(TokenLParen), num("-1"), mul, name("x"), kind(TokenRParen), end}},
		{"negneg", "--x", []Token{num("-1"), mul, num("-1"), mul, name("x"), end}},
		{"func-neg", "sin-x", []Token{kind(TokenSin), num("-1"), mul, name("x"), end}},
		{"func-num", "sin 2", []Token{kind(TokenSin), num("2"), end}},
		{"lone-minus", "-", []Token{num("-1"), mul, end}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("scanning %q: unexpected error %v", c.src, err)
			}
			if diff := cmp.Diff(c.tokens, got, cmpopts.IgnoreFields(Token{}, "Pos")); diff != "" {
				t.Errorf("scanning %q: wrong tokens (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestLexPos(t *testing.T) {
	got, err := Tokenize(" 2x + 10")
	if err != nil {
		t.Fatal(err)
	}
	want := []Token{
		{Kind: TokenNumber, Text: "2", Pos: 2},
		{Kind: TokenMultiply, Pos: 3},
		{Kind: TokenVariable, Text: "x", Pos: 3},
		{Kind: TokenPlus, Pos: 5},
		{Kind: TokenNumber, Text: "10", Pos: 7},
		{Kind: TokenEnd, Pos: 9},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong positions (-want +got):\n%s", diff)
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		src string
		col int
	}{
		{"1.", 1},
		{"1,", 1},
		{"2 + 10.x", 5},
		{"1, 2", 1},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			if err == nil {
				t.Fatalf("scanning %q gave no error, tokens %v", c.src, toks)
			}
			var lerr *LexError
			if !errors.As(err, &lerr) {
				t.Fatalf("error was %#v, not LexError", err)
			}
			if lerr.Kind != "number" {
				t.Errorf("want number error, got %q", lerr.Kind)
			}
			if lerr.Pos() != c.col {
				t.Errorf("want column %d, got %d", c.col, lerr.Pos())
			}
			if !strings.Contains(err.Error(), "decimal point") {
				t.Errorf("%q doesn't mention the decimal point", err.Error())
			}
		})
	}
}

func TestFormatTokens(t *testing.T) {
	toks, err := Tokenize("x = 2(y)")
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := FormatTokens(&b, toks); err != nil {
		t.Fatal(err)
	}
	want := `Variable, Value: x
Equals
Number, Value: 2
Multiply
Left parenthesis
Variable, Value: y
Right parenthesis
End
`
	if got := b.String(); got != want {
		t.Errorf("want\n%s\ngot\n%s", want, got)
	}
}

func TestTokenKindNames(t *testing.T) {
	for k := TokenNone; k <= TokenUnknown; k++ {
		if s := k.String(); s == "" || strings.HasPrefix(s, "TokenKind(") {
			t.Errorf("no name for token kind %d", int(k))
		}
	}
	if s := TokenKind(100).String(); s != "TokenKind(100)" {
		t.Errorf("wrong name for invalid kind: %q", s)
	}
	for k := TokenSqrt; k <= TokenLn; k++ {
		if !k.IsFunc() {
			t.Errorf("%v should be a function", k)
		}
		if _, ok := tokenFuncs[k]; !ok {
			t.Errorf("%v has no function", k)
		}
	}
}
