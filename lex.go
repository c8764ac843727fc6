package calc

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token is a lexical token of an input line.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Text is the numeral of a number, the name of a variable, or the
	// offending character of an unknown token. It is empty for other kinds.
	Text string
	// Pos is the 1-based byte column where the token starts. Tokens inserted
	// by the implicit multiplication rewrite use the column of a neighbor.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int

const (
	TokenNone TokenKind = iota
	// TokenNumber is a decimal numeral, possibly with a leading minus sign
	// when it was produced by the unary minus rewrite or a constant.
	TokenNumber
	// TokenVariable is a variable name.
	TokenVariable
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenPower
	// Function keywords.
	TokenSqrt
	TokenSin
	TokenCos
	TokenTan
	TokenAsin
	TokenAcos
	TokenAtan
	TokenLog
	TokenLn
	TokenLParen
	TokenRParen
	TokenEquals
	// TokenEnd terminates every token sequence.
	TokenEnd
	// TokenUnknown is a character the lexer doesn't understand. The parser
	// rejects it when it tries to use it.
	TokenUnknown
)

var tokenNames = [...]string{
	TokenNone:     "None",
	TokenNumber:   "Number",
	TokenVariable: "Variable",
	TokenPlus:     "Plus",
	TokenMinus:    "Minus",
	TokenMultiply: "Multiply",
	TokenDivide:   "Divide",
	TokenPower:    "Power",
	TokenSqrt:     "Square root",
	TokenSin:      "Sine",
	TokenCos:      "Cosine",
	TokenTan:      "Tangent",
	TokenAsin:     "Arcsine",
	TokenAcos:     "Arccosine",
	TokenAtan:     "Arctangent",
	TokenLog:      "Log",
	TokenLn:       "Ln",
	TokenLParen:   "Left parenthesis",
	TokenRParen:   "Right parenthesis",
	TokenEquals:   "Equals",
	TokenEnd:      "End",
	TokenUnknown:  "Unknown",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// IsFunc reports whether k is a function keyword.
func (k TokenKind) IsFunc() bool {
	return TokenSqrt <= k && k <= TokenLn
}

// endsOperand reports whether a token of kind k can be the last token of an
// operand.
func (k TokenKind) endsOperand() bool {
	return k == TokenNumber || k == TokenVariable || k == TokenRParen
}

// startsOperand reports whether a token of kind k can begin an operand that
// is implicitly multiplied with a preceding one.
func (k TokenKind) startsOperand() bool {
	return k == TokenNumber || k == TokenVariable || k == TokenLParen || k.IsFunc()
}

// keywords are the letter sequences with special meaning, in the order the
// lexer tries them.
var keywords = []struct {
	word string
	kind TokenKind
}{
	{"sqrt", TokenSqrt},
	{"sin", TokenSin},
	{"cos", TokenCos},
	{"tan", TokenTan},
	{"asin", TokenAsin},
	{"acos", TokenAcos},
	{"atan", TokenAtan},
	{"log", TokenLog},
	{"ln", TokenLn},
	{"pi", TokenNumber},
	{"e", TokenNumber},
	{"phi", TokenNumber},
	{"tau", TokenNumber},
	{"ans", TokenVariable},
}

// punctuation maps single-byte operators to their lexmachine patterns.
var punctuation = []struct {
	pattern string
	kind    TokenKind
}{
	{`=`, TokenEquals},
	{`\(`, TokenLParen},
	{`\)`, TokenRParen},
	{`\+`, TokenPlus},
	{`\-`, TokenMinus},
	{`\*`, TokenMultiply},
	{`/`, TokenDivide},
	{`\^`, TokenPower},
}

var (
	lexOnce  sync.Once
	lexDFA   *lexmachine.Lexer
	lexSetup error
)

// dfa returns the process-wide compiled lexer. lexmachine prefers the longest
// match and breaks ties by the order patterns are added, so keywords must be
// added before single letters and the catch-all must come last.
func dfa() (*lexmachine.Lexer, error) {
	lexOnce.Do(func() {
		l := lexmachine.NewLexer()
		l.Add([]byte("( |\t|\n|\r|\v|\f)+"), skip)
		l.Add([]byte(`[0-9]+((\.|,)[0-9]+)?`), number)
		l.Add([]byte(`[0-9]+(\.|,)`), badNumber)
		for _, kw := range keywords {
			l.Add([]byte(kw.word), keyword(kw.word, kw.kind))
		}
		l.Add([]byte(`[a-z]|[A-Z]`), variable)
		for _, p := range punctuation {
			l.Add([]byte(p.pattern), literal(p.kind))
		}
		l.Add([]byte(`.`), unknown)
		lexSetup = l.CompileDFA()
		lexDFA = l
	})
	return lexDFA, lexSetup
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func number(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	b := append([]byte(nil), m.Bytes...)
	for i, c := range b {
		if c == ',' {
			b[i] = '.'
		}
	}
	return Token{Kind: TokenNumber, Text: string(b), Pos: m.TC + 1}, nil
}

func badNumber(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return nil, &LexError{Text: string(m.Bytes), Kind: "number", Col: m.TC + 1}
}

func keyword(word string, kind TokenKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		tok := Token{Kind: kind, Pos: m.TC + 1}
		switch kind {
		case TokenNumber:
			tok.Text, _ = Constant(word)
		case TokenVariable:
			tok.Text = word
		}
		return tok, nil
	}
}

func variable(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return Token{Kind: TokenVariable, Text: string(m.Bytes), Pos: m.TC + 1}, nil
}

func literal(kind TokenKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return Token{Kind: kind, Pos: m.TC + 1}, nil
	}
}

// unknown consumes one whole rune starting at the matched byte.
func unknown(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return unknownAt(s, m.TC), nil
}

func unknownAt(s *lexmachine.Scanner, tc int) Token {
	r, sz := utf8.DecodeRune(s.Text[tc:])
	text := string(r)
	if r == utf8.RuneError && sz <= 1 {
		sz = 1
		text = string(s.Text[tc : tc+1])
	}
	s.TC = tc + sz
	return Token{Kind: TokenUnknown, Text: text, Pos: tc + 1}
}

// Tokenize converts a line into tokens terminated by a TokenEnd token, then
// applies the implicit multiplication and unary minus rewrite. The only error
// is a *LexError for a decimal separator that is not followed by a digit.
func Tokenize(src string) ([]Token, error) {
	l, err := dfa()
	if err != nil {
		// The patterns are fixed, so this is a programming error.
		panic("calc: compiling lexer: " + err.Error())
	}
	scan, err := l.Scanner([]byte(src))
	if err != nil {
		panic("calc: creating scanner: " + err.Error())
	}
	var toks []Token
	for tok, err, eof := scan.Next(); !eof; tok, err, eof = scan.Next() {
		var ui *machines.UnconsumedInput
		switch {
		case errors.As(err, &ui):
			// Only reachable for bytes the catch-all refuses.
			toks = append(toks, unknownAt(scan, ui.StartTC))
			continue
		case err != nil:
			return nil, err
		}
		toks = append(toks, tok.(Token))
	}
	toks = append(toks, Token{Kind: TokenEnd, Pos: len(src) + 1})
	return rewriteImplicit(toks), nil
}

// rewriteImplicit makes implicit operators explicit. A minus that starts an
// operand and isn't directly followed by a number becomes "-1 *", and an
// operand followed by the start of another operand or a function gets a "*"
// between them. Either rewrite skips past the inserted token.
func rewriteImplicit(toks []Token) []Token {
	for i := 0; i+1 < len(toks); {
		cur, next := toks[i], toks[i+1]
		if cur.Kind == TokenMinus && next.Kind != TokenNumber && (i == 0 || !toks[i-1].Kind.endsOperand()) {
			toks[i] = Token{Kind: TokenNumber, Text: "-1", Pos: cur.Pos}
			toks = insertMul(toks, i+1, cur.Pos)
			i += 2
			continue
		}
		if cur.Kind.endsOperand() && next.Kind.startsOperand() {
			toks = insertMul(toks, i+1, next.Pos)
			i += 2
			continue
		}
		i++
	}
	return toks
}

func insertMul(toks []Token, at, pos int) []Token {
	toks = append(toks, Token{})
	copy(toks[at+1:], toks[at:])
	toks[at] = Token{Kind: TokenMultiply, Pos: pos}
	return toks
}

// FormatTokens writes one line per token: its kind, plus its text if it has
// any.
func FormatTokens(w io.Writer, toks []Token) error {
	for _, tok := range toks {
		var err error
		if tok.Text != "" {
			_, err = fmt.Fprintf(w, "%v, Value: %s\n", tok.Kind, tok.Text)
		} else {
			_, err = fmt.Fprintln(w, tok.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the invalid token text.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" for
	// a decimal separator with no digits after it or the empty string for a
	// character the lexer doesn't know.
	Kind string
	// Col is the 1-based byte column where the invalid token starts.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + strconv.Quote(err.Text)
	}
	if err.Kind == "number" {
		return "invalid number token at " + pos + ": expected digit after decimal point in " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Pos() int {
	return err.Col
}
