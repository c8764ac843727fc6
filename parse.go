package calc

import (
	"io"
	"sort"
	"strings"
)

// Line = Expr [ '=' Expr ]
// Expr = Lhs { binop Expr }
// Lhs  = Term | func Term
// Term = num | '-' num | name | '(' Expr ')'
//
// An Expr ends early at '=', which it consumes. A line without an explicit
// target assigns to ans.

// Expr is a parsed line.
type Expr struct {
	// eq is the root of the tree.
	eq *Equation
}

// Parse lexes and parses a line.
func Parse(src string) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses a token sequence produced by Tokenize.
func ParseTokens(toks []Token) (*Expr, error) {
	p := parser{toks: toks}
	eq, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Expr{eq: eq}, nil
}

// Root returns the root of the parse tree.
func (e *Expr) Root() *Equation {
	return e.eq
}

// Target returns the name of the variable the line assigns to. The result is
// false if the left-hand side is anything other than a bare variable.
func (e *Expr) Target() (string, bool) {
	v, ok := e.eq.LHS.(*Variable)
	if !ok {
		return "", false
	}
	return v.Name, true
}

// Vars returns the sorted names of the variables the right-hand side uses.
func (e *Expr) Vars() []string {
	seen := make(map[string]bool)
	var names []string
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Variable:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case *Paren:
			walk(n.Inner)
		case *BinaryOp:
			walk(n.LHS)
			walk(n.RHS)
		case *Function:
			walk(n.Operand)
		}
	}
	walk(e.eq.RHS)
	sort.Strings(names)
	return names
}

// String creates a one-line representation of the parsed line, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return Format(e.eq)
}

// Dump writes an indented view of the parse tree to w.
func (e *Expr) Dump(w io.Writer) error {
	return Dump(w, e.eq)
}

// parser is a cursor over a token sequence. It is used for a single line.
type parser struct {
	toks []Token
	pos  int
}

// peek returns the token off positions ahead of the cursor. The result is
// false past the end of the sequence.
func (p *parser) peek(off int) (Token, bool) {
	if p.pos+off >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos+off], true
}

// consume returns the token at the cursor and advances.
func (p *parser) consume() (Token, error) {
	if p.pos >= len(p.toks) {
		return Token{}, p.errorf(p.endPos(), "no more tokens to consume")
	}
	tok := p.toks[p.pos]
	p.pos++
	return tok, nil
}

// accept consumes the token at the cursor if it has the given kind.
func (p *parser) accept(kind TokenKind) (Token, bool) {
	tok, ok := p.peek(0)
	if !ok || tok.Kind != kind {
		return Token{}, false
	}
	p.pos++
	return tok, true
}

// endPos is the column to report for errors at the end of input.
func (p *parser) endPos() int {
	if len(p.toks) == 0 {
		return 1
	}
	return p.toks[len(p.toks)-1].Pos
}

func (p *parser) errorf(col int, msg string) error {
	return &ParseError{Col: col, Msg: msg}
}

func (p *parser) parse() (*Equation, error) {
	lhs, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	tok, ok := p.peek(0)
	if !ok || tok.Kind == TokenEnd {
		return &Equation{LHS: &Variable{Name: "ans"}, RHS: lhs}, nil
	}
	// Anything after the right-hand side is ignored.
	rhs, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &Equation{LHS: lhs, RHS: rhs}, nil
}

// parseExpr parses operators whose precedence is at least minPrec, folding
// them to the left.
func (p *parser) parseExpr(minPrec int) (Node, error) {
	var lhs Node
	var err error
	if tok, ok := p.peek(0); ok && tok.Kind.IsFunc() {
		lhs, err = p.parseFunc()
	} else {
		lhs, err = p.parseTerm()
	}
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek(0)
		if !ok {
			break
		}
		prec, ok := binPrec(tok.Kind)
		if !ok || prec < minPrec {
			break
		}
		p.pos++
		rhs, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		op := binOps[tok.Kind]
		if op == OpNone {
			return nil, p.errorf(tok.Pos, "unexpected binary operator "+lower(tok.Kind))
		}
		if isNegative(rhs) {
			return nil, p.errorf(tok.Pos, "right side of "+binaryNames[op].noun+" cannot directly be a negative number")
		}
		lhs = &BinaryOp{Op: op, LHS: lhs, RHS: rhs}
	}
	p.accept(TokenEquals)
	return lhs, nil
}

// parseTerm parses a number, a variable, or a parenthesized expression. A
// minus directly followed by a number is a negative number.
func (p *parser) parseTerm() (Node, error) {
	tok, ok := p.peek(0)
	if !ok {
		return nil, p.errorf(p.endPos(), "expected term but got end of input")
	}
	switch tok.Kind {
	case TokenUnknown:
		return nil, &LexError{Text: tok.Text, Col: tok.Pos}
	case TokenMinus:
		if next, ok := p.peek(1); ok && next.Kind == TokenNumber {
			p.pos += 2
			return &Number{Text: negate(next.Text)}, nil
		}
	case TokenNumber:
		p.pos++
		return &Number{Text: tok.Text}, nil
	case TokenVariable:
		p.pos++
		return &Variable{Name: tok.Text}, nil
	case TokenLParen:
		p.pos++
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(TokenRParen); !ok {
			end, _ := p.peek(0)
			return nil, p.errorf(end.Pos, "expected right parenthesis after expression")
		}
		return &Paren{Inner: inner}, nil
	}
	return nil, p.errorf(tok.Pos, "expected term but got "+describe(tok))
}

// parseFunc parses a function keyword and the single term after it.
func (p *parser) parseFunc() (Node, error) {
	tok, err := p.consume()
	if err != nil {
		return nil, err
	}
	fn, ok := tokenFuncs[tok.Kind]
	if !ok {
		return nil, p.errorf(tok.Pos, "expected function but got "+describe(tok))
	}
	arg, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return &Function{Func: fn, Operand: arg}, nil
}

// binPrec gives the precedence of a token in operator position. Function
// keywords have a precedence so that the operator loop takes them rather
// than silently stopping.
func binPrec(kind TokenKind) (int, bool) {
	switch {
	case kind == TokenPlus, kind == TokenMinus:
		return 1, true
	case kind == TokenMultiply, kind == TokenDivide:
		return 2, true
	case kind == TokenPower, kind.IsFunc():
		return 3, true
	default:
		return 0, false
	}
}

var binOps = map[TokenKind]BinaryKind{
	TokenPlus:     OpAdd,
	TokenMinus:    OpSub,
	TokenMultiply: OpMul,
	TokenDivide:   OpDiv,
	TokenPower:    OpPow,
}

// negate prefixes a numeral with a minus sign. A numeral that is already
// negative becomes invalid and fails when evaluated.
func negate(text string) string {
	return "-" + text
}

func lower(kind TokenKind) string {
	return strings.ToLower(kind.String())
}

// describe names a token for an error message.
func describe(tok Token) string {
	if tok.Text == "" {
		return lower(tok.Kind)
	}
	return lower(tok.Kind) + " " + tok.Text
}
