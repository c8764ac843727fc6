package calc

import (
	"fmt"
	"io"
	"strings"
)

// Node is a node in the abstract syntax tree of a line. The implementations
// are *Number, *Variable, *Paren, *BinaryOp, *Function, and *Equation. Each
// interior node owns its children; trees never share subtrees.
type Node interface {
	format(b *strings.Builder, square bool)
	dump(w io.Writer, indent int) error
}

// Number is a numeric literal kept as decimal text, possibly with a leading
// minus sign.
type Number struct {
	Text string
}

// Variable is a reference to a variable by name.
type Variable struct {
	Name string
}

// Paren is a parenthesized subexpression. It evaluates to its contents.
type Paren struct {
	Inner Node
}

// BinaryOp applies an arithmetic operator to two operands.
type BinaryOp struct {
	Op  BinaryKind
	LHS Node
	RHS Node
}

// Function applies a unary function to an operand.
type Function struct {
	Func    FuncKind
	Operand Node
}

// Equation is the root of every parsed line. LHS is the assignment target,
// which must be a bare variable for the line to be calculated, and RHS is
// the expression to evaluate.
type Equation struct {
	LHS Node
	RHS Node
}

// BinaryKind is the operator of a BinaryOp.
type BinaryKind int8

const (
	OpNone BinaryKind = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
)

var binaryNames = [...]struct{ sym, name, noun string }{
	OpNone: {"?", "None", "nothing"},
	OpAdd:  {"+", "Add", "addition"},
	OpSub:  {"-", "Sub", "subtraction"},
	OpMul:  {"*", "Mul", "multiplication"},
	OpDiv:  {"/", "Div", "division"},
	OpPow:  {"^", "Pow", "power"},
}

func (k BinaryKind) String() string {
	if k < 0 || int(k) >= len(binaryNames) {
		return fmt.Sprintf("BinaryKind(%d)", int(k))
	}
	return binaryNames[k].name
}

// Symbol returns the operator character of k.
func (k BinaryKind) Symbol() string {
	if k < 0 || int(k) >= len(binaryNames) {
		return "?"
	}
	return binaryNames[k].sym
}

func (n *Number) format(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(n.Text)
	b.WriteByte(r)
}

func (n *Variable) format(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(n.Name)
	b.WriteByte(r)
}

// Parens are transparent so that "(x)" and "x" format alike.
func (n *Paren) format(b *strings.Builder, square bool) {
	n.Inner.format(b, square)
}

func (n *BinaryOp) format(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	n.LHS.format(b, !square)
	b.WriteString(" " + n.Op.Symbol() + " ")
	n.RHS.format(b, !square)
	b.WriteByte(r)
}

func (n *Function) format(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(n.Func.Name())
	n.Operand.format(b, !square)
	b.WriteByte(r)
}

func (n *Equation) format(b *strings.Builder, square bool) {
	n.LHS.format(b, square)
	b.WriteString(" = ")
	n.RHS.format(b, square)
}

func brackets(square bool) (byte, byte) {
	if square {
		return '[', ']'
	}
	return '(', ')'
}

func (n *Number) dump(w io.Writer, indent int) error {
	_, err := fmt.Fprintf(w, "%*sNumber: %s\n", indent, "", n.Text)
	return err
}

func (n *Variable) dump(w io.Writer, indent int) error {
	_, err := fmt.Fprintf(w, "%*sVariable: %s\n", indent, "", n.Name)
	return err
}

func (n *Paren) dump(w io.Writer, indent int) error {
	if _, err := fmt.Fprintf(w, "%*sParen\n", indent, ""); err != nil {
		return err
	}
	return n.Inner.dump(w, indent+4)
}

func (n *BinaryOp) dump(w io.Writer, indent int) error {
	if _, err := fmt.Fprintf(w, "%*s%v\n", indent, "", n.Op); err != nil {
		return err
	}
	if err := n.LHS.dump(w, indent+4); err != nil {
		return err
	}
	return n.RHS.dump(w, indent+4)
}

func (n *Function) dump(w io.Writer, indent int) error {
	if _, err := fmt.Fprintf(w, "%*s%v\n", indent, "", n.Func); err != nil {
		return err
	}
	return n.Operand.dump(w, indent+4)
}

func (n *Equation) dump(w io.Writer, indent int) error {
	if _, err := fmt.Fprintf(w, "%*sEquation\n", indent, ""); err != nil {
		return err
	}
	if err := n.LHS.dump(w, indent+4); err != nil {
		return err
	}
	return n.RHS.dump(w, indent+4)
}

// Format renders a tree on one line, wrapping each term in brackets that
// alternate between round and square.
func Format(n Node) string {
	var b strings.Builder
	n.format(&b, false)
	return b.String()
}

// Dump writes an indented multi-line view of a tree to w.
func Dump(w io.Writer, n Node) error {
	return n.dump(w, 0)
}

// isNegative reports whether a right operand is a bare negative number. It
// looks through the base of a power and the operand of a square root, but
// not through parentheses.
func isNegative(n Node) bool {
	switch n := n.(type) {
	case *Number:
		return strings.HasPrefix(n.Text, "-")
	case *Variable:
		return strings.HasPrefix(n.Name, "-")
	case *BinaryOp:
		if n.Op == OpPow {
			return isNegative(n.LHS)
		}
	case *Function:
		if n.Func == FuncSqrt {
			return isNegative(n.Operand)
		}
	}
	return false
}
