package calc

import "strconv"

// ParseError is an error indicating a line that doesn't follow the grammar:
// a missing operand or parenthesis, a token where a term should be, or a bare
// negative number on the right of an operator. It implements InputError.
type ParseError struct {
	// Col is the position of the token where parsing failed.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *ParseError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *ParseError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based byte column of the token that caused the
	// error.
	Pos() int
}

var (
	_ InputError = (*ParseError)(nil)
	_ InputError = (*LexError)(nil)
)
