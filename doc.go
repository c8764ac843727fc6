// Package calc implements a small interactive calculator for real numbers.
//
// Input lines look like the math you'd type into a pocket calculator. "2x" and
// "2(3+4)" are implicit multiplications, "-x" is "-1*x", and functions bind
// only to the term right after them, so "sin 2+3" is "sin(2)+3". Exponents
// group left to right and a negative base keeps its sign: "-2^2" is -4.
//
// A line is either an expression, whose value is stored in the variable ans,
// or an assignment "x = expression". Variable names are single letters, plus
// the name ans. A Calculator keeps the variables of one session.
//
package calc
