package calc

import (
	"fortio.org/log"
)

// Calculator is a calculator session. It owns the variables that lines
// assign to and read. It is not safe to use a Calculator concurrently;
// separate Calculators share nothing.
type Calculator struct {
	env *Env
}

// New creates a calculator whose variables start with the given options.
func New(opts ...EnvOption) *Calculator {
	return &Calculator{env: NewEnv(opts...)}
}

// Calc calculates a line and assigns the result. The result is the name of
// the variable assigned, which is ans unless the line is "name = expr", and
// its new value. On any error, no variable changes.
func (c *Calculator) Calc(line string) (string, float64, error) {
	log.LogVf("calc %q", line)
	a, err := Parse(line)
	if err != nil {
		log.Debugf("parsing %q: %v", line, err)
		return "", 0, err
	}
	v, err := a.Eval(c.env)
	if err != nil {
		log.Debugf("evaluating %v: %v", a, err)
		return "", 0, err
	}
	name, ok := a.Target()
	if !ok {
		log.Debugf("assigning %v: no target", a)
		return "", 0, &RuntimeError{Msg: "Left hand side should be a variable but isn't"}
	}
	c.env.Set(name, v)
	log.LogVf("%s = %g", name, v)
	return name, v, nil
}

// Env returns the calculator's variables. Changes to the result are changes
// to the calculator.
func (c *Calculator) Env() *Env {
	return c.env
}

// Var returns the value of a variable, or 0 if it has never been assigned.
func (c *Calculator) Var(name string) float64 {
	return c.env.Get(name)
}

// SetVar assigns a variable directly. Returns c for chaining.
func (c *Calculator) SetVar(name string, val float64) *Calculator {
	c.env.Set(name, val)
	return c
}
