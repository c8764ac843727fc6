package calc

import (
	"github.com/emirpasic/gods/maps/treemap"
)

// Env is a set of variables, ordered by name. Variables are created by their
// first assignment and overwritten by later ones; they are never removed. An
// Env is not safe to use concurrently.
type Env struct {
	vars *treemap.Map
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
)

func (varopt) envOption()  {}
func (varsopt) envOption() {}

// SetVar sets the value of a variable in a new environment.
func SetVar(name string, val float64) EnvOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in a new environment.
func SetVars(vars map[string]float64) EnvOption {
	return varsopt(vars)
}

// NewEnv creates a new environment. With no options, it is empty.
func NewEnv(opts ...EnvOption) *Env {
	env := Env{vars: treemap.NewWithStringComparator()}
	return env.Clone(opts...)
}

// Clone creates a copy of an environment and applies options to it. Changes
// to either copy are not visible in the other.
func (env *Env) Clone(opts ...EnvOption) *Env {
	n := Env{vars: treemap.NewWithStringComparator()}
	if env != nil && env.vars != nil {
		it := env.vars.Iterator()
		for it.Next() {
			n.vars.Put(it.Key(), it.Value())
		}
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			continue
		case varopt:
			n.vars.Put(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				n.vars.Put(k, v)
			}
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// Set sets the value of a variable, creating it if needed. Returns env for
// chaining.
func (env *Env) Set(name string, val float64) *Env {
	env.vars.Put(name, val)
	return env
}

// Lookup returns the value of a variable. The result is false if there is no
// such variable. A nil Env has no variables.
func (env *Env) Lookup(name string) (float64, bool) {
	if env == nil || env.vars == nil {
		return 0, false
	}
	v, ok := env.vars.Get(name)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

// Get returns the value of a variable, or 0 if there is no such variable.
func (env *Env) Get(name string) float64 {
	v, _ := env.Lookup(name)
	return v
}

// Len returns the number of variables.
func (env *Env) Len() int {
	if env == nil || env.vars == nil {
		return 0
	}
	return env.vars.Size()
}

// Names returns the variable names in order.
func (env *Env) Names() []string {
	names := make([]string, 0, env.Len())
	env.Each(func(name string, _ float64) {
		names = append(names, name)
	})
	return names
}

// Each calls f for each variable in name order.
func (env *Env) Each(f func(name string, val float64)) {
	if env == nil || env.vars == nil {
		return
	}
	it := env.vars.Iterator()
	for it.Next() {
		f(it.Key().(string), it.Value().(float64))
	}
}
