package main

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/spf13/pflag"
)

// envPrefix marks environment variables that configure calc, e.g.
// CALC_DIGITS=3 or CALC_LOG_LEVEL=debug.
const envPrefix = "CALC_"

type config struct {
	digits      int
	echo        bool
	in          string
	given       []string
	interactive bool
	logLevel    string
}

// loadConfig merges the environment and the command line, with flags that
// were set explicitly taking priority over the environment.
func loadConfig(flags *pflag.FlagSet) (*config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("couldn't read environment: %w", err)
	}
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("couldn't read flags: %w", err)
	}
	cfg := config{
		digits:      k.Int("digits"),
		echo:        k.Bool("echo"),
		in:          k.String("in"),
		given:       stringList(k.Get("given")),
		interactive: k.Bool("interactive"),
		logLevel:    k.String("log-level"),
	}
	if cfg.digits < 0 {
		return nil, fmt.Errorf("digits (%d) must not be negative", cfg.digits)
	}
	return &cfg, nil
}

// envKey converts CALC_LOG_LEVEL to log-level.
func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}

// stringList converts a list-valued setting. Lists from the environment are
// separated by semicolons.
func stringList(v interface{}) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []interface{}:
		r := make([]string, 0, len(v))
		for _, x := range v {
			r = append(r, fmt.Sprint(x))
		}
		return r
	case string:
		var r []string
		for _, s := range strings.Split(v, ";") {
			if s = strings.TrimSpace(s); s != "" {
				r = append(r, s)
			}
		}
		return r
	default:
		return []string{fmt.Sprint(v)}
	}
}

// preset splits a name=value variable definition.
func preset(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, "=")
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)
	if !ok || name == "" || value == "" {
		return "", "", fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	return name, value, nil
}
