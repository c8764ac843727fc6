package calc

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

func TestFuncApply(t *testing.T) {
	cases := []struct {
		f    FuncKind
		name string
		x    float64
		want float64
	}{
		{FuncSqrt, "sqrt", 2, math.Sqrt2},
		{FuncSin, "sin", math.Pi / 2, 1},
		{FuncCos, "cos", math.Pi, -1},
		{FuncTan, "tan", 0, 0},
		{FuncAsin, "asin", 0, 0},
		{FuncAcos, "acos", -1, math.Pi},
		{FuncAtan, "atan", 0, 0},
		{FuncLog10, "log", 100, 2},
		{FuncLn, "ln", 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.f.Name(); got != c.name {
				t.Errorf("wrong keyword: want %q, got %q", c.name, got)
			}
			if got := c.f.Apply(c.x); !near(got, c.want) {
				t.Errorf("%s(%v): want %v, got %v", c.name, c.x, c.want, got)
			}
		})
	}
}

func TestFuncInvalid(t *testing.T) {
	for _, f := range []FuncKind{FuncNone, FuncLn + 1, -1} {
		t.Run(strconv.Itoa(int(f)), func(t *testing.T) {
			if s := f.String(); !strings.HasPrefix(s, "FuncKind(") {
				t.Errorf("wrong name %q", s)
			}
			defer func() {
				if recover() == nil {
					t.Error("no panic")
				}
			}()
			f.Apply(1)
		})
	}
}

func TestConstant(t *testing.T) {
	cases := []struct {
		name string
		want float64
	}{
		{"pi", math.Pi},
		{"e", math.E},
		{"phi", math.Phi},
		{"tau", 2 * math.Pi},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, ok := Constant(c.name)
			if !ok {
				t.Fatal("no such constant")
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				t.Fatal(err)
			}
			if v != c.want {
				t.Errorf("want %v, got %v", c.want, v)
			}
			if i := strings.IndexByte(s, '.'); i < 0 || len(s)-i-1 != constDigits {
				t.Errorf("want %d digits after the point, got %q", constDigits, s)
			}
		})
	}
	if s, ok := Constant("ans"); ok {
		t.Errorf("ans is a constant %q", s)
	}
}

func TestConstantDigits(t *testing.T) {
	s, _ := Constant("pi")
	const want = "3.14159265358979323846264338327950"
	if !strings.HasPrefix(s, want) {
		t.Errorf("want prefix %s, got %s", want, s)
	}
}
