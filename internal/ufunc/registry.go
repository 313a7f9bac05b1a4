package ufunc

import (
	"fmt"
	"math"
	"sort"
)

// The builtin catalog mirrors the elementwise functions the equation
// builder registers by name. The resolver itself never consults it; it
// exists for callers that address functions symbolically (CLI, tests,
// equation building).

func unary(name string, f func(float64) float64) *Function {
	return &Function{
		Name: name,
		NIn:  1,
		NOut: 1,
		Kernel: func(in, out []float64) {
			out[0] = f(in[0])
		},
	}
}

func binary(name string, f func(a, b float64) float64) *Function {
	return &Function{
		Name: name,
		NIn:  2,
		NOut: 1,
		Kernel: func(in, out []float64) {
			out[0] = f(in[0], in[1])
		},
	}
}

var builtins = map[string]*Function{}

func register(fns ...*Function) {
	for _, fn := range fns {
		builtins[fn.Name] = fn
	}
}

func init() {
	register(
		binary("add", func(a, b float64) float64 { return a + b }),
		binary("subtract", func(a, b float64) float64 { return a - b }),
		binary("multiply", func(a, b float64) float64 { return a * b }),
		binary("divide", func(a, b float64) float64 { return a / b }),
		binary("power", math.Pow),
		binary("arctan2", math.Atan2),
		binary("hypot", math.Hypot),
		binary("fmod", math.Mod),
		binary("maximum", math.Max),
		binary("minimum", math.Min),

		unary("negative", func(a float64) float64 { return -a }),
		unary("abs", math.Abs),
		unary("exp", math.Exp),
		unary("log", math.Log),
		unary("log10", math.Log10),
		unary("sqrt", math.Sqrt),
		unary("sin", math.Sin),
		unary("cos", math.Cos),
		unary("tan", math.Tan),
		unary("arcsin", math.Asin),
		unary("arccos", math.Acos),
		unary("arctan", math.Atan),
		unary("sinh", math.Sinh),
		unary("cosh", math.Cosh),
		unary("tanh", math.Tanh),
		unary("floor", math.Floor),
		unary("ceil", math.Ceil),

		// Multi-output functions exercise tuple packaging.
		&Function{
			Name: "divmod",
			NIn:  2,
			NOut: 2,
			Kernel: func(in, out []float64) {
				q := math.Floor(in[0] / in[1])
				out[0] = q
				out[1] = in[0] - q*in[1]
			},
		},
		&Function{
			Name: "modf",
			NIn:  1,
			NOut: 2,
			Kernel: func(in, out []float64) {
				ipart, frac := math.Modf(in[0])
				out[0] = frac
				out[1] = ipart
			},
		},
	)
}

// Builtin returns the registered elementwise function with the given name.
func Builtin(name string) (*Function, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown builtin %q", ErrInvalidFunction, name)
	}
	return fn, nil
}

// BuiltinNames returns the names of all registered builtins, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
