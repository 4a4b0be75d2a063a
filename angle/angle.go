// Package angle models rotation angles that are either concrete numbers or
// symbolic expressions over named variables.
//
// An Angle is one of three variants:
//
//	Constant(1.5)                   // a number
//	Symbol("a")                     // a single named variable
//	Expression{names, evaluator}    // anything else over a set of names
//
// Resolve substitutes a variable environment. A missing variable is reported
// with *UnresolvedError rather than a panic, so callers can fall back to the
// symbolic form.
package angle

import (
	"slices"
	"strconv"
	"strings"
)

// Variables maps variable names to concrete values.
type Variables map[string]float64

// Angle is a rotation angle, numeric or symbolic.
type Angle interface {
	// Resolve evaluates the angle under vars.
	Resolve(vars Variables) (float64, error)
	// Names returns the referenced variable names, sorted and unique.
	Names() []string
	// String returns a canonical text representation that Parse reads back.
	String() string

	sealed()
}

// UnresolvedError reports the variables an angle could not be resolved without.
type UnresolvedError struct {
	Names []string
}

func (e *UnresolvedError) Error() string {
	if len(e.Names) == 0 {
		return "angle has no evaluator"
	}
	return "unresolved variables: " + strings.Join(e.Names, ", ")
}

// ──────────────────────────── Constant ────────────────────────────

// Constant is a concrete angle.
type Constant float64

func (c Constant) Resolve(Variables) (float64, error) { return float64(c), nil }
func (c Constant) Names() []string                    { return nil }
func (c Constant) String() string                     { return strconv.FormatFloat(float64(c), 'g', -1, 64) }
func (Constant) sealed()                              {}

// ──────────────────────────── Symbol ────────────────────────────

// Symbol is a single named variable.
type Symbol string

func (s Symbol) Resolve(vars Variables) (float64, error) {
	if v, ok := vars[string(s)]; ok {
		return v, nil
	}
	return 0, &UnresolvedError{Names: []string{string(s)}}
}

func (s Symbol) Names() []string { return []string{string(s)} }
func (s Symbol) String() string  { return string(s) }
func (Symbol) sealed()           {}

// ──────────────────────────── Expression ────────────────────────────

// Evaluator computes an expression value once all its names are bound.
type Evaluator func(vars Variables) (float64, error)

// Expression is an opaque function of a set of variables. A nil evaluator
// never resolves; that is how angles decoded from a name list are carried.
type Expression struct {
	names []string
	eval  Evaluator
	text  string
}

// NewExpression builds an expression over names. text, if non-empty, is used
// by String; otherwise the bracketed name list is.
func NewExpression(names []string, eval Evaluator, text string) *Expression {
	return &Expression{names: normalizeNames(names), eval: eval, text: text}
}

// Opaque returns an expression over names that can never be resolved.
func Opaque(names ...string) *Expression {
	return &Expression{names: normalizeNames(names)}
}

func (e *Expression) Resolve(vars Variables) (float64, error) {
	var missing []string
	for _, n := range e.names {
		if _, ok := vars[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return 0, &UnresolvedError{Names: missing}
	}
	if e.eval == nil {
		return 0, &UnresolvedError{Names: slices.Clone(e.names)}
	}
	return e.eval(vars)
}

func (e *Expression) Names() []string { return slices.Clone(e.names) }

func (e *Expression) String() string {
	if e.text != "" {
		return e.text
	}
	return FormatNames(e.names)
}

func (*Expression) sealed() {}

// FormatNames renders a name list as "[a,b,c]".
func FormatNames(names []string) string {
	return "[" + strings.Join(names, ",") + "]"
}

// ──────────────────────────── Combinators ────────────────────────────

// Scale returns k·a. Constants fold immediately.
func Scale(a Angle, k float64) Angle {
	if c, ok := a.(Constant); ok {
		return Constant(k * float64(c))
	}
	if k == 1 {
		return a
	}
	text := ""
	if base := a.String(); isIdentifier(base) || isScaledIdentifier(base) {
		text = scaledText(base, k)
	}
	return NewExpression(a.Names(), func(vars Variables) (float64, error) {
		v, err := a.Resolve(vars)
		if err != nil {
			return 0, err
		}
		return k * v, nil
	}, text)
}

// Neg returns -a.
func Neg(a Angle) Angle { return Scale(a, -1) }

// Sum returns a+b.
func Sum(a, b Angle) Angle {
	ca, okA := a.(Constant)
	cb, okB := b.(Constant)
	if okA && okB {
		return ca + cb
	}
	names := append(a.Names(), b.Names()...)
	return NewExpression(names, func(vars Variables) (float64, error) {
		va, err := a.Resolve(vars)
		if err != nil {
			return 0, err
		}
		vb, err := b.Resolve(vars)
		if err != nil {
			return 0, err
		}
		return va + vb, nil
	}, "")
}

// IsConstant reports whether a is a Constant.
func IsConstant(a Angle) bool {
	_, ok := a.(Constant)
	return ok
}

func scaledText(base string, k float64) string {
	coeff := 1.0
	name := base
	if i := strings.IndexByte(base, '*'); i >= 0 {
		if c, err := strconv.ParseFloat(base[:i], 64); err == nil {
			coeff, name = c, base[i+1:]
		}
	} else if strings.HasPrefix(base, "-") {
		coeff, name = -1, base[1:]
	}
	coeff *= k
	switch coeff {
	case 1:
		return name
	case -1:
		return "-" + name
	}
	return strconv.FormatFloat(coeff, 'g', -1, 64) + "*" + name
}

func normalizeNames(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return slices.Compact(out)
}
