package angle

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"qgenenc/errors"
)

// exprPattern is one numeric term as it may appear inside a scaled name
// ("0.5*a", "pi/2*a").
const exprPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

var (
	// [sign][factor][*]pi[/divisor]
	piMultiple = regexp.MustCompile(`^([+-]?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

	identRegex       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	scaledIdentRegex = regexp.MustCompile(`^(?:-|(` + exprPattern + `)\s*\*\s*)([A-Za-z_][A-Za-z0-9_]*)$`)
	nameListRegex    = regexp.MustCompile(`^\[\s*([A-Za-z_][A-Za-z0-9_]*(?:\s*,\s*[A-Za-z_][A-Za-z0-9_]*)*)?\s*\]$`)
)

// ParseExpr evaluates the numeric angles accepted in circuit files, QASM
// parameters, configuration and --var values: a float, or a multiple of pi
// such as "pi", "-pi/2", "2pi" or "3*pi/4". Case is ignored.
func ParseExpr(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	m := piMultiple.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v := math.Pi
	if m[2] != "" {
		k, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		v *= k
	}
	if m[3] != "" {
		d, err := strconv.ParseFloat(m[3], 64)
		if err != nil || d == 0 {
			return 0, false
		}
		v /= d
	}
	if m[1] == "-" {
		v = -v
	}
	return v, true
}

// maxPiTerm bounds numerator and denominator of the pi fractions Format
// recognises.
const maxPiTerm = 8

// Format renders val as n*pi/d in lowest terms when it is such a fraction
// with |n|, d ≤ 8, and as the shortest float otherwise. ParseExpr reads
// both forms back.
func Format(val float64) string {
	for d := 1; val != 0 && d <= maxPiTerm; d++ {
		n := val * float64(d) / math.Pi
		r := math.Round(n)
		if r == 0 || math.Abs(r) > maxPiTerm || math.Abs(n-r)*math.Pi/float64(d) >= 1e-10 {
			continue
		}
		var sb strings.Builder
		if r < 0 {
			sb.WriteByte('-')
		}
		if a := math.Abs(r); a != 1 {
			sb.WriteString(strconv.Itoa(int(a)) + "*")
		}
		sb.WriteString("pi")
		if d > 1 {
			sb.WriteString("/" + strconv.Itoa(d))
		}
		return sb.String()
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// Parse reads the text form of an angle:
//   - numbers and pi expressions become Constant,
//   - identifiers become Symbol,
//   - "-a" and "k*a" become a scaled expression of a,
//   - "[a,b]" becomes an Opaque expression over a and b.
func Parse(text string) (Angle, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, errors.New("empty angle")
	}
	if v, ok := ParseExpr(s); ok {
		return Constant(v), nil
	}
	if isIdentifier(s) {
		return Symbol(s), nil
	}
	if m := scaledIdentRegex.FindStringSubmatch(s); m != nil {
		k := -1.0
		if m[1] != "" {
			v, ok := ParseExpr(m[1])
			if !ok {
				return nil, errors.Newf("invalid coefficient in angle %q", text)
			}
			k = v
		}
		return Scale(Symbol(m[2]), k), nil
	}
	if names, ok := ParseNames(s); ok {
		return Opaque(names...), nil
	}
	return nil, errors.Newf("cannot parse angle %q", text)
}

// ParseNames reads a bracketed name list such as "[a, b]".
func ParseNames(s string) ([]string, bool) {
	m := nameListRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, false
	}
	if strings.TrimSpace(m[1]) == "" {
		return []string{}, true
	}
	parts := strings.Split(m[1], ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return normalizeNames(names), true
}

func isIdentifier(s string) bool {
	return identRegex.MatchString(s)
}

func isScaledIdentifier(s string) bool {
	return scaledIdentRegex.MatchString(s)
}

// ParseAssignment reads "name=value" where value is a number or pi
// expression.
func ParseAssignment(s string) (string, float64, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || !isIdentifier(name) {
		return "", 0, errors.Newf("expected name=value, got %q", s)
	}
	v, ok := ParseExpr(value)
	if !ok {
		return "", 0, errors.Newf("%s: %q is not a number", name, strings.TrimSpace(value))
	}
	return name, v, nil
}

// ParseVariables reads a list of assignments. Later entries win.
func ParseVariables(assignments []string) (Variables, error) {
	vars := Variables{}
	for _, a := range assignments {
		name, v, err := ParseAssignment(a)
		if err != nil {
			return nil, err
		}
		vars[name] = v
	}
	return vars, nil
}
