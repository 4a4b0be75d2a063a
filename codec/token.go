package codec

import (
	"fmt"
	"strconv"
	"strings"

	"qgenenc/angle"
	"qgenenc/errors"
	"qgenenc/pauli"
)

// Token is one exponentiated Pauli string of the encoded form.
type Token struct {
	// Prefix is the symbolic angle text, empty when the angle is folded
	// into the coefficient.
	Prefix string
	// Paulis carries the coefficient, normalized into [0, 4π) on encode.
	Paulis pauli.String
}

// Symbolic reports whether the token carries an angle prefix.
func (t Token) Symbolic() bool { return t.Prefix != "" }

// EncodePauliString builds the token for exp(-i·θ/2·ps). A numeric θ
// (numeric true) is folded into the coefficient; otherwise prefix is kept
// and the coefficient is ps's own.
func EncodePauliString(ps pauli.String, theta float64, prefix string, numeric bool) Token {
	coeff := ps.Coeff
	if numeric {
		coeff *= theta
		prefix = ""
	}
	return Token{Prefix: prefix, Paulis: ps.WithCoeff(angle.FixPeriodicity(coeff))}
}

// FormatToken renders t with the codec's separators.
func (c *Codec) FormatToken(t Token) string {
	return fmt.Sprintf("%s%s%.4f%s%s",
		t.Prefix, c.symbols.AngleSeparator, t.Paulis.Coeff, t.Paulis.Naked(), c.symbols.GateSeparator)
}

// ParseToken reads one fragment, without its gate separator.
func (c *Codec) ParseToken(fragment string) (Token, error) {
	parts := strings.Split(strings.TrimSpace(fragment), c.symbols.AngleSeparator)
	if len(parts) != 2 {
		return Token{}, errors.WithDetailf(
			errors.Wrapf(errors.ErrDecodeFormat, "token %q has %d fields around %q", fragment, len(parts), c.symbols.AngleSeparator),
			"expected <angle>%s<coefficient><paulis>", c.symbols.AngleSeparator,
		)
	}
	ps, err := DecodePauliString(parts[1])
	if err != nil {
		return Token{}, errors.Wrapf(err, "token %q", fragment)
	}
	return Token{Prefix: strings.TrimSpace(parts[0]), Paulis: ps}, nil
}

// DecodePauliString parses "<coeff><Letter(idx)>..." into exactly one
// non-trivial Pauli string.
func DecodePauliString(text string) (pauli.String, error) {
	sum, err := pauli.ParseSum(text)
	if err != nil {
		return pauli.String{}, errors.Mark(errors.Wrapf(err, "pauli string %q", text), errors.ErrDecodeFormat)
	}
	if len(sum) != 1 {
		return pauli.String{}, errors.Wrapf(errors.ErrDecodeFormat, "pauli string %q has %d terms, want 1", text, len(sum))
	}
	if sum[0].IsIdentity() {
		return pauli.String{}, errors.Wrapf(errors.ErrDecodeFormat, "pauli string %q acts on no qubit", text)
	}
	return sum[0], nil
}

// Angle resolves the token's angle: a float prefix, 1 when the prefix is
// empty, a value from vars, an unresolvable expression for a "[a,b]" name
// list, and a Symbol otherwise. Pi expressions are not numbers here, so a
// variable named pi keeps its name.
func (t Token) Angle(vars angle.Variables) angle.Angle {
	prefix := strings.TrimSpace(t.Prefix)
	if v, err := strconv.ParseFloat(prefix, 64); err == nil {
		return angle.Constant(v)
	}
	if prefix == "" {
		return angle.Constant(1)
	}
	if v, ok := vars[prefix]; ok {
		return angle.Constant(v)
	}
	if names, ok := angle.ParseNames(prefix); ok {
		return angle.Opaque(names...)
	}
	return angle.Symbol(prefix)
}
