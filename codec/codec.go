// Package codec translates circuits to and from the generator string
// grammar:
//
//	[angle]@<coeff><Letter(qubit)>...|
//
// Every gate is reduced to its Pauli-string generators and each string with
// a non-trivial operator part becomes one token. A numeric angle is folded
// into the coefficient and leaves the angle field empty; a symbolic angle is
// written in front of the angle separator and survives a round trip.
package codec

import (
	"fmt"
	"strings"
	"unicode"

	"qgenenc/errors"
)

// Default separators.
const (
	DefaultGateSeparator  = "|"
	DefaultAngleSeparator = "@"
)

// DefaultPruneThreshold is the angle below which Prune drops a gate.
const DefaultPruneThreshold = 1e-4

// Symbols is the separator configuration of one Codec.
type Symbols struct {
	GateSeparator  string
	AngleSeparator string
}

// DefaultSymbols returns the "|" / "@" configuration.
func DefaultSymbols() Symbols {
	return Symbols{GateSeparator: DefaultGateSeparator, AngleSeparator: DefaultAngleSeparator}
}

// Validate rejects separators the grammar could not be split on.
func (s Symbols) Validate() error {
	for _, f := range []struct{ name, sep string }{
		{"gate", s.GateSeparator},
		{"angle", s.AngleSeparator},
	} {
		name, sep := f.name, f.sep
		if sep == "" {
			return errors.Wrapf(errors.ErrInvalidSymbols, "empty %s separator", name)
		}
		if r, bad := grammarRune(sep); bad {
			return errors.WithHintf(
				errors.Wrapf(errors.ErrInvalidSymbols, "%s separator %q contains %q", name, sep, r),
				"the token grammar reserves digits and whitespace plus .+-()[],XYZ",
			)
		}
	}
	if strings.Contains(s.GateSeparator, s.AngleSeparator) || strings.Contains(s.AngleSeparator, s.GateSeparator) {
		return errors.Wrapf(errors.ErrInvalidSymbols, "gate separator %q and angle separator %q overlap",
			s.GateSeparator, s.AngleSeparator)
	}
	return nil
}

func grammarRune(sep string) (rune, bool) {
	for _, r := range sep {
		if unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune(".+-()[],XYZ", r) {
			return r, true
		}
	}
	return 0, false
}

func (s Symbols) String() string {
	return fmt.Sprintf("gate_separator=%q angle_separator=%q", s.GateSeparator, s.AngleSeparator)
}

// Option configures a Codec.
type Option func(*Symbols)

// WithGateSeparator sets the token terminator.
func WithGateSeparator(sep string) Option {
	return func(s *Symbols) { s.GateSeparator = sep }
}

// WithAngleSeparator sets the separator between angle and coefficient.
func WithAngleSeparator(sep string) Option {
	return func(s *Symbols) { s.AngleSeparator = sep }
}

// WithSymbols replaces both separators.
func WithSymbols(sym Symbols) Option {
	return func(s *Symbols) { *s = sym }
}

// Codec encodes and decodes circuit strings. A Codec is immutable and safe
// for concurrent use.
type Codec struct {
	symbols Symbols
}

// New returns a Codec with the default separators changed by opts.
func New(opts ...Option) (*Codec, error) {
	sym := DefaultSymbols()
	for _, opt := range opts {
		opt(&sym)
	}
	if err := sym.Validate(); err != nil {
		return nil, err
	}
	return &Codec{symbols: sym}, nil
}

// Default returns a Codec with the default separators.
func Default() *Codec {
	return &Codec{symbols: DefaultSymbols()}
}

// Symbols returns the separator configuration.
func (c *Codec) Symbols() Symbols { return c.symbols }

func (c *Codec) String() string {
	return "Codec{" + c.symbols.String() + "}"
}
