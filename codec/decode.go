package codec

import (
	"strings"

	"qgenenc/angle"
	"qgenenc/circuit"
)

// Decode parses a circuit string into ExpPauli gates, one per token, in
// order. Blank fragments, such as the one after the final separator, are
// skipped. Any malformed token fails the whole string with ErrDecodeFormat.
func (c *Codec) Decode(s string, vars angle.Variables) (*circuit.Circuit, error) {
	out := circuit.New()
	for _, fragment := range c.Fragments(s) {
		t, err := c.ParseToken(fragment)
		if err != nil {
			return nil, err
		}
		out.Add(circuit.Exp(t.Paulis, t.Angle(vars)))
	}
	return out, nil
}

// Fragments splits s on the gate separator and drops blank pieces.
func (c *Codec) Fragments(s string) []string {
	var out []string
	for _, f := range strings.Split(s, c.symbols.GateSeparator) {
		if strings.TrimSpace(f) != "" {
			out = append(out, f)
		}
	}
	return out
}
