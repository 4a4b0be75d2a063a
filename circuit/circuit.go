// Package circuit is the gate and circuit model the codec works on.
//
// The codec only relies on the Sequence and Operation interfaces; Circuit and
// Gate are the concrete implementation shipped with this module.
package circuit

import (
	"fmt"
	"slices"
	"strings"

	"qgenenc/angle"
	"qgenenc/errors"
	"qgenenc/pauli"
)

// Operation is what the codec needs from one gate.
type Operation interface {
	Kind() Kind
	Targets() []int
	Controls() []int
	// Parameter is nil for gates without a parameter.
	Parameter() angle.Angle
	// Angle is the rotation angle θ of exp(-i·θ/2·G).
	Angle() angle.Angle
	Generator(includeControls bool) pauli.Sum
}

// Sequence is an ordered list of operations.
type Sequence interface {
	Operations() []Operation
}

// Circuit holds an ordered gate sequence.
type Circuit struct {
	Gates []Gate
}

// New returns a circuit with the given gates.
func New(gates ...Gate) *Circuit {
	return &Circuit{Gates: slices.Clone(gates)}
}

// Add appends gates and returns c for chaining.
func (c *Circuit) Add(gates ...Gate) *Circuit {
	c.Gates = append(c.Gates, gates...)
	return c
}

// Append appends all gates of o.
func (c *Circuit) Append(o *Circuit) *Circuit {
	return c.Add(o.Gates...)
}

// Operations implements Sequence.
func (c *Circuit) Operations() []Operation {
	if c == nil {
		return nil
	}
	ops := make([]Operation, len(c.Gates))
	for i, g := range c.Gates {
		ops[i] = g
	}
	return ops
}

// Len returns the number of gates.
func (c *Circuit) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Gates)
}

// NumQubits returns one more than the highest qubit index in use.
func (c *Circuit) NumQubits() int {
	n := 0
	for _, g := range c.Gates {
		n = max(n, g.MaxQubit()+1)
	}
	return n
}

// Variables returns the names referenced by gate parameters, sorted.
func (c *Circuit) Variables() []string {
	seen := map[string]bool{}
	for _, g := range c.Gates {
		if g.param == nil {
			continue
		}
		for _, n := range g.param.Names() {
			seen[n] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Validate checks every gate.
func (c *Circuit) Validate() error {
	for i, g := range c.Gates {
		if err := g.Validate(); err != nil {
			return errors.Wrapf(err, "gate %d", i)
		}
	}
	return nil
}

// Clone returns a copy of c sharing no slices with it.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{Gates: make([]Gate, len(c.Gates))}
	for i, g := range c.Gates {
		out.Gates[i] = NewGate(g.kind, g.targets, g.controls, g.param)
		out.Gates[i].paulis = g.paulis
	}
	return out
}

func (c *Circuit) String() string {
	var sb strings.Builder
	for i, g := range c.Gates {
		fmt.Fprintf(&sb, "%3d  %s\n", i, g)
	}
	return sb.String()
}

// FromOperation converts op back into a Gate. Gates pass through unchanged;
// other implementations are rebuilt from their accessors.
func FromOperation(op Operation) Gate {
	if g, ok := op.(Gate); ok {
		return g
	}
	if g, ok := op.(*Gate); ok {
		return *g
	}
	if op.Kind() == ExpPauli {
		gen := op.Generator(false)
		var ps pauli.String
		if len(gen) > 0 {
			ps = gen[0]
		}
		return Exp(ps, op.Parameter(), op.Controls()...)
	}
	return NewGate(op.Kind(), op.Targets(), op.Controls(), op.Parameter())
}
