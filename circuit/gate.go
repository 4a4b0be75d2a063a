package circuit

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"qgenenc/angle"
	"qgenenc/errors"
	"qgenenc/pauli"
)

// Kind names a gate family.
type Kind string

const (
	H        Kind = "H"        // Hadamard, optional power
	X        Kind = "X"        // Pauli-X (NOT), optional power
	Y        Kind = "Y"        // Pauli-Y, optional power
	Z        Kind = "Z"        // Pauli-Z, optional power
	Rx       Kind = "Rx"       // X-rotation
	Ry       Kind = "Ry"       // Y-rotation
	Rz       Kind = "Rz"       // Z-rotation
	ExpPauli Kind = "ExpPauli" // exp(-i·θ/2·P) for a Pauli string P
)

// Fixed reports whether k is a fixed gate whose parameter is a power.
func (k Kind) Fixed() bool {
	switch k {
	case H, X, Y, Z:
		return true
	}
	return false
}

// ParseKind resolves a gate name case-insensitively.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "h":
		return H, nil
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	case "rx":
		return Rx, nil
	case "ry":
		return Ry, nil
	case "rz":
		return Rz, nil
	case "exppauli", "exp_pauli":
		return ExpPauli, nil
	}
	return "", errors.Wrapf(errors.ErrInvalidGate, "unknown gate %q", name)
}

// Gate is one circuit operation. Every gate acts as exp(-i·θ/2·G) with θ its
// rotation angle (Angle) and G its generator (Generator).
//
// For fixed gates (H, X, Y, Z) the parameter is a power p, nil meaning 1, and
// θ = p·π. For rotations and ExpPauli the parameter is θ itself.
type Gate struct {
	kind     Kind
	targets  []int
	controls []int
	param    angle.Angle
	paulis   pauli.String
}

// NewGate builds a gate of any kind except ExpPauli. Qubit slices are
// copied; empty ones are stored as nil.
func NewGate(kind Kind, targets, controls []int, param angle.Angle) Gate {
	return Gate{
		kind:     kind,
		targets:  qubitList(targets),
		controls: qubitList(controls),
		param:    param,
	}
}

func qubitList(qs []int) []int {
	if len(qs) == 0 {
		return nil
	}
	return slices.Clone(qs)
}

// Hadamard returns H on target.
func Hadamard(target int, controls ...int) Gate {
	return NewGate(H, []int{target}, controls, nil)
}

// PauliX returns X on target, e.g. CNOT when controlled.
func PauliX(target int, controls ...int) Gate {
	return NewGate(X, []int{target}, controls, nil)
}

// PauliY returns Y on target.
func PauliY(target int, controls ...int) Gate {
	return NewGate(Y, []int{target}, controls, nil)
}

// PauliZ returns Z on target.
func PauliZ(target int, controls ...int) Gate {
	return NewGate(Z, []int{target}, controls, nil)
}

// RotX returns Rx(a) on target.
func RotX(a angle.Angle, target int, controls ...int) Gate {
	return NewGate(Rx, []int{target}, controls, a)
}

// RotY returns Ry(a) on target.
func RotY(a angle.Angle, target int, controls ...int) Gate {
	return NewGate(Ry, []int{target}, controls, a)
}

// RotZ returns Rz(a) on target.
func RotZ(a angle.Angle, target int, controls ...int) Gate {
	return NewGate(Rz, []int{target}, controls, a)
}

// Exp returns exp(-i·a/2·ps). The targets are the qubits ps acts on.
func Exp(ps pauli.String, a angle.Angle, controls ...int) Gate {
	return Gate{kind: ExpPauli, targets: qubitList(ps.Qubits()), controls: qubitList(controls), param: a, paulis: ps}
}

// Kind returns the gate family.
func (g Gate) Kind() Kind { return g.kind }

// Targets returns a copy of the target qubits.
func (g Gate) Targets() []int { return slices.Clone(g.targets) }

// Controls returns a copy of the control qubits.
func (g Gate) Controls() []int { return slices.Clone(g.controls) }

// Parameter returns the gate parameter, nil when the gate is not parametrized.
func (g Gate) Parameter() angle.Angle { return g.param }

// Parametrized reports whether the gate carries a parameter.
func (g Gate) Parametrized() bool { return g.param != nil }

// PauliString returns the Pauli string of an ExpPauli gate.
func (g Gate) PauliString() (pauli.String, bool) {
	return g.paulis, g.kind == ExpPauli
}

// Angle returns the rotation angle θ.
func (g Gate) Angle() angle.Angle {
	if g.kind.Fixed() {
		if g.param == nil {
			return angle.Constant(math.Pi)
		}
		return angle.Scale(g.param, math.Pi)
	}
	if g.param == nil {
		return angle.Constant(1)
	}
	return g.param
}

// Power returns the power of a fixed gate, 1 when unset.
func (g Gate) Power() angle.Angle {
	if g.param == nil {
		return angle.Constant(1)
	}
	return g.param
}

// MaxQubit returns the highest qubit index the gate touches, or -1.
func (g Gate) MaxQubit() int {
	m := -1
	for _, q := range g.targets {
		m = max(m, q)
	}
	for _, q := range g.controls {
		m = max(m, q)
	}
	return m
}

// Validate checks that qubits are non-negative, distinct, and that the gate
// has what its kind needs.
func (g Gate) Validate() error {
	if g.kind.Fixed() || g.kind == Rx || g.kind == Ry || g.kind == Rz {
		if len(g.targets) == 0 {
			return errors.Wrapf(errors.ErrInvalidGate, "%s without target", g.kind)
		}
	} else if g.kind == ExpPauli {
		if g.paulis.IsIdentity() {
			return errors.Wrap(errors.ErrInvalidGate, "ExpPauli with identity pauli string")
		}
	} else {
		return errors.Wrapf(errors.ErrInvalidGate, "unknown kind %q", g.kind)
	}
	if !g.kind.Fixed() && g.param == nil {
		return errors.Wrapf(errors.ErrInvalidGate, "%s without angle", g.kind)
	}
	seen := map[int]bool{}
	for _, q := range slices.Concat(g.targets, g.controls) {
		if q < 0 {
			return errors.Wrapf(errors.ErrInvalidGate, "%s on negative qubit %d", g.kind, q)
		}
		if seen[q] {
			return errors.Wrapf(errors.ErrInvalidGate, "%s uses qubit %d twice", g.kind, q)
		}
		seen[q] = true
	}
	return nil
}

// Generator returns G as a sum of Pauli strings. With includeControls the
// generator is multiplied by the projector Π_c (I - Z(c))/2 onto the control
// qubits being 1, and expanded.
func (g Gate) Generator(includeControls bool) pauli.Sum {
	var base pauli.Sum
	switch g.kind {
	case Rx, Ry, Rz:
		op := pauli.Op(g.kind[1] - 'x' + 'X')
		for _, t := range g.targets {
			base = base.Add(pauli.Single(1, op, t))
		}
	case X, Y, Z:
		op := pauli.Op(g.kind[0])
		for _, t := range g.targets {
			base = base.Add(pauli.Single(1, op, t), pauli.Identity(-1))
		}
	case H:
		for _, t := range g.targets {
			base = base.Add(
				pauli.Single(math.Sqrt2/2, pauli.X, t),
				pauli.Single(math.Sqrt2/2, pauli.Z, t),
				pauli.Identity(-1),
			)
		}
	case ExpPauli:
		base = pauli.Sum{g.paulis}
	}

	if includeControls && len(g.controls) > 0 {
		proj := pauli.Sum{pauli.Identity(1)}
		for _, c := range g.controls {
			// Validate guarantees disjoint qubits, so the product is real
			proj, _ = proj.Mul(pauli.Sum{pauli.Identity(0.5), pauli.Single(-0.5, pauli.Z, c)})
		}
		if expanded, err := base.Mul(proj); err == nil {
			base = expanded
		}
	}
	return base.Simplify()
}

// String renders the gate, e.g. "Rx(a) q[0] ctrl[1]".
func (g Gate) String() string {
	var sb strings.Builder
	if g.kind == ExpPauli {
		fmt.Fprintf(&sb, "Exp(%s)", g.paulis.Naked())
	} else {
		sb.WriteString(string(g.kind))
	}
	if g.param != nil {
		fmt.Fprintf(&sb, "(%s)", g.param)
	}
	fmt.Fprintf(&sb, " q%v", g.targets)
	if len(g.controls) > 0 {
		fmt.Fprintf(&sb, " ctrl%v", g.controls)
	}
	return sb.String()
}
