package codec

import (
	"math"

	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/logger"
)

// Compile replaces every Hadamard H^p by Ry(-π/4) · Rz(p·π) · Ry(π/4), with
// the controls moved onto the Rz. Other gates pass through in order.
func Compile(seq circuit.Sequence) *circuit.Circuit {
	out := circuit.New()
	for _, op := range seq.Operations() {
		if op.Kind() != circuit.H {
			out.Add(circuit.FromOperation(op))
			continue
		}
		power := op.Parameter()
		if power == nil {
			power = angle.Constant(1)
		}
		targets := op.Targets()
		out.Add(
			circuit.NewGate(circuit.Ry, targets, nil, angle.Constant(-math.Pi/4)),
			circuit.NewGate(circuit.Rz, targets, op.Controls(), angle.Scale(power, math.Pi)),
			circuit.NewGate(circuit.Ry, targets, nil, angle.Constant(math.Pi/4)),
		)
	}
	return out
}

// FixPeriodicity reduces θ into [0, 4π).
func FixPeriodicity(theta float64) float64 {
	return angle.FixPeriodicity(theta)
}

// Prune drops every parametrized gate whose angle, resolved against vars,
// lies within threshold of 0 modulo 4π. A fixed gate counts as parametrized
// when it carries a power p, its angle being p·π. Gates without a parameter
// and gates whose angle does not resolve are kept. It returns the new circuit and the number of
// dropped gates.
func Prune(seq circuit.Sequence, vars angle.Variables, threshold float64) (*circuit.Circuit, int) {
	ops := seq.Operations()
	out := circuit.New()
	for _, op := range ops {
		if op.Parameter() == nil {
			out.Add(circuit.FromOperation(op))
			continue
		}
		theta, err := op.Angle().Resolve(vars)
		if err != nil || !angle.NearZero(theta, threshold) {
			out.Add(circuit.FromOperation(op))
		}
	}
	dropped := len(ops) - out.Len()
	if dropped > 0 {
		logger.Named("codec").Infow("pruned circuit",
			logger.FieldOperation, "prune",
			logger.FieldGates, len(ops),
			logger.FieldKept, out.Len(),
			logger.FieldDropped, dropped,
			logger.FieldThreshold, threshold,
		)
	}
	return out, dropped
}
