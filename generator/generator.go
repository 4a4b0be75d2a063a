// Package generator builds random constant-depth circuits of Pauli-string
// exponentials over a qubit coupling map. The circuits are a convenient
// source of inputs for the codec.
package generator

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"

	"go.uber.org/zap"

	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/errors"
	"qgenenc/logger"
	"qgenenc/pauli"
)

// DefaultGenerators are the primitives used when none are configured.
var DefaultGenerators = []string{"X", "Y", "Z", "XX", "YY", "ZZ", "XY", "XZ", "YZ"}

// NormalizeGenerator upper-cases p and sorts its letters, so "yx" and "XY"
// name the same primitive.
func NormalizeGenerator(p string) (string, error) {
	letters := []byte(strings.ToUpper(strings.TrimSpace(p)))
	if len(letters) == 0 {
		return "", errors.New("empty generator")
	}
	for _, l := range letters {
		if !pauli.Op(l).Valid() {
			return "", errors.Newf("generator %q: %q is not a Pauli letter", p, l)
		}
	}
	slices.Sort(letters)
	return string(letters), nil
}

// Generator produces random circuits. It is not safe for concurrent use
// because it owns its random source.
type Generator struct {
	depth      int
	layout     string
	conn       Connectivity
	primitives []string
	fixed      map[string]float64
	rng        *rand.Rand
	log        *zap.SugaredLogger

	err error
}

// Option configures a Generator.
type Option func(*Generator)

// WithDepth sets the number of moments per circuit.
func WithDepth(depth int) Option {
	return func(g *Generator) { g.depth = depth }
}

// WithLayout selects a named connectivity (see Layouts).
func WithLayout(layout string) Option {
	return func(g *Generator) { g.layout = layout }
}

// WithConnectivity sets an explicit coupling map. It takes precedence over
// WithLayout.
func WithConnectivity(conn Connectivity) Option {
	return func(g *Generator) { g.conn = conn }
}

// WithGenerators replaces the primitive set.
func WithGenerators(primitives ...string) Option {
	return func(g *Generator) {
		g.primitives = g.primitives[:0]
		for _, p := range primitives {
			norm, err := NormalizeGenerator(p)
			if err != nil {
				g.err = err
				return
			}
			g.primitives = append(g.primitives, norm)
		}
	}
}

// WithFixedAngles gives every gate of a primitive kind a constant angle
// instead of a fresh variable.
func WithFixedAngles(angles map[string]float64) Option {
	return func(g *Generator) {
		for p, v := range angles {
			norm, err := NormalizeGenerator(p)
			if err != nil {
				g.err = err
				return
			}
			g.fixed[norm] = v
		}
	}
}

// WithRand sets the random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithSeed seeds a new random source, for reproducible circuits.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// New returns a generator over numQubits qubits. numQubits may be zero when
// WithConnectivity supplies the qubits. The depth defaults to the qubit
// count.
func New(numQubits int, opts ...Option) (*Generator, error) {
	g := &Generator{
		layout:     AllToAll,
		primitives: slices.Clone(DefaultGenerators),
		fixed:      map[string]float64{},
		log:        logger.Named("generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.err != nil {
		return nil, g.err
	}
	if len(g.primitives) == 0 {
		return nil, errors.New("no generators configured")
	}
	if g.conn == nil {
		conn, err := MakeConnectivity(g.layout, numQubits)
		if err != nil {
			return nil, err
		}
		g.conn = conn
	} else {
		g.conn = maps.Clone(g.conn)
		g.layout = ""
	}
	if err := g.conn.Validate(); err != nil {
		return nil, err
	}
	if g.depth == 0 {
		g.depth = len(g.conn)
	}
	if g.depth < 0 {
		return nil, errors.Newf("negative depth %d", g.depth)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g, nil
}

// NumQubits returns the number of qubits in generated circuits.
func (g *Generator) NumQubits() int { return len(g.conn) }

// Qubits returns the qubit labels in ascending order.
func (g *Generator) Qubits() []int { return g.conn.Qubits() }

// Depth returns the number of moments per circuit.
func (g *Generator) Depth() int { return g.depth }

// Connectivity returns a copy of the coupling map.
func (g *Generator) Connectivity() Connectivity { return maps.Clone(g.conn) }

// Generators returns the normalized primitives.
func (g *Generator) Generators() []string { return slices.Clone(g.primitives) }

// FixedAngles returns the constant angles per primitive.
func (g *Generator) FixedAngles() map[string]float64 { return maps.Clone(g.fixed) }

// MaxCoupling returns the largest number of qubits a single gate couples.
func (g *Generator) MaxCoupling() int {
	m := 0
	for _, p := range g.primitives {
		m = max(m, len(p))
	}
	return m
}

// PastMoment returns the Pauli strings that stand for seq's gates when
// seq is passed as the moment preceding a new circuit: the first term of
// each gate's generator.
func PastMoment(seq circuit.Sequence) []pauli.String {
	if seq == nil {
		return nil
	}
	var out []pauli.String
	for _, op := range seq.Operations() {
		if gen := op.Generator(true); len(gen) > 0 {
			out = append(out, gen[0])
		}
	}
	return out
}

// Random returns a circuit of Depth moments. In every moment each qubit
// takes part in at most one gate, and a gate that repeats a Pauli string of
// the previous moment is left out, its qubits staying idle. past, which may
// be nil, is the moment before the first one.
func (g *Generator) Random(past circuit.Sequence) *circuit.Circuit {
	return g.RandomAfter(PastMoment(past))
}

// RandomAfter is Random with the preceding moment given as Pauli strings.
func (g *Generator) RandomAfter(past []pauli.String) *circuit.Circuit {
	out := circuit.New()
	for m := range g.depth {
		past = g.moment(out, past, m)
	}
	g.log.Debugw("generated circuit",
		logger.FieldDepth, g.depth,
		logger.FieldQubits, len(g.conn),
		logger.FieldGates, out.Len(),
	)
	return out
}

// moment fills one layer of out and returns the Pauli strings it drew,
// including the ones left out as repeats.
func (g *Generator) moment(out *circuit.Circuit, past []pauli.String, m int) []pauli.String {
	free := g.conn.Qubits()
	var current []pauli.String
	for len(free) > 0 && g.placeable(free) {
		p := g.primitives[g.rng.IntN(len(g.primitives))]
		q0 := free[g.rng.IntN(len(free))]
		avail := freeNeighbours(g.conn[q0], free)
		if len(avail) < len(p)-1 {
			g.log.Debugw("not enough free neighbours",
				logger.FieldMoment, m,
				logger.FieldGenerator, p,
				logger.FieldQubits, q0,
			)
			continue
		}

		qubits := []int{q0}
		for _, i := range g.rng.Perm(len(avail))[:len(p)-1] {
			qubits = append(qubits, avail[i])
		}
		ops := make(map[int]pauli.Op, len(qubits))
		for i, q := range qubits {
			ops[q] = pauli.Op(p[i])
		}
		ps := pauli.New(1, ops)
		current = append(current, ps)
		free = slices.DeleteFunc(free, func(q int) bool { return slices.Contains(qubits, q) })

		if slices.ContainsFunc(past, ps.Equal) {
			g.log.Debugw("skipping repeat of previous moment",
				logger.FieldMoment, m,
				logger.FieldGenerator, ps.Naked(),
			)
			continue
		}
		out.Add(circuit.Exp(ps, g.angle(p, out.Len())))
	}
	return current
}

// placeable reports whether some primitive fits on the free qubits.
func (g *Generator) placeable(free []int) bool {
	need := len(g.primitives[0])
	for _, p := range g.primitives[1:] {
		need = min(need, len(p))
	}
	for _, q := range free {
		if len(freeNeighbours(g.conn[q], free)) >= need-1 {
			return true
		}
	}
	return false
}

func freeNeighbours(neighbours, free []int) []int {
	var out []int
	for _, o := range neighbours {
		if slices.Contains(free, o) {
			out = append(out, o)
		}
	}
	return out
}

func (g *Generator) angle(p string, index int) angle.Angle {
	if v, ok := g.fixed[p]; ok {
		return angle.Constant(v)
	}
	return angle.Symbol(fmt.Sprintf("a_%s_%d", p, index))
}

func (g *Generator) String() string {
	var sb strings.Builder
	sb.WriteString("CircuitGenerator\n")
	row := func(k string, v any) { fmt.Fprintf(&sb, "%-30s : %v\n", k, v) }
	row("n_qubits", g.NumQubits())
	row("qubits", g.Qubits())
	if g.layout != "" {
		row("layout", g.layout)
	}
	row("depth", g.depth)
	row("generators", g.primitives)
	row("max_coupling", g.MaxCoupling())
	if len(g.fixed) > 0 {
		row("fix_angles", g.fixed)
	}
	return sb.String()
}
