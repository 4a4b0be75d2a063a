package circuit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"qgenenc/angle"
	"qgenenc/errors"
	"qgenenc/pauli"
)

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex    = regexp.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	stmtRegex    = regexp.MustCompile(`^([A-Za-z_]\w*)\s*(?:\(([^)]*)\))?\s*(.*)$`)
	operandRegex = regexp.MustCompile(`^(\w+)\s*\[\s*(\d+)\s*\]$`)
)

// qasmGate describes how a QASM gate name maps onto Gate.
type qasmGate struct {
	kind     Kind
	params   int
	controls int
	power    float64 // fixed gates only, 0 meaning 1
	phase    bool    // p/u1: the parameter λ becomes a Z power λ/π
}

var qasmGates = map[string]qasmGate{
	"h":    {kind: H},
	"x":    {kind: X},
	"y":    {kind: Y},
	"z":    {kind: Z},
	"s":    {kind: Z, power: 0.5},
	"sdg":  {kind: Z, power: -0.5},
	"t":    {kind: Z, power: 0.25},
	"tdg":  {kind: Z, power: -0.25},
	"rx":   {kind: Rx, params: 1},
	"ry":   {kind: Ry, params: 1},
	"rz":   {kind: Rz, params: 1},
	"p":    {kind: Z, params: 1, phase: true},
	"u1":   {kind: Z, params: 1, phase: true},
	"cx":   {kind: X, controls: 1},
	"cy":   {kind: Y, controls: 1},
	"cz":   {kind: Z, controls: 1},
	"ch":   {kind: H, controls: 1},
	"crx":  {kind: Rx, params: 1, controls: 1},
	"cry":  {kind: Ry, params: 1, controls: 1},
	"crz":  {kind: Rz, params: 1, controls: 1},
	"cp":   {kind: Z, params: 1, controls: 1, phase: true},
	"cu1":  {kind: Z, params: 1, controls: 1, phase: true},
	"ccx":  {kind: X, controls: 2},
	"swap": {},
}

// ParseQASM reads an OpenQASM 2 program. Measurements, barriers, classical
// registers and comments are skipped; any other unknown statement is an
// error. Several quantum registers are laid out one after the other.
func ParseQASM(qasm string) (*Circuit, error) {
	c := New()
	offsets := map[string]int{}
	next := 0

	for n, line := range strings.Split(qasm, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" || skipStatement(stmt) {
				continue
			}
			if strings.HasPrefix(stmt, "qreg") {
				m := qregRegex.FindStringSubmatch(stmt)
				if m == nil {
					return nil, errors.Newf("line %d: malformed qreg %q", n+1, stmt)
				}
				size, _ := strconv.Atoi(m[2])
				offsets[m[1]] = next
				next += size
				continue
			}
			gates, err := parseStatement(stmt, offsets)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", n+1)
			}
			c.Add(gates...)
		}
	}
	return c, nil
}

func skipStatement(stmt string) bool {
	for _, prefix := range []string{"OPENQASM", "include", "creg", "barrier", "measure"} {
		if strings.HasPrefix(stmt, prefix) {
			return true
		}
	}
	return false
}

func parseStatement(stmt string, offsets map[string]int) ([]Gate, error) {
	m := stmtRegex.FindStringSubmatch(stmt)
	if m == nil {
		return nil, errors.Newf("cannot parse %q", stmt)
	}
	name := strings.ToLower(m[1])
	def, ok := qasmGates[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidGate, "unsupported qasm gate %q", m[1])
	}

	var params []angle.Angle
	if strings.TrimSpace(m[2]) != "" {
		for _, p := range strings.Split(m[2], ",") {
			a, err := angle.Parse(p)
			if err != nil {
				return nil, err
			}
			params = append(params, a)
		}
	}
	if len(params) != def.params {
		return nil, errors.Newf("%s takes %d parameters, got %d", name, def.params, len(params))
	}

	var qubits []int
	for _, op := range strings.Split(m[3], ",") {
		om := operandRegex.FindStringSubmatch(strings.TrimSpace(op))
		if om == nil {
			return nil, errors.Newf("bad operand %q", op)
		}
		base, ok := offsets[om[1]]
		if !ok {
			return nil, errors.Newf("unknown register %q", om[1])
		}
		idx, _ := strconv.Atoi(om[2])
		qubits = append(qubits, base+idx)
	}

	if name == "swap" {
		if len(qubits) != 2 {
			return nil, errors.Newf("swap takes 2 qubits, got %d", len(qubits))
		}
		a, b := qubits[0], qubits[1]
		return []Gate{PauliX(b, a), PauliX(a, b), PauliX(b, a)}, nil
	}
	if len(qubits) != def.controls+1 {
		return nil, errors.Newf("%s takes %d qubits, got %d", name, def.controls+1, len(qubits))
	}

	controls := qubits[:def.controls]
	target := qubits[def.controls]
	var param angle.Angle
	switch {
	case def.phase:
		param = angle.Scale(params[0], 1/math.Pi)
	case def.params == 1:
		param = params[0]
	case def.power != 0:
		param = angle.Constant(def.power)
	}
	g := NewGate(def.kind, []int{target}, controls, param)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return []Gate{g}, nil
}

// ToQASM writes c as an OpenQASM 2 program. Every parameter must be
// numeric. ExpPauli gates are lowered to a basis change and a CX ladder
// around a single rz.
func ToQASM(c *Circuit) (string, error) {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", max(c.NumQubits(), 1))

	for i, g := range c.Gates {
		if err := writeGate(&sb, g); err != nil {
			return "", errors.Wrapf(err, "gate %d", i)
		}
	}
	return sb.String(), nil
}

func writeGate(sb *strings.Builder, g Gate) error {
	if err := g.Validate(); err != nil {
		return err
	}
	var value float64
	if g.param != nil {
		if !angle.IsConstant(g.param) {
			return errors.Wrapf(errors.ErrUnsupportedFormat, "qasm needs numeric parameters, %s has %s", g.kind, g.param)
		}
		value, _ = g.param.Resolve(nil)
	}
	ctrls := g.controls

	switch g.kind {
	case ExpPauli:
		if len(ctrls) > 0 {
			return errors.Wrap(errors.ErrUnsupportedFormat, "controlled ExpPauli has no qasm form")
		}
		writeExpPauli(sb, g.paulis, value)
		return nil
	case Rx, Ry, Rz:
		name := strings.ToLower(string(g.kind))
		for _, t := range g.targets {
			switch len(ctrls) {
			case 0:
				fmt.Fprintf(sb, "%s(%s) q[%d];\n", name, angle.Format(value), t)
			case 1:
				fmt.Fprintf(sb, "c%s(%s) q[%d], q[%d];\n", name, angle.Format(value), ctrls[0], t)
			default:
				return errors.Wrapf(errors.ErrUnsupportedFormat, "%s with %d controls", g.kind, len(ctrls))
			}
		}
		return nil
	}

	power := 1.0
	if g.param != nil {
		power = value
	}
	for _, t := range g.targets {
		if err := writeFixed(sb, g.kind, power, t, ctrls); err != nil {
			return err
		}
	}
	return nil
}

func writeFixed(sb *strings.Builder, kind Kind, power float64, t int, ctrls []int) error {
	name := strings.ToLower(string(kind))
	if power == 1 {
		switch {
		case len(ctrls) == 0:
			fmt.Fprintf(sb, "%s q[%d];\n", name, t)
		case len(ctrls) == 1:
			fmt.Fprintf(sb, "c%s q[%d], q[%d];\n", name, ctrls[0], t)
		case len(ctrls) == 2 && kind == X:
			fmt.Fprintf(sb, "ccx q[%d], q[%d], q[%d];\n", ctrls[0], ctrls[1], t)
		default:
			return errors.Wrapf(errors.ErrUnsupportedFormat, "%s with %d controls", kind, len(ctrls))
		}
		return nil
	}
	if kind == H {
		return errors.Wrapf(errors.ErrUnsupportedFormat, "H to the power %s", angle.Format(power))
	}
	if len(ctrls) > 1 {
		return errors.Wrapf(errors.ErrUnsupportedFormat, "%s power with %d controls", kind, len(ctrls))
	}

	// Z^p is the phase gate p(p·π); X and Y are rotated onto Z.
	var phase string
	if len(ctrls) == 0 {
		phase = fmt.Sprintf("p(%s) q[%d];\n", angle.Format(power*math.Pi), t)
	} else {
		phase = fmt.Sprintf("cu1(%s) q[%d], q[%d];\n", angle.Format(power*math.Pi), ctrls[0], t)
	}
	switch kind {
	case Z:
		sb.WriteString(phase)
	case X:
		fmt.Fprintf(sb, "h q[%d];\n%sh q[%d];\n", t, phase, t)
	case Y:
		fmt.Fprintf(sb, "sdg q[%d];\nh q[%d];\n%sh q[%d];\ns q[%d];\n", t, t, phase, t, t)
	}
	return nil
}

func writeExpPauli(sb *strings.Builder, ps pauli.String, theta float64) {
	qubits := ps.Qubits()
	basis := func(undo bool) {
		for _, q := range qubits {
			op, _ := ps.At(q)
			switch {
			case op == pauli.X:
				fmt.Fprintf(sb, "h q[%d];\n", q)
			case op == pauli.Y && !undo:
				fmt.Fprintf(sb, "rx(pi/2) q[%d];\n", q)
			case op == pauli.Y:
				fmt.Fprintf(sb, "rx(-pi/2) q[%d];\n", q)
			}
		}
	}

	basis(false)
	for i := 0; i+1 < len(qubits); i++ {
		fmt.Fprintf(sb, "cx q[%d], q[%d];\n", qubits[i], qubits[i+1])
	}
	fmt.Fprintf(sb, "rz(%s) q[%d];\n", angle.Format(theta*ps.Coeff), qubits[len(qubits)-1])
	for i := len(qubits) - 2; i >= 0; i-- {
		fmt.Fprintf(sb, "cx q[%d], q[%d];\n", qubits[i], qubits[i+1])
	}
	basis(true)
}
