package generator

import (
	"maps"
	"slices"
	"strings"

	"qgenenc/circuit"
	"qgenenc/errors"
)

// Named connectivity layouts.
const (
	AllToAll  = "all_to_all"
	LocalLine = "local_line"
	LocalRing = "local_ring"
)

// Layouts lists the names MakeConnectivity accepts.
var Layouts = []string{AllToAll, LocalLine, LocalRing}

// Connectivity maps each qubit to the qubits a multi-qubit generator may
// couple it with.
type Connectivity map[int][]int

// MakeConnectivity builds a named layout over qubits 0..numQubits-1.
func MakeConnectivity(layout string, numQubits int) (Connectivity, error) {
	if numQubits <= 0 {
		return nil, errors.Newf("connectivity %q needs a positive qubit count, got %d", layout, numQubits)
	}
	conn := Connectivity{}
	switch strings.ToLower(strings.TrimSpace(layout)) {
	case AllToAll:
		for q := range numQubits {
			conn[q] = []int{}
			for o := range numQubits {
				if o != q {
					conn[q] = append(conn[q], o)
				}
			}
		}
	case LocalLine:
		for q := range numQubits {
			conn.link(q, q+1, numQubits)
			conn.link(q, q-1, numQubits)
		}
	case LocalRing:
		for q := range numQubits {
			conn.link(q, (q+1)%numQubits, numQubits)
			conn.link(q, (q-1+numQubits)%numQubits, numQubits)
		}
	default:
		return nil, errors.WithHintf(
			errors.Newf("unknown connectivity %q", layout),
			"known layouts: %s", strings.Join(Layouts, ", "),
		)
	}
	return conn, nil
}

// link adds o to q's neighbours unless it is out of range, q itself or
// already present.
func (c Connectivity) link(q, o, n int) {
	if _, ok := c[q]; !ok {
		c[q] = []int{}
	}
	if o < 0 || o >= n || o == q || slices.Contains(c[q], o) {
		return
	}
	c[q] = append(c[q], o)
}

// ConnectivityFromCircuit would derive the coupling map from the gates of
// c. It is not supported.
func ConnectivityFromCircuit(c *circuit.Circuit) (Connectivity, error) {
	return nil, errors.New("connectivity from a circuit is not supported")
}

// Qubits returns the qubits of c in ascending order.
func (c Connectivity) Qubits() []int {
	return slices.Sorted(maps.Keys(c))
}

// Validate checks that every neighbour is itself a qubit of c.
func (c Connectivity) Validate() error {
	if len(c) == 0 {
		return errors.New("empty connectivity")
	}
	for _, q := range c.Qubits() {
		for _, o := range c[q] {
			if _, ok := c[o]; !ok {
				return errors.Newf("qubit %d lists neighbour %d, which is not in the map", q, o)
			}
			if o == q {
				return errors.Newf("qubit %d lists itself as a neighbour", q)
			}
		}
	}
	return nil
}
