// Package pauli implements Pauli strings and weighted sums of them.
package pauli

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"qgenenc/errors"
)

// Op is a single-qubit Pauli operator.
type Op byte

const (
	X Op = 'X'
	Y Op = 'Y'
	Z Op = 'Z'
)

// Valid reports whether o is X, Y or Z.
func (o Op) Valid() bool { return o == X || o == Y || o == Z }

func (o Op) String() string { return string(rune(o)) }

// Mul returns the product o·p = phase·r. An empty r means identity.
func (o Op) Mul(p Op) (r Op, phase complex128) {
	if o == p {
		return 0, 1
	}
	switch {
	case o == X && p == Y:
		return Z, 1i
	case o == Y && p == Z:
		return X, 1i
	case o == Z && p == X:
		return Y, 1i
	case o == Y && p == X:
		return Z, -1i
	case o == Z && p == Y:
		return X, -1i
	default: // X·Z
		return Y, -1i
	}
}

// String is a tensor product of Pauli operators on distinct qubits with a
// real coefficient. The zero value is the identity with coefficient 0; use
// Identity or New.
type String struct {
	ops   map[int]Op
	Coeff float64
}

// New builds a Pauli string. ops is copied.
func New(coeff float64, ops map[int]Op) String {
	return String{ops: maps.Clone(ops), Coeff: coeff}
}

// Identity returns coeff·I.
func Identity(coeff float64) String {
	return String{Coeff: coeff}
}

// Single returns coeff·op(q).
func Single(coeff float64, op Op, q int) String {
	return String{ops: map[int]Op{q: op}, Coeff: coeff}
}

// FromLetters builds a string from a letter pattern such as "XY" placed on
// qubits in order.
func FromLetters(coeff float64, letters string, qubits []int) (String, error) {
	if len(letters) != len(qubits) {
		return String{}, errors.Newf("%d letters for %d qubits", len(letters), len(qubits))
	}
	ops := make(map[int]Op, len(letters))
	for i := range len(letters) {
		op := Op(letters[i])
		if !op.Valid() {
			return String{}, errors.Newf("invalid pauli letter %q", letters[i])
		}
		if _, dup := ops[qubits[i]]; dup {
			return String{}, errors.Newf("qubit %d used twice", qubits[i])
		}
		ops[qubits[i]] = op
	}
	return String{ops: ops, Coeff: coeff}, nil
}

// Len returns the number of non-identity factors.
func (s String) Len() int { return len(s.ops) }

// IsIdentity reports whether s acts trivially on every qubit.
func (s String) IsIdentity() bool { return len(s.ops) == 0 }

// At returns the operator on qubit q.
func (s String) At(q int) (Op, bool) {
	op, ok := s.ops[q]
	return op, ok
}

// Ops returns a copy of the qubit → operator map.
func (s String) Ops() map[int]Op { return maps.Clone(s.ops) }

// Qubits returns the qubits s acts on, ascending.
func (s String) Qubits() []int {
	return slices.Sorted(maps.Keys(s.ops))
}

// Letters returns the operator letters in ascending qubit order.
func (s String) Letters() string {
	var sb strings.Builder
	for _, q := range s.Qubits() {
		sb.WriteByte(byte(s.ops[q]))
	}
	return sb.String()
}

// Naked renders the operators without coefficient, e.g. "X(0)Y(3)".
func (s String) Naked() string {
	var sb strings.Builder
	for _, q := range s.Qubits() {
		sb.WriteByte(byte(s.ops[q]))
		sb.WriteByte('(')
		sb.WriteString(strconv.Itoa(q))
		sb.WriteByte(')')
	}
	return sb.String()
}

// Key identifies the operator part of s; equal strings share a key.
func (s String) Key() string { return s.Naked() }

// String renders coefficient and operators, e.g. "+0.5000X(0)Y(3)".
func (s String) String() string {
	return fmt.Sprintf("%+.4f%s", s.Coeff, s.Naked())
}

// Equal reports whether s and o apply the same operators, regardless of
// coefficient or construction order.
func (s String) Equal(o String) bool {
	return maps.Equal(s.ops, o.ops)
}

// WithCoeff returns a copy of s with coefficient c.
func (s String) WithCoeff(c float64) String {
	return String{ops: s.ops, Coeff: c}
}

// Scale returns k·s.
func (s String) Scale(k float64) String {
	return String{ops: s.ops, Coeff: k * s.Coeff}
}

// Mul returns the operator product s·o and its phase. The coefficient of the
// result is the product of coefficients; the phase is kept separate because
// it can be imaginary.
func (s String) Mul(o String) (String, complex128) {
	ops := maps.Clone(s.ops)
	if ops == nil {
		ops = map[int]Op{}
	}
	phase := complex128(1)
	for _, q := range o.Qubits() {
		p := o.ops[q]
		cur, ok := ops[q]
		if !ok {
			ops[q] = p
			continue
		}
		r, ph := cur.Mul(p)
		phase *= ph
		if r == 0 {
			delete(ops, q)
		} else {
			ops[q] = r
		}
	}
	return String{ops: ops, Coeff: s.Coeff * o.Coeff}, phase
}

// Commutes reports whether s and o commute.
func (s String) Commutes(o String) bool {
	anti := 0
	for q, p := range s.ops {
		if r, ok := o.ops[q]; ok && r != p {
			anti++
		}
	}
	return anti%2 == 0
}

// ──────────────────────────── Sum ────────────────────────────

// Sum is an ordered weighted sum of Pauli strings, e.g. a gate generator.
type Sum []String

// Add appends terms.
func (s Sum) Add(terms ...String) Sum {
	return append(slices.Clip(s), terms...)
}

// Scale multiplies every coefficient by k.
func (s Sum) Scale(k float64) Sum {
	out := make(Sum, len(s))
	for i, t := range s {
		out[i] = t.Scale(k)
	}
	return out
}

// Mul expands the product s·o term by term, left terms outermost. Products
// with an imaginary phase are rejected; they never occur between strings on
// disjoint qubits.
func (s Sum) Mul(o Sum) (Sum, error) {
	out := make(Sum, 0, len(s)*len(o))
	for _, a := range s {
		for _, b := range o {
			p, phase := a.Mul(b)
			if imag(phase) != 0 {
				return nil, errors.Newf("product %s·%s is not hermitian", a.Naked(), b.Naked())
			}
			out = append(out, p.Scale(real(phase)))
		}
	}
	return out, nil
}

// Simplify merges equal strings, keeping first-occurrence order, and drops
// terms whose coefficient vanishes.
func (s Sum) Simplify() Sum {
	index := make(map[string]int, len(s))
	merged := make(Sum, 0, len(s))
	for _, t := range s {
		if i, ok := index[t.Key()]; ok {
			merged[i].Coeff += t.Coeff
			continue
		}
		index[t.Key()] = len(merged)
		merged = append(merged, t)
	}
	out := merged[:0]
	for _, t := range merged {
		if math.Abs(t.Coeff) > 1e-12 {
			out = append(out, t)
		}
	}
	return out
}

// Commuting reports whether all terms pairwise commute, so that exp of the
// sum factors into a product of exponentials.
func (s Sum) Commuting() bool {
	for i := range s {
		for j := i + 1; j < len(s); j++ {
			if !s[i].Commutes(s[j]) {
				return false
			}
		}
	}
	return true
}

// String renders the sum as terms joined by their signs.
func (s Sum) String() string {
	if len(s) == 0 {
		return "0"
	}
	var sb strings.Builder
	for _, t := range s {
		sb.WriteString(t.String())
	}
	return sb.String()
}
