package pauli

import (
	"strconv"
	"strings"
	"unicode"

	"qgenenc/errors"
)

// ParseSum parses a sum of Pauli strings such as
//
//	1.0X(0)Y(1)+0.5Z(2)
//	-X(3) + 2*Y(0)Z(1)
//
// A term without a coefficient has coefficient ±1; a term without letters is
// an identity term. Whitespace is ignored.
func ParseSum(text string) (Sum, error) {
	p := &parser{src: strings.Map(dropSpace, text)}
	if p.src == "" {
		return nil, errors.New("empty pauli sum")
	}
	var out Sum
	for !p.done() {
		term, err := p.term(len(out) == 0)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", text)
		}
		out = append(out, term)
	}
	return out, nil
}

// ParseString parses exactly one Pauli string.
func ParseString(text string) (String, error) {
	terms, err := ParseSum(text)
	if err != nil {
		return String{}, err
	}
	if len(terms) != 1 {
		return String{}, errors.Newf("parse %q: expected 1 term, got %d", text, len(terms))
	}
	return terms[0], nil
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}

type parser struct {
	src string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) term(first bool) (String, error) {
	sign := 1.0
	switch p.peek() {
	case '+':
		p.pos++
	case '-':
		sign = -1
		p.pos++
	default:
		if !first {
			return String{}, errors.Newf("expected '+' or '-' at offset %d", p.pos)
		}
	}

	coeff := 1.0
	hasCoeff := false
	if c := p.peek(); isDigit(c) || c == '.' {
		v, err := p.number()
		if err != nil {
			return String{}, err
		}
		coeff, hasCoeff = v, true
		if p.peek() == '*' {
			p.pos++
		}
	}

	ops := map[int]Op{}
	for {
		c := p.peek()
		op := Op(unicode.ToUpper(rune(c)))
		if !op.Valid() {
			break
		}
		p.pos++
		q, err := p.index()
		if err != nil {
			return String{}, err
		}
		if _, dup := ops[q]; dup {
			return String{}, errors.Newf("qubit %d appears twice in one term", q)
		}
		ops[q] = op
	}

	if len(ops) == 0 && !hasCoeff {
		return String{}, errors.Newf("empty term at offset %d", p.pos)
	}
	if c := p.peek(); c != 0 && c != '+' && c != '-' {
		return String{}, errors.Newf("unexpected %q at offset %d", c, p.pos)
	}
	return String{ops: ops, Coeff: sign * coeff}, nil
}

func (p *parser) number() (float64, error) {
	start := p.pos
	for isDigit(p.peek()) || p.peek() == '.' {
		p.pos++
	}
	// exponent, e.g. 1e-05
	if c := p.peek(); c == 'e' || c == 'E' {
		save := p.pos
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		if !isDigit(p.peek()) {
			p.pos = save
		}
		for isDigit(p.peek()) {
			p.pos++
		}
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, errors.Newf("invalid coefficient %q", p.src[start:p.pos])
	}
	return v, nil
}

func (p *parser) index() (int, error) {
	if p.peek() != '(' {
		return 0, errors.Newf("expected '(' at offset %d", p.pos)
	}
	p.pos++
	start := p.pos
	for isDigit(p.peek()) {
		p.pos++
	}
	if start == p.pos || p.peek() != ')' {
		return 0, errors.Newf("expected qubit index at offset %d", start)
	}
	q, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, err
	}
	p.pos++
	return q, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
