package circuit

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"qgenenc/angle"
	"qgenenc/errors"
	"qgenenc/pauli"
)

// File is the on-disk circuit description. YAML is a superset of JSON, so
// both are read by the same decoder:
//
//	gates:
//	  - gate: H
//	    target: 0
//	  - gate: X
//	    target: 4
//	    control: 2
//	  - gate: Rx
//	    target: [0]
//	    angle: a
//	  - gate: ExpPauli
//	    paulistring: X(0)Y(1)
//	    angle: pi/2
type File struct {
	Name  string     `yaml:"name,omitempty" json:"name,omitempty"`
	Gates []FileGate `yaml:"gates" json:"gates"`
}

// FileGate is one gate entry of File.
type FileGate struct {
	Gate        string    `yaml:"gate" json:"gate"`
	Target      QubitList `yaml:"target,omitempty" json:"target,omitempty"`
	Control     QubitList `yaml:"control,omitempty" json:"control,omitempty"`
	Angle       string    `yaml:"angle,omitempty" json:"angle,omitempty"`
	Power       string    `yaml:"power,omitempty" json:"power,omitempty"`
	PauliString string    `yaml:"paulistring,omitempty" json:"paulistring,omitempty"`
}

// QubitList accepts either a single index or a list of indices.
type QubitList []int

// UnmarshalYAML implements yaml.Unmarshaler.
func (q *QubitList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v int
		if err := node.Decode(&v); err != nil {
			return err
		}
		*q = QubitList{v}
		return nil
	case yaml.SequenceNode:
		var vs []int
		if err := node.Decode(&vs); err != nil {
			return err
		}
		*q = vs
		return nil
	}
	return errors.Newf("line %d: qubits must be an index or a list", node.Line)
}

// ParseFile decodes a YAML or JSON circuit description.
func ParseFile(data []byte) (*Circuit, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode circuit file")
	}
	return f.Circuit()
}

// LoadFile reads a circuit from path. Files ending in .qasm are read as
// OpenQASM 2; anything else as YAML/JSON.
func LoadFile(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".qasm") {
		return ParseQASM(string(data))
	}
	c, err := ParseFile(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return c, nil
}

// Circuit builds and validates the described circuit.
func (f File) Circuit() (*Circuit, error) {
	c := New()
	for i, fg := range f.Gates {
		g, err := fg.gate()
		if err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
		if err := g.Validate(); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
		c.Add(g)
	}
	return c, nil
}

func (fg FileGate) gate() (Gate, error) {
	kind, err := ParseKind(fg.Gate)
	if err != nil {
		return Gate{}, err
	}

	var param angle.Angle
	switch {
	case kind.Fixed() && fg.Power != "":
		if param, err = angle.Parse(fg.Power); err != nil {
			return Gate{}, err
		}
	case kind.Fixed() && fg.Angle != "":
		return Gate{}, errors.Wrapf(errors.ErrInvalidGate, "%s takes a power, not an angle", kind)
	case !kind.Fixed():
		if fg.Angle == "" {
			return Gate{}, errors.Wrapf(errors.ErrInvalidGate, "%s needs an angle", kind)
		}
		if param, err = angle.Parse(fg.Angle); err != nil {
			return Gate{}, err
		}
	}

	if kind == ExpPauli {
		ps, err := pauli.ParseString(fg.PauliString)
		if err != nil {
			return Gate{}, errors.Wrap(errors.ErrInvalidGate, err.Error())
		}
		return Exp(ps, param, fg.Control...), nil
	}
	return NewGate(kind, fg.Target, fg.Control, param), nil
}

// ToFile describes c in the file format.
func ToFile(c *Circuit) File {
	f := File{Gates: make([]FileGate, 0, len(c.Gates))}
	for _, g := range c.Gates {
		fg := FileGate{
			Gate:    string(g.kind),
			Target:  g.Targets(),
			Control: g.Controls(),
		}
		if g.param != nil {
			if g.kind.Fixed() {
				fg.Power = g.param.String()
			} else {
				fg.Angle = g.param.String()
			}
		}
		if g.kind == ExpPauli {
			fg.Target = nil
			fg.PauliString = strconv.FormatFloat(g.paulis.Coeff, 'g', -1, 64) + g.paulis.Naked()
		}
		f.Gates = append(f.Gates, fg)
	}
	return f
}

// MarshalFile encodes c as YAML.
func MarshalFile(c *Circuit) ([]byte, error) {
	return yaml.Marshal(ToFile(c))
}
