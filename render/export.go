package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"qgenenc/circuit"
	"qgenenc/errors"
	"qgenenc/logger"
)

// Format is an export target, named after its file extension.
type Format string

const (
	FormatText Format = "txt"
	FormatANSI Format = "ansi"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatQASM Format = "qasm"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatANSI, FormatJSON, FormatYAML, FormatQASM}

// ParseFormat resolves a format name or file extension, with or without
// the leading dot.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "txt", "text":
		return FormatText, nil
	case "ansi":
		return FormatANSI, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "qasm":
		return FormatQASM, nil
	}
	return "", errors.WithHintf(
		errors.Wrapf(errors.ErrUnsupportedFormat, "%q", name),
		"supported formats: %v", Formats,
	)
}

// FormatFor picks the format from filename's extension.
func FormatFor(filename string) (Format, error) {
	return ParseFormat(filepath.Ext(filename))
}

// Options control how a circuit is prepared before rendering.
type Options struct {
	// ExpandGenerators draws every gate as its Pauli-string exponentials.
	ExpandGenerators bool
	// DecomposeControls folds controls into the generators on expansion.
	DecomposeControls bool
	// Styles used by the text formats. Zero means PlainStyles for text and
	// ANSIStyles for ansi.
	Styles *Styles
}

// Expand rewrites c into ExpPauli gates, one per non-trivial generator
// term, each at the gate's own angle. Without decomposeControls the
// controls stay on the ExpPauli gates.
func Expand(c *circuit.Circuit, decomposeControls bool) *circuit.Circuit {
	out := circuit.New()
	for _, g := range c.Gates {
		var ctrls []int
		if !decomposeControls {
			ctrls = g.Controls()
		}
		for _, ps := range g.Generator(decomposeControls) {
			if ps.IsIdentity() {
				continue
			}
			out.Add(circuit.Exp(ps, g.Angle(), ctrls...))
		}
	}
	return out
}

// Render returns c in format f.
func Render(c *circuit.Circuit, f Format, opts Options) ([]byte, error) {
	if opts.ExpandGenerators {
		c = Expand(c, opts.DecomposeControls)
	}
	switch f {
	case FormatText, FormatANSI:
		st := PlainStyles()
		if f == FormatANSI {
			st = ANSIStyles()
		}
		if opts.Styles != nil {
			st = *opts.Styles
		}
		return []byte(Diagram(c, st)), nil
	case FormatJSON:
		data, err := json.MarshalIndent(circuit.ToFile(c), "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encode json")
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return circuit.MarshalFile(c)
	case FormatQASM:
		s, err := circuit.ToQASM(c)
		return []byte(s), err
	}
	return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "%q", f)
}

// Export writes c to filename in the format its extension names.
func Export(c *circuit.Circuit, filename string, opts Options) error {
	f, err := FormatFor(filename)
	if err != nil {
		return err
	}
	data, err := Render(c, f, opts)
	if err != nil {
		return errors.Wrapf(err, "render %s", filename)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	logger.Named("render").Debugw("exported circuit",
		logger.FieldFile, filename,
		logger.FieldFormat, string(f),
		logger.FieldGates, c.Len(),
	)
	return nil
}
