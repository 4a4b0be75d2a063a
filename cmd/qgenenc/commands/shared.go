// Package commands implements the qgenenc subcommands.
package commands

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/codec"
	"qgenenc/config"
	"qgenenc/errors"
	"qgenenc/logger"
	"qgenenc/render"
)

// cfg is the configuration the root command loaded.
var cfg = config.Default()

// Configure sets the configuration used by every command.
func Configure(c *config.Config) {
	if c != nil {
		cfg = c
	}
}

func addVarFlag(cmd *cobra.Command) {
	cmd.Flags().StringArray("var", nil, "bind a symbolic angle, e.g. --var theta=pi/2 (repeatable)")
}

func variables(cmd *cobra.Command) (angle.Variables, error) {
	assignments, err := cmd.Flags().GetStringArray("var")
	if err != nil {
		return nil, err
	}
	vars, err := angle.ParseVariables(assignments)
	if err != nil {
		return nil, errors.Wrap(err, "--var")
	}
	return vars, nil
}

func newCodec() (*codec.Codec, error) {
	return cfg.Codec()
}

// readText returns arg, or stdin when arg is "-".
func readText(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	return strings.TrimSpace(string(data)), nil
}

// readCircuit loads arg as a circuit file when one exists at that path and
// decodes it as a circuit string otherwise.
func readCircuit(cmd *cobra.Command, arg string, vars angle.Variables) (*circuit.Circuit, error) {
	if arg != "-" {
		if st, err := os.Stat(arg); err == nil && !st.IsDir() {
			logger.Named("cli").Debugw("loading circuit file", logger.FieldFile, arg)
			return circuit.LoadFile(arg)
		}
	}
	text, err := readText(cmd, arg)
	if err != nil {
		return nil, err
	}
	cd, err := newCodec()
	if err != nil {
		return nil, err
	}
	return cd.Decode(text, vars)
}

func exportOptions() render.Options {
	return render.Options{
		ExpandGenerators:  cfg.Export.ExpandGenerators,
		DecomposeControls: cfg.Export.DecomposeControls,
	}
}

// writeCircuit renders c to stdout. An empty format prints the circuit
// string instead.
func writeCircuit(cmd *cobra.Command, c *circuit.Circuit, format string, vars angle.Variables) error {
	out := cmd.OutOrStdout()
	if format == "" {
		cd, err := newCodec()
		if err != nil {
			return err
		}
		s, err := cd.Encode(c, vars)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, s+"\n")
		return err
	}
	f, err := render.ParseFormat(format)
	if err != nil {
		return err
	}
	var opts render.Options
	if f == render.FormatText && cfg.Export.Color {
		// colours only when stdout is a terminal
		st := render.DefaultStyles()
		opts.Styles = &st
	}
	data, err := render.Render(c, f, opts)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
