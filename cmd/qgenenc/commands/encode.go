package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"qgenenc/circuit"
	"qgenenc/logger"
)

// EncodeCmd encodes a circuit file into a circuit string.
var EncodeCmd = &cobra.Command{
	Use:   "encode <file|->",
	Short: "Encode a circuit file as a circuit string",
	Long: `Encode a YAML, JSON or OpenQASM 2 circuit into a circuit string.

Hadamards are compiled into Ry/Rz/Ry first. Angles bound with --var are
folded into the coefficients; unbound symbols stay in the token prefix.
With "-" a YAML or JSON circuit is read from stdin.

Examples:
  qgenenc encode bell.yaml
  qgenenc encode --var theta=pi/3 ansatz.qasm`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	addVarFlag(EncodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	vars, err := variables(cmd)
	if err != nil {
		return err
	}

	var c *circuit.Circuit
	if args[0] == "-" {
		text, err := readText(cmd, "-")
		if err != nil {
			return err
		}
		c, err = circuit.ParseFile([]byte(text))
		if err != nil {
			return err
		}
	} else {
		c, err = circuit.LoadFile(args[0])
		if err != nil {
			return err
		}
	}

	cd, err := newCodec()
	if err != nil {
		return err
	}
	s, err := cd.Encode(c, vars)
	if err != nil {
		return err
	}
	logger.Named("cli").Debugw("encoded circuit",
		logger.FieldGates, c.Len(),
		logger.FieldTokens, len(cd.Fragments(s)),
	)
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}
