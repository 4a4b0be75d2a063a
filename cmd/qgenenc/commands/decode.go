package commands

import (
	"github.com/spf13/cobra"
)

// DecodeCmd decodes a circuit string.
var DecodeCmd = &cobra.Command{
	Use:   "decode <string|->",
	Short: "Decode a circuit string",
	Long: `Decode a circuit string into a circuit of Pauli-string exponentials
and print it in the chosen format (txt, ansi, json, yaml, qasm).

Prefixes naming a variable bound with --var become numeric angles.

Examples:
  qgenenc decode '@1.5708X(0)|theta@1.0000Z(0)Z(1)|'
  qgenenc decode --format txt --var theta=0.2 - < circuit.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	addVarFlag(DecodeCmd)
	DecodeCmd.Flags().StringP("format", "f", "yaml", "output format: txt, ansi, json, yaml or qasm")
}

func runDecode(cmd *cobra.Command, args []string) error {
	vars, err := variables(cmd)
	if err != nil {
		return err
	}
	text, err := readText(cmd, args[0])
	if err != nil {
		return err
	}
	cd, err := newCodec()
	if err != nil {
		return err
	}
	c, err := cd.Decode(text, vars)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	return writeCircuit(cmd, c, format, vars)
}
