package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"qgenenc/codec"
	"qgenenc/logger"
	"qgenenc/render"
)

// ExportCmd writes a compiled circuit for viewing or other tools.
var ExportCmd = &cobra.Command{
	Use:   "export <file|string|-> -o <out>",
	Short: "Export a compiled circuit as txt, ansi, json, yaml or qasm",
	Long: `Compile a circuit and write it to --output, in the format its extension
names. By default every gate is expanded into its Pauli-string exponentials
with the controls folded into the generators, as configured under [export].

Examples:
  qgenenc export '@1.5708X(0)|' -o circuit.txt
  qgenenc export --expand=false bell.yaml -o bell.qasm`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	addVarFlag(ExportCmd)
	ExportCmd.Flags().StringP("output", "o", "", "output file (required)")
	ExportCmd.Flags().Bool("expand", true, "draw gates as Pauli-string exponentials (default from config)")
	ExportCmd.Flags().Bool("decompose-controls", true, "fold controls into the generators (default from config)")
	_ = ExportCmd.MarkFlagRequired("output")
}

func runExport(cmd *cobra.Command, args []string) error {
	vars, err := variables(cmd)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("output")
	opts := exportOptions()
	if cmd.Flags().Changed("expand") {
		opts.ExpandGenerators, _ = cmd.Flags().GetBool("expand")
	}
	if cmd.Flags().Changed("decompose-controls") {
		opts.DecomposeControls, _ = cmd.Flags().GetBool("decompose-controls")
	}

	c, err := readCircuit(cmd, args[0], vars)
	if err != nil {
		return err
	}
	if opts.ExpandGenerators && opts.DecomposeControls {
		err = codec.ExportTo(c, out)
	} else {
		err = render.Export(codec.Compile(c), out, opts)
	}
	if err != nil {
		return err
	}
	logger.Named("cli").Infow("exported circuit", logger.FieldFile, out, logger.FieldGates, c.Len())
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
	return nil
}
