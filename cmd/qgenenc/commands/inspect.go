package commands

import (
	"github.com/spf13/cobra"

	"qgenenc/tui"
)

// InspectCmd opens the interactive inspector.
var InspectCmd = &cobra.Command{
	Use:   "inspect [file|string]",
	Short: "Edit a circuit string and watch it decode live",
	Long: `Open the terminal inspector. The circuit string is edited on the right
and decoded on every keystroke into a diagram and the per-qubit
probabilities of the simulated state.

Keys: ^G random circuit, ^X prune, ^T bind a variable, ^S export,
^R reset, ^O action menu, Esc/^C quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	addVarFlag(InspectCmd)
	InspectCmd.Flags().StringP("output", "o", "circuit.txt", "file written by ^S")
}

func runInspect(cmd *cobra.Command, args []string) error {
	vars, err := variables(cmd)
	if err != nil {
		return err
	}
	cd, err := newCodec()
	if err != nil {
		return err
	}
	gen, err := cfg.NewGenerator()
	if err != nil {
		return err
	}

	var input string
	if len(args) == 1 {
		c, err := readCircuit(cmd, args[0], vars)
		if err != nil {
			return err
		}
		if input, err = cd.Encode(c, vars); err != nil {
			return err
		}
	}

	out, _ := cmd.Flags().GetString("output")
	return tui.Run(tui.Options{
		Codec:      cd,
		Generator:  gen,
		Vars:       vars,
		Input:      input,
		ExportPath: out,
		Threshold:  cfg.Prune.Threshold,
	})
}
