package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"qgenenc/codec"
	"qgenenc/errors"
)

// PruneCmd drops gates whose angle is close to zero.
var PruneCmd = &cobra.Command{
	Use:   "prune <file|string|->",
	Short: "Drop gates whose angle is 0 modulo 4π",
	Long: `Remove every parametrized gate whose angle lies within --threshold
of 0 modulo 4π. Fixed gates without a power and gates with unbound
angles are kept. In a circuit string the angle is the token prefix: a
numeric angle folded into the coefficient (empty prefix) reads as 1 and is
never pruned.

The result is printed as a circuit string unless --format is given.

Examples:
  qgenenc prune '0@1.0000X(0)|@1.0000Z(1)|'
  qgenenc prune --threshold 1e-3 --format yaml circuit.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPrune,
}

func init() {
	addVarFlag(PruneCmd)
	PruneCmd.Flags().Float64P("threshold", "t", 0, "prune threshold (default from config prune.threshold)")
	PruneCmd.Flags().StringP("format", "f", "", "output format instead of a circuit string")
}

func runPrune(cmd *cobra.Command, args []string) error {
	vars, err := variables(cmd)
	if err != nil {
		return err
	}
	threshold := cfg.Prune.Threshold
	if cmd.Flags().Changed("threshold") {
		threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if threshold < 0 {
		return errors.Newf("--threshold must not be negative, got %g", threshold)
	}

	c, err := readCircuit(cmd, args[0], vars)
	if err != nil {
		return err
	}
	pruned, dropped := codec.Prune(c, vars, threshold)
	fmt.Fprintf(cmd.ErrOrStderr(), "dropped %d of %d gates\n", dropped, c.Len())

	format, _ := cmd.Flags().GetString("format")
	return writeCircuit(cmd, pruned, format, vars)
}
