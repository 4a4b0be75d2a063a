package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/errors"
	"qgenenc/generator"
)

// RandomCmd draws a random generator circuit.
var RandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Generate a random circuit of Pauli-string exponentials",
	Long: `Draw a random circuit moment by moment. Each moment places generators
on free qubits allowed by the connectivity and never repeats a generator of
the previous moment. Angles are symbols named a_<PAULIS>_<index> unless
fixed with --fix.

Flags override the [generator] section of the configuration.

Examples:
  qgenenc random --qubits 4 --seed 7
  qgenenc random --connectivity local_line --generators X,ZZ --fix ZZ=pi/2
  qgenenc random --past circuit.yaml --format txt`,
	Args: cobra.NoArgs,
	RunE: runRandom,
}

func init() {
	RandomCmd.Flags().IntP("qubits", "n", 0, "number of qubits")
	RandomCmd.Flags().IntP("depth", "d", 0, "number of moments (0 = one per qubit)")
	RandomCmd.Flags().StringP("connectivity", "c", "", "qubit layout: "+strings.Join(generator.Layouts, ", "))
	RandomCmd.Flags().StringSliceP("generators", "g", nil, "primitive Pauli strings, e.g. X,Y,ZZ")
	RandomCmd.Flags().StringArray("fix", nil, "fix a primitive's angle, e.g. --fix XY=pi/2 (repeatable)")
	RandomCmd.Flags().Uint64("seed", 0, "random seed (0 = random)")
	RandomCmd.Flags().String("past", "", "circuit string or file whose first moment the new circuit follows")
	RandomCmd.Flags().StringP("format", "f", "", "output format instead of a circuit string")
}

func runRandom(cmd *cobra.Command, args []string) error {
	gc := cfg.Generator
	flags := cmd.Flags()
	if flags.Changed("qubits") {
		gc.Qubits, _ = flags.GetInt("qubits")
	}
	if flags.Changed("depth") {
		gc.Depth, _ = flags.GetInt("depth")
	}
	if flags.Changed("connectivity") {
		gc.Connectivity, _ = flags.GetString("connectivity")
	}
	if flags.Changed("generators") {
		gc.Generators, _ = flags.GetStringSlice("generators")
	}
	if flags.Changed("seed") {
		gc.Seed, _ = flags.GetUint64("seed")
	}
	fixes, _ := flags.GetStringArray("fix")
	if len(fixes) > 0 {
		merged := make(map[string]string, len(gc.FixAngles)+len(fixes))
		for k, v := range gc.FixAngles {
			merged[k] = v
		}
		for _, f := range fixes {
			p, v, ok := strings.Cut(f, "=")
			if !ok {
				return errors.WithHintf(errors.Newf("--fix: expected PAULIS=angle, got %q", f), "e.g. --fix XY=pi/2")
			}
			merged[strings.TrimSpace(p)] = strings.TrimSpace(v)
		}
		gc.FixAngles = merged
	}

	local := *cfg
	local.Generator = gc
	if err := local.Validate(); err != nil {
		return err
	}
	gen, err := local.NewGenerator()
	if err != nil {
		return err
	}

	var past *circuit.Circuit
	if p, _ := flags.GetString("past"); p != "" {
		past, err = readCircuit(cmd, p, angle.Variables{})
		if err != nil {
			return errors.Wrap(err, "--past")
		}
	}

	var c *circuit.Circuit
	if past != nil {
		c = gen.Random(past)
	} else {
		c = gen.Random(nil)
	}

	format, _ := flags.GetString("format")
	return writeCircuit(cmd, c, format, nil)
}
