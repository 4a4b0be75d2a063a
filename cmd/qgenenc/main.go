package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qgenenc/cmd/qgenenc/commands"
	"qgenenc/config"
	"qgenenc/errors"
	"qgenenc/logger"
)

var (
	configPath string
	jsonLog    bool
)

var rootCmd = &cobra.Command{
	Use:   "qgenenc",
	Short: "qgenenc - generator-based string encoding for quantum circuits",
	Long: `qgenenc turns quantum circuits into compact strings of Pauli-string
exponentials and back.

Each token has the form prefix@coefficient PAULIS| where PAULIS is a
product such as X(0)Z(3). Numeric angles are folded into the coefficient;
symbolic angles keep their name in the prefix.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := logger.Initialize(jsonLog || cfg.Log.JSON, cfg.Log.Level); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		commands.Configure(cfg)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/qgenenc/qgenenc.toml, then the nearest ./qgenenc.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "log as JSON on stderr")

	rootCmd.AddCommand(commands.EncodeCmd)
	rootCmd.AddCommand(commands.DecodeCmd)
	rootCmd.AddCommand(commands.PruneCmd)
	rootCmd.AddCommand(commands.RandomCmd)
	rootCmd.AddCommand(commands.ExportCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
