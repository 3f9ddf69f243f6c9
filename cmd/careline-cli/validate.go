package main

import (
	"fmt"

	careline "github.com/careline/careline"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config>",
	Short: "Validate a config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := careline.LoadConfig(args[0])
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := careline.ValidateConfig(*cfg); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
