package main

import (
	"fmt"
	"os"

	careline "github.com/careline/careline"
	"github.com/spf13/cobra"

	// Register built-in plugins.
	_ "github.com/careline/careline/internal/plugins/logger"
	_ "github.com/careline/careline/internal/plugins/sanitizer"
	_ "github.com/careline/careline/internal/plugins/styler"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "careline-cli",
	Short: "Careline customer support pipeline CLI",
	Long: `careline-cli drives the Careline support pipeline from a terminal.

Run "careline-cli chat" to talk to the pipeline interactively, either
in-process or against a running carelined server (--remote).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (YAML or JSON)")
}

// loadConfig returns the defaults when no --config flag was given.
func loadConfig() (careline.Config, error) {
	if configPath == "" {
		return careline.DefaultConfig(), nil
	}
	cfg, err := careline.LoadConfig(configPath)
	if err != nil {
		return careline.Config{}, err
	}
	if err := careline.ValidateConfig(*cfg); err != nil {
		return careline.Config{}, err
	}
	return *cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
