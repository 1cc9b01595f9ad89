package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the herogame CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "herogame",
		Short: "Game account backend",
		Long: `Herogame is a small game backend: account registration and login,
signed session tokens, and starter hero management over HTTP.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSeedCmd())

	return cmd
}
