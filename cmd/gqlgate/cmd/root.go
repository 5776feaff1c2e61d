// Package cmd provides the CLI commands for the query gateway.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gqlgate/gqlgate/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gqlgate",
	Short: "gqlgate - GraphQL HTTP gateway",
	Long: `gqlgate is an HTTP gateway in front of a GraphQL query engine.

It normalizes inbound HTTP requests into engine executions and frames the
results back out: complete responses as plain JSON, incremental results as
a multipart/mixed stream.

Quick start:
  1. Create a config file: gqlgate.yaml (engine.upstream is required)
  2. Run: gqlgate start

Configuration:
  Config is loaded from gqlgate.yaml in the current directory,
  $HOME/.gqlgate/, or /etc/gqlgate/.

  Environment variables can override config values with the GQLGATE_ prefix.
  Example: GQLGATE_SERVER_HTTP_ADDR=:9090

Commands:
  start       Start the gateway server
  hash-key    Generate a hash for an API key
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./gqlgate.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
