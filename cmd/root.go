// Package cmd implements the shopbot CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "🛍️"

var configPath string

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "shopbot",
	Short: logo + " shopbot — conversational shopping assistant",
	Long:  logo + " shopbot — an LLM-driven storefront: search the catalog, compare vendor offers, and check out, all in chat",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "shopbot.yaml", "Path to config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
}
