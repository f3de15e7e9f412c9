package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "earley",
		Short: "Chart parsing tools for context-free grammars",
	}

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRecognizeCmd())
	rootCmd.AddCommand(newChartCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
