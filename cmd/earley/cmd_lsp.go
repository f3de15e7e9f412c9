package main

import (
	"github.com/dhamidi/earley/ls"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the grammar language server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := ls.NewLSPServer("0.1.0")
			return server.RunStdio()
		},
	}
}
