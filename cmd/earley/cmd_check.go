package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var start string
	var show bool

	cmd := &cobra.Command{
		Use:           "check <grammar-file>",
		Short:         "Load and validate a grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammarFile(args[0], start)
			if err != nil {
				printErrors(err)
				return err
			}
			if show {
				fmt.Print(g)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start symbol (required for EBNF grammars)")
	cmd.Flags().BoolVar(&show, "print", false, "print the loaded productions")

	return cmd
}
