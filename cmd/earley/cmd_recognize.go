package main

import (
	"errors"
	"fmt"

	"github.com/dhamidi/earley/parse"
	"github.com/spf13/cobra"
)

func newRecognizeCmd() *cobra.Command {
	var start string
	var useStdin bool

	cmd := &cobra.Command{
		Use:           "recognize <grammar-file> [token...]",
		Short:         "Report whether a token sequence is in the grammar's language",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammarFile(args[0], start)
			if err != nil {
				printErrors(err)
				return err
			}

			tokens, err := readTokens(args[1:], useStdin)
			if err != nil {
				return err
			}

			if !parse.Recognize(g, tokens) {
				fmt.Println("rejected")
				return errors.New("rejected")
			}
			fmt.Println("accepted")
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start symbol (required for EBNF grammars)")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "read whitespace-separated tokens from stdin")

	return cmd
}
