package main

import (
	"fmt"

	"github.com/dhamidi/earley/parse"
	"github.com/spf13/cobra"
)

func newChartCmd() *cobra.Command {
	var start string
	var useStdin bool

	cmd := &cobra.Command{
		Use:           "chart <grammar-file> [token...]",
		Short:         "Dump the Earley chart for a token sequence",
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

			chart := parse.NewParser(g).BuildChart(tokens)
			fmt.Print(chart)
			if chart.Accepts() {
				fmt.Println("accepted")
			} else {
				fmt.Println("rejected")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start symbol (required for EBNF grammars)")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "read whitespace-separated tokens from stdin")

	return cmd
}
