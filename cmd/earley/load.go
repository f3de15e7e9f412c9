package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/earley/grammar"
)

// loadGrammarFile picks a loader by file extension. YAML grammars name
// their start symbol in the document; EBNF grammars take it from --start.
func loadGrammarFile(filename, start string) (*grammar.Grammar, error) {
	switch ext := filepath.Ext(filename); ext {
	case ".yaml", ".yml":
		return grammar.LoadYAML(filename)
	case ".ebnf":
		if start == "" {
			return nil, fmt.Errorf("EBNF grammars require --start")
		}
		return grammar.LoadEBNF(filename, start)
	default:
		return nil, fmt.Errorf("unsupported grammar file extension: %s (expected .yaml, .yml, or .ebnf)", ext)
	}
}

// readTokens returns the input token sequence: the remaining command
// arguments, or whitespace-separated words from stdin with --stdin.
func readTokens(args []string, useStdin bool) ([]string, error) {
	if !useStdin {
		return args, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return strings.Fields(string(data)), nil
}
