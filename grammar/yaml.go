package grammar

import (
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// YAML grammar files look like:
//
//	start: S
//	rules:
//	  S:
//	    - [A, B]
//	  A:
//	    - [a]
//	  B:
//	    - [b]
//
// A symbol whose first rune is an uppercase letter names a nonterminal;
// everything else is a terminal token value. An empty list is an epsilon
// right-hand side. Rule order in the document is preserved.

type yamlGrammar struct {
	Start string    `yaml:"start"`
	Rules yaml.Node `yaml:"rules"`
}

// ParseYAML decodes a grammar definition from YAML source and validates it.
func ParseYAML(data []byte) (*Grammar, error) {
	var doc yamlGrammar
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode grammar: %w", err)
	}
	if doc.Start == "" {
		return nil, fmt.Errorf("decode grammar: missing start symbol")
	}
	if doc.Rules.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode grammar: rules must be a mapping of nonterminal to production lists")
	}

	var productions []Production
	// Mapping node content alternates key, value; walking it keeps the
	// document's rule order, which map decoding would lose.
	for i := 0; i+1 < len(doc.Rules.Content); i += 2 {
		key := doc.Rules.Content[i]
		val := doc.Rules.Content[i+1]

		var alternatives [][]string
		if err := val.Decode(&alternatives); err != nil {
			return nil, fmt.Errorf("decode rules for %q: %w", key.Value, err)
		}
		for _, alt := range alternatives {
			rhs := make([]Symbol, len(alt))
			for j, name := range alt {
				rhs[j] = classify(name)
			}
			productions = append(productions, Production{Lhs: key.Value, Rhs: rhs})
		}
	}

	return New(doc.Start, productions)
}

// LoadYAML reads and parses a YAML grammar file.
func LoadYAML(filename string) (*Grammar, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	g, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return g, nil
}

// classify tags a symbol name: capitalized names are nonterminals.
func classify(name string) Symbol {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return NT(name)
	}
	return T(name)
}
