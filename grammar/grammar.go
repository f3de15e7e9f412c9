// Package grammar defines context-free grammars over tagged terminal and
// nonterminal symbols. A Grammar is validated once at construction and is
// immutable afterwards, so a single table can be shared by any number of
// concurrent parses.
package grammar

import (
	"fmt"
	"strings"
)

// SymbolKind distinguishes terminals from nonterminals.
type SymbolKind int

const (
	// Terminal symbols are atomic token values matched against the input.
	Terminal SymbolKind = iota
	// Nonterminal symbols expand via the grammar's productions.
	Nonterminal
)

// Symbol is a single grammar symbol. Symbols are compared by value.
type Symbol struct {
	Kind SymbolKind
	Name string
}

// T returns a terminal symbol for the given token value.
func T(name string) Symbol {
	return Symbol{Kind: Terminal, Name: name}
}

// NT returns a nonterminal symbol with the given name.
func NT(name string) Symbol {
	return Symbol{Kind: Nonterminal, Name: name}
}

// IsTerminal reports whether the symbol is a terminal.
func (s Symbol) IsTerminal() bool {
	return s.Kind == Terminal
}

func (s Symbol) String() string {
	if s.Kind == Terminal {
		return fmt.Sprintf("%q", s.Name)
	}
	return s.Name
}

// Production is a single rewrite rule Lhs → Rhs. An empty Rhs is an
// epsilon production.
type Production struct {
	Lhs string
	Rhs []Symbol
}

func (p Production) String() string {
	if len(p.Rhs) == 0 {
		return p.Lhs + " → ε"
	}
	parts := make([]string, len(p.Rhs))
	for i, s := range p.Rhs {
		parts[i] = s.String()
	}
	return p.Lhs + " → " + strings.Join(parts, " ")
}

// UndefinedSymbolError reports a grammar that references a nonterminal
// with no productions, or a start symbol with no productions. It is
// raised at construction time, never during parsing.
type UndefinedSymbolError struct {
	Name string // the undefined nonterminal
	Lhs  string // production it was referenced from; empty for the start symbol
}

func (e *UndefinedSymbolError) Error() string {
	if e.Lhs == "" {
		return fmt.Sprintf("grammar: start symbol %q has no productions", e.Name)
	}
	return fmt.Sprintf("grammar: production for %q references undefined nonterminal %q", e.Lhs, e.Name)
}

// UnknownNonterminalError reports a lookup of a nonterminal that is not
// defined in the grammar.
type UnknownNonterminalError struct {
	Name string
}

func (e *UnknownNonterminalError) Error() string {
	return fmt.Sprintf("grammar: unknown nonterminal %q", e.Name)
}

// Grammar is an immutable context-free grammar: an ordered production
// table keyed by nonterminal, plus a designated start symbol.
type Grammar struct {
	start string
	rules map[string][]Production
	names []string // nonterminals in definition order
}

// New builds a grammar from a start symbol and a production list.
// Productions sharing an Lhs keep their relative order. New fails with
// *UndefinedSymbolError if the start symbol has no productions or if any
// right-hand side references a nonterminal that is never defined.
func New(start string, productions []Production) (*Grammar, error) {
	g := &Grammar{
		start: start,
		rules: make(map[string][]Production),
	}
	for _, p := range productions {
		if _, ok := g.rules[p.Lhs]; !ok {
			g.names = append(g.names, p.Lhs)
		}
		g.rules[p.Lhs] = append(g.rules[p.Lhs], p)
	}

	if len(g.rules[start]) == 0 {
		return nil, &UndefinedSymbolError{Name: start}
	}
	for _, name := range g.names {
		for _, p := range g.rules[name] {
			for _, sym := range p.Rhs {
				if sym.Kind == Nonterminal && len(g.rules[sym.Name]) == 0 {
					return nil, &UndefinedSymbolError{Name: sym.Name, Lhs: p.Lhs}
				}
			}
		}
	}

	return g, nil
}

// Start returns the designated start symbol.
func (g *Grammar) Start() string {
	return g.start
}

// Has reports whether the grammar defines productions for name.
func (g *Grammar) Has(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// Productions returns the ordered productions for a nonterminal, or
// *UnknownNonterminalError if it is not defined.
func (g *Grammar) Productions(name string) ([]Production, error) {
	prods, ok := g.rules[name]
	if !ok {
		return nil, &UnknownNonterminalError{Name: name}
	}
	return prods, nil
}

// Nonterminals returns the defined nonterminal names in definition order.
func (g *Grammar) Nonterminals() []string {
	names := make([]string, len(g.names))
	copy(names, g.names)
	return names
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, name := range g.names {
		for _, p := range g.rules[name] {
			fmt.Fprintln(&b, p)
		}
	}
	return b.String()
}
