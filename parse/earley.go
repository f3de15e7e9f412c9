package parse

import (
	"github.com/dhamidi/earley/grammar"
)

// Parser recognizes token sequences against a grammar using Earley's
// algorithm. The grammar is shared and read-only, so one Parser may be
// used by any number of goroutines; each call builds its own chart.
type Parser struct {
	grammar *grammar.Grammar
}

// NewParser creates a parser for a validated grammar.
func NewParser(g *grammar.Grammar) *Parser {
	return &Parser{grammar: g}
}

// Recognize reports whether tokens is a sentence of the grammar's
// language. It always terminates with a verdict; rejection is a normal
// outcome, not an error.
func (p *Parser) Recognize(tokens []string) bool {
	return p.BuildChart(tokens).Accepts()
}

// BuildChart runs the closure engine over the input and returns the
// fully populated chart. Column k is complete (at its fixed point)
// before column k+1 is processed.
func (p *Parser) BuildChart(tokens []string) *Chart {
	start := p.grammar.Start()
	chart := newChart(len(tokens), start)

	prods, err := p.grammar.Productions(start)
	if err != nil {
		// Grammar construction guarantees the start symbol is defined.
		panic(err)
	}
	for _, prod := range prods {
		chart.Column(0).Add(Item{Lhs: start, Rhs: prod.Rhs, Dot: 0, Origin: 0})
	}

	for k := 0; k < chart.Len(); k++ {
		p.closeColumn(chart, tokens, k)
	}

	return chart
}

// closeColumn applies predict, scan, and complete to column k until a
// full pass adds nothing. The index loop doubles as the work list:
// items appended mid-pass are visited later in the same pass, and the
// outer loop re-runs the pass so effects of late additions (completions
// of nullable nonterminals in particular) also reach their fixed point.
func (p *Parser) closeColumn(chart *Chart, tokens []string, k int) {
	col := chart.Column(k)
	for {
		before := col.Len()
		for j := 0; j < col.Len(); j++ {
			it := col.Items()[j]
			next, ok := it.Next()
			switch {
			case !ok:
				p.complete(chart, k, it)
			case next.Kind == grammar.Terminal:
				p.scan(chart, tokens, k, it, next)
			default:
				p.predict(chart, k, next)
			}
		}
		if col.Len() == before {
			break
		}
	}
}

// predict adds a fresh item for every production of the nonterminal
// after the dot, with origin k.
func (p *Parser) predict(chart *Chart, k int, next grammar.Symbol) {
	prods, err := p.grammar.Productions(next.Name)
	if err != nil {
		// Unreachable on a validated grammar.
		return
	}
	for _, prod := range prods {
		chart.Column(k).Add(Item{Lhs: next.Name, Rhs: prod.Rhs, Dot: 0, Origin: k})
	}
}

// scan advances the item into column k+1 when the next token matches
// the terminal after the dot. At the last column there is nothing to
// scan and the guard makes it a no-op.
func (p *Parser) scan(chart *Chart, tokens []string, k int, it Item, next grammar.Symbol) {
	if k >= len(tokens) || tokens[k] != next.Name {
		return
	}
	chart.Column(k + 1).Add(it.advance())
}

// complete advances every item in the completed item's origin column
// that was waiting on its nonterminal.
func (p *Parser) complete(chart *Chart, k int, done Item) {
	for _, waiting := range chart.Column(done.Origin).Items() {
		next, ok := waiting.Next()
		if ok && next.Kind == grammar.Nonterminal && next.Name == done.Lhs {
			chart.Column(k).Add(waiting.advance())
		}
	}
}

// Recognize builds a one-off parser and recognizes tokens against g.
func Recognize(g *grammar.Grammar, tokens []string) bool {
	return NewParser(g).Recognize(tokens)
}
