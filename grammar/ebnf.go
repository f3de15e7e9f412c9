package grammar

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"golang.org/x/exp/ebnf"
)

// FromEBNF lowers an EBNF grammar to plain context-free productions:
// alternatives become separate productions, and groups, options, and
// repetitions become synthesized nonterminals. Options and repetitions
// produce epsilon productions; repetitions lower left-recursively, which
// the chart parser handles directly. Character ranges are rejected: the
// parser operates on token values, not characters.
func FromEBNF(g ebnf.Grammar, start string) (*Grammar, error) {
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}

	lo := &lowering{counts: make(map[string]int)}

	// Sorted order keeps synthesized names stable across runs.
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := lo.alternatives(name, g[name].Expr); err != nil {
			return nil, err
		}
	}

	return New(start, lo.prods)
}

// ParseEBNF parses EBNF source and lowers it via FromEBNF.
func ParseEBNF(filename string, src io.Reader, start string) (*Grammar, error) {
	g, err := ebnf.Parse(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return FromEBNF(g, start)
}

// LoadEBNF reads, parses, and lowers an EBNF grammar file.
func LoadEBNF(filename, start string) (*Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseEBNF(filename, f, start)
}

type lowering struct {
	prods  []Production
	counts map[string]int
}

func (lo *lowering) emit(lhs string, rhs []Symbol) {
	lo.prods = append(lo.prods, Production{Lhs: lhs, Rhs: rhs})
}

func (lo *lowering) fresh(lhs, kind string) string {
	key := lhs + "_" + kind
	lo.counts[key]++
	return key + strconv.Itoa(lo.counts[key])
}

// alternatives emits one production per top-level alternative of expr.
func (lo *lowering) alternatives(lhs string, expr ebnf.Expression) error {
	switch e := expr.(type) {
	case nil:
		lo.emit(lhs, nil)
		return nil
	case ebnf.Alternative:
		for _, alt := range e {
			if err := lo.alternatives(lhs, alt); err != nil {
				return err
			}
		}
		return nil
	default:
		rhs, err := lo.sequence(lhs, expr)
		if err != nil {
			return err
		}
		lo.emit(lhs, rhs)
		return nil
	}
}

// sequence lowers expr to a single right-hand side.
func (lo *lowering) sequence(lhs string, expr ebnf.Expression) ([]Symbol, error) {
	seq, ok := expr.(ebnf.Sequence)
	if !ok {
		seq = ebnf.Sequence{expr}
	}
	rhs := make([]Symbol, 0, len(seq))
	for _, term := range seq {
		sym, err := lo.symbol(lhs, term)
		if err != nil {
			return nil, err
		}
		rhs = append(rhs, sym)
	}
	return rhs, nil
}

// symbol lowers a single term, synthesizing helper nonterminals for
// grouping constructs.
func (lo *lowering) symbol(lhs string, expr ebnf.Expression) (Symbol, error) {
	switch e := expr.(type) {
	case *ebnf.Name:
		return NT(e.String), nil

	case *ebnf.Token:
		return T(e.String), nil

	case *ebnf.Group:
		name := lo.fresh(lhs, "grp")
		if err := lo.alternatives(name, e.Body); err != nil {
			return Symbol{}, err
		}
		return NT(name), nil

	case *ebnf.Option:
		name := lo.fresh(lhs, "opt")
		lo.emit(name, nil)
		if err := lo.alternatives(name, e.Body); err != nil {
			return Symbol{}, err
		}
		return NT(name), nil

	case *ebnf.Repetition:
		name := lo.fresh(lhs, "rep")
		lo.emit(name, nil)
		if err := lo.repetition(name, e.Body); err != nil {
			return Symbol{}, err
		}
		return NT(name), nil

	case ebnf.Sequence:
		name := lo.fresh(lhs, "grp")
		if err := lo.alternatives(name, e); err != nil {
			return Symbol{}, err
		}
		return NT(name), nil

	case *ebnf.Range:
		return Symbol{}, fmt.Errorf("lower grammar: character ranges are not supported (%q … %q)", e.Begin.String, e.End.String)

	default:
		return Symbol{}, fmt.Errorf("lower grammar: unsupported expression %T", expr)
	}
}

// repetition emits name → name γ for every alternative γ of body.
func (lo *lowering) repetition(name string, body ebnf.Expression) error {
	alts, ok := body.(ebnf.Alternative)
	if !ok {
		alts = ebnf.Alternative{body}
	}
	for _, alt := range alts {
		rhs, err := lo.sequence(name, alt)
		if err != nil {
			return err
		}
		lo.emit(name, append([]Symbol{NT(name)}, rhs...))
	}
	return nil
}
