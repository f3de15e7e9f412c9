package parse

import (
	"strings"
	"testing"

	"github.com/dhamidi/earley/grammar"
)

func mustGrammar(t *testing.T, start string, prods []grammar.Production) *grammar.Grammar {
	t.Helper()
	g, err := grammar.New(start, prods)
	if err != nil {
		t.Fatalf("grammar.New: %v", err)
	}
	return g
}

// abGrammar is S → A B, A → "a", B → "b".
func abGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	return mustGrammar(t, "S", []grammar.Production{
		{Lhs: "S", Rhs: []grammar.Symbol{grammar.NT("A"), grammar.NT("B")}},
		{Lhs: "A", Rhs: []grammar.Symbol{grammar.T("a")}},
		{Lhs: "B", Rhs: []grammar.Symbol{grammar.T("b")}},
	})
}

// exprGrammar is the ambiguous, left-recursive S → S "+" S | "1".
func exprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	return mustGrammar(t, "S", []grammar.Production{
		{Lhs: "S", Rhs: []grammar.Symbol{grammar.NT("S"), grammar.T("+"), grammar.NT("S")}},
		{Lhs: "S", Rhs: []grammar.Symbol{grammar.T("1")}},
	})
}

func TestRecognizeSequence(t *testing.T) {
	g := abGrammar(t)

	tests := []struct {
		tokens []string
		want   bool
	}{
		{[]string{"a", "b"}, true},
		{[]string{"a"}, false},
		{[]string{"b"}, false},
		{[]string{}, false},
		{[]string{"a", "b", "b"}, false},
		{[]string{"b", "a"}, false},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.tokens, " "), func(t *testing.T) {
			if got := Recognize(g, tt.tokens); got != tt.want {
				t.Errorf("Recognize(%v) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestChartContents(t *testing.T) {
	g := abGrammar(t)
	chart := NewParser(g).BuildChart([]string{"a", "b"})

	if chart.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", chart.Len())
	}

	// Column 1 holds the scanned "a" and the advanced S item.
	if len(chart.CompletedAt("A", 0, 1)) != 1 {
		t.Error("column 1 is missing the complete A item")
	}
	foundAdvanced := false
	for _, it := range chart.Column(1).Items() {
		if it.Lhs == "S" && it.Dot == 1 && it.Origin == 0 {
			foundAdvanced = true
		}
	}
	if !foundAdvanced {
		t.Error("column 1 is missing [S → A • B, 0]")
	}

	if len(chart.CompletedAt("S", 0, 2)) != 1 {
		t.Error("column 2 is missing the complete S item spanning the input")
	}
	if !chart.Accepts() {
		t.Error("Accepts() = false, want true")
	}
}

func TestRecognizeAmbiguousLeftRecursive(t *testing.T) {
	g := exprGrammar(t)
	tokens := []string{"1", "+", "1", "+", "1"}

	chart := NewParser(g).BuildChart(tokens)
	if !chart.Accepts() {
		t.Fatal("Accepts() = false, want true")
	}

	// The full span completes, and the last column carries further
	// complete S items for the sub-spans, so the ambiguity is visible
	// without forest construction.
	if len(chart.CompletedAt("S", 0, 5)) == 0 {
		t.Error("no complete S item spanning 0-5")
	}
	complete := 0
	for _, it := range chart.Column(5).Items() {
		if it.Lhs == "S" && it.IsComplete() {
			complete++
		}
	}
	if complete < 2 {
		t.Errorf("column 5 has %d complete S items, want at least 2", complete)
	}
}

func TestRecognizeEpsilon(t *testing.T) {
	// S → A, A → ε.
	g := mustGrammar(t, "S", []grammar.Production{
		{Lhs: "S", Rhs: []grammar.Symbol{grammar.NT("A")}},
		{Lhs: "A", Rhs: nil},
	})

	if !Recognize(g, nil) {
		t.Error("Recognize([]) = false, want true")
	}
	if Recognize(g, []string{"a"}) {
		t.Error("Recognize([a]) = true, want false")
	}
}

func TestRecognizeNullableCompletion(t *testing.T) {
	// S → A A, A → ε | "a". Completing the nullable A in the same column
	// it was predicted in is the classic fixed-point corner case.
	g := mustGrammar(t, "S", []grammar.Production{
		{Lhs: "S", Rhs: []grammar.Symbol{grammar.NT("A"), grammar.NT("A")}},
		{Lhs: "A", Rhs: nil},
		{Lhs: "A", Rhs: []grammar.Symbol{grammar.T("a")}},
	})

	tests := []struct {
		tokens []string
		want   bool
	}{
		{nil, true},
		{[]string{"a"}, true},
		{[]string{"a", "a"}, true},
		{[]string{"a", "a", "a"}, false},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.tokens, " "), func(t *testing.T) {
			if got := Recognize(g, tt.tokens); got != tt.want {
				t.Errorf("Recognize(%v) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestRecognizeTerminatesOnRecursionShapes(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		prods  []grammar.Production
		tokens []string
		want   bool
	}{
		{
			name:  "left recursion",
			start: "S",
			prods: []grammar.Production{
				{Lhs: "S", Rhs: []grammar.Symbol{grammar.NT("S"), grammar.T("a")}},
				{Lhs: "S", Rhs: []grammar.Symbol{grammar.T("a")}},
			},
			tokens: []string{"a", "a", "a"},
			want:   true,
		},
		{
			name:  "right recursion",
			start: "S",
			prods: []grammar.Production{
				{Lhs: "S", Rhs: []grammar.Symbol{grammar.T("a"), grammar.NT("S")}},
				{Lhs: "S", Rhs: []grammar.Symbol{grammar.T("a")}},
			},
			tokens: []string{"a", "a", "a"},
			want:   true,
		},
		{
			name:  "unit self cycle",
			start: "A",
			prods: []grammar.Production{
				{Lhs: "A", Rhs: []grammar.Symbol{grammar.NT("A")}},
				{Lhs: "A", Rhs: []grammar.Symbol{grammar.T("a")}},
			},
			tokens: []string{"a"},
			want:   true,
		},
		{
			name:  "mutual cycle",
			start: "S",
			prods: []grammar.Production{
				{Lhs: "S", Rhs: []grammar.Symbol{grammar.NT("A")}},
				{Lhs: "A", Rhs: []grammar.Symbol{grammar.NT("S")}},
				{Lhs: "A", Rhs: []grammar.Symbol{grammar.T("x")}},
			},
			tokens: []string{"x"},
			want:   true,
		},
		{
			name:  "unit cycle rejects foreign token",
			start: "A",
			prods: []grammar.Production{
				{Lhs: "A", Rhs: []grammar.Symbol{grammar.NT("A")}},
				{Lhs: "A", Rhs: []grammar.Symbol{grammar.T("a")}},
			},
			tokens: []string{"b"},
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrammar(t, tt.start, tt.prods)
			if got := Recognize(g, tt.tokens); got != tt.want {
				t.Errorf("Recognize(%v) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestClosureIdempotence(t *testing.T) {
	g := exprGrammar(t)
	tokens := []string{"1", "+", "1"}

	p := NewParser(g)
	chart := p.BuildChart(tokens)

	sizes := make([]int, chart.Len())
	for k := range sizes {
		sizes[k] = chart.Column(k).Len()
	}

	// Re-running closure on the finished chart must add nothing.
	for k := 0; k < chart.Len(); k++ {
		p.closeColumn(chart, tokens, k)
	}
	for k := range sizes {
		if got := chart.Column(k).Len(); got != sizes[k] {
			t.Errorf("column %d grew from %d to %d on re-closure", k, sizes[k], got)
		}
	}
}

func TestDuplicateProductionsCollapse(t *testing.T) {
	g := mustGrammar(t, "S", []grammar.Production{
		{Lhs: "S", Rhs: []grammar.Symbol{grammar.T("a")}},
		{Lhs: "S", Rhs: []grammar.Symbol{grammar.T("a")}},
	})

	chart := NewParser(g).BuildChart([]string{"a"})
	if !chart.Accepts() {
		t.Fatal("Accepts() = false, want true")
	}
	if got := len(chart.CompletedAt("S", 0, 1)); got != 1 {
		t.Errorf("duplicate production yielded %d complete items, want 1", got)
	}
}

// terminalCount counts the terminals in a sentential form.
func terminalCount(form []grammar.Symbol) int {
	n := 0
	for _, s := range form {
		if s.Kind == grammar.Terminal {
			n++
		}
	}
	return n
}

func formKey(form []grammar.Symbol) string {
	parts := make([]string, len(form))
	for i, s := range form {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// language enumerates every sentence of at most maxLen terminals by
// breadth-first leftmost derivation. Grammars passed here must add a
// terminal on every non-epsilon production so pruning by terminal count
// bounds the search.
func language(t *testing.T, g *grammar.Grammar, maxLen int) map[string]bool {
	t.Helper()
	sentences := make(map[string]bool)
	seen := make(map[string]bool)
	queue := [][]grammar.Symbol{{grammar.NT(g.Start())}}

	for len(queue) > 0 {
		form := queue[0]
		queue = queue[1:]

		key := formKey(form)
		if seen[key] {
			continue
		}
		seen[key] = true

		if terminalCount(form) > maxLen {
			continue
		}

		leftmost := -1
		for i, s := range form {
			if s.Kind == grammar.Nonterminal {
				leftmost = i
				break
			}
		}
		if leftmost < 0 {
			words := make([]string, len(form))
			for i, s := range form {
				words[i] = s.Name
			}
			sentences[strings.Join(words, " ")] = true
			continue
		}

		prods, err := g.Productions(form[leftmost].Name)
		if err != nil {
			t.Fatalf("Productions: %v", err)
		}
		for _, p := range prods {
			next := make([]grammar.Symbol, 0, len(form)-1+len(p.Rhs))
			next = append(next, form[:leftmost]...)
			next = append(next, p.Rhs...)
			next = append(next, form[leftmost+1:]...)
			queue = append(queue, next)
		}
	}

	return sentences
}

// allSequences enumerates every token sequence over the alphabet up to
// maxLen tokens, the empty sequence included.
func allSequences(alphabet []string, maxLen int) [][]string {
	sequences := [][]string{{}}
	frontier := [][]string{{}}
	for n := 0; n < maxLen; n++ {
		var next [][]string
		for _, seq := range frontier {
			for _, tok := range alphabet {
				ext := append(append([]string{}, seq...), tok)
				next = append(next, ext)
				sequences = append(sequences, ext)
			}
		}
		frontier = next
	}
	return sequences
}

func TestRecognizeMatchesBruteForce(t *testing.T) {
	tests := []struct {
		name     string
		grammar  func(t *testing.T) *grammar.Grammar
		alphabet []string
		maxLen   int
	}{
		{
			name:     "ambiguous expressions",
			grammar:  exprGrammar,
			alphabet: []string{"1", "+"},
			maxLen:   5,
		},
		{
			name: "balanced parentheses",
			grammar: func(t *testing.T) *grammar.Grammar {
				return mustGrammar(t, "S", []grammar.Production{
					{Lhs: "S", Rhs: []grammar.Symbol{grammar.T("("), grammar.NT("S"), grammar.T(")")}},
					{Lhs: "S", Rhs: nil},
				})
			},
			alphabet: []string{"(", ")"},
			maxLen:   4,
		},
		{
			name:     "sequence",
			grammar:  abGrammar,
			alphabet: []string{"a", "b"},
			maxLen:   3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.grammar(t)
			want := language(t, g, tt.maxLen)
			p := NewParser(g)

			for _, tokens := range allSequences(tt.alphabet, tt.maxLen) {
				inLanguage := want[strings.Join(tokens, " ")]
				if got := p.Recognize(tokens); got != inLanguage {
					t.Errorf("Recognize(%v) = %v, brute force says %v", tokens, got, inLanguage)
				}
			}
		})
	}
}

func TestParserReusableAcrossInputs(t *testing.T) {
	p := NewParser(exprGrammar(t))

	if !p.Recognize([]string{"1"}) {
		t.Error("Recognize([1]) = false, want true")
	}
	if p.Recognize([]string{"+", "1"}) {
		t.Error("Recognize([+ 1]) = true, want false")
	}
	if !p.Recognize([]string{"1", "+", "1"}) {
		t.Error("Recognize([1 + 1]) = false, want true")
	}
}
