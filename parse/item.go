// Package parse implements Earley chart parsing over the grammars defined
// in package grammar: a recognizer for arbitrary context-free languages,
// including ambiguous, left-recursive, and nullable ones. The populated
// chart is exposed so a consumer can attach forest construction on top.
package parse

import (
	"strconv"
	"strings"

	"github.com/dhamidi/earley/grammar"
)

// Item is an Earley item: progress through one production instance.
// Dot indexes into Rhs; Origin is the chart column where recognition of
// this instance began. Items are immutable values; advancing the dot
// produces a new item. Two items with equal Lhs, Rhs, Dot, and Origin
// are the same item.
type Item struct {
	Lhs    string
	Rhs    []grammar.Symbol
	Dot    int
	Origin int
}

// IsComplete reports whether the dot has reached the end of the
// right-hand side.
func (it Item) IsComplete() bool {
	return it.Dot >= len(it.Rhs)
}

// Next returns the symbol after the dot. ok is false for complete items.
func (it Item) Next() (sym grammar.Symbol, ok bool) {
	if it.IsComplete() {
		return grammar.Symbol{}, false
	}
	return it.Rhs[it.Dot], true
}

// advance returns a copy of the item with the dot moved one symbol right.
func (it Item) advance() Item {
	return Item{Lhs: it.Lhs, Rhs: it.Rhs, Dot: it.Dot + 1, Origin: it.Origin}
}

// key is the item's value identity, used for set deduplication.
func (it Item) key() string {
	var b strings.Builder
	b.WriteString(it.Lhs)
	for _, s := range it.Rhs {
		b.WriteByte(0)
		if s.Kind == grammar.Terminal {
			b.WriteByte('t')
		} else {
			b.WriteByte('n')
		}
		b.WriteString(s.Name)
	}
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(it.Dot))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(it.Origin))
	return b.String()
}

// String renders the item in the usual dotted-rule notation,
// e.g. [S → A • B, 0].
func (it Item) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(it.Lhs)
	b.WriteString(" →")
	for i, s := range it.Rhs {
		if i == it.Dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(s.String())
	}
	if it.IsComplete() {
		b.WriteString(" •")
	}
	b.WriteString(", ")
	b.WriteString(strconv.Itoa(it.Origin))
	b.WriteString("]")
	return b.String()
}

// ItemSet is a deduplicating, insertion-ordered set of items forming one
// chart column. Items are only ever added, never removed.
type ItemSet struct {
	items []Item
	seen  map[string]bool
}

func newItemSet() *ItemSet {
	return &ItemSet{seen: make(map[string]bool)}
}

// Add inserts the item if it is not already present and reports whether
// it was inserted. Insertion is idempotent, which is what bounds each
// column and guarantees the closure loop terminates.
func (s *ItemSet) Add(it Item) bool {
	key := it.key()
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.items = append(s.items, it)
	return true
}

// Items returns the column's items in insertion order. The returned
// slice is the set's backing storage; callers must not modify it.
func (s *ItemSet) Items() []Item {
	return s.items
}

// Len returns the number of distinct items in the set.
func (s *ItemSet) Len() int {
	return len(s.items)
}
