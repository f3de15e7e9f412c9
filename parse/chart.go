package parse

import (
	"fmt"
	"strings"
)

// Chart is the Earley chart: one item set per input position 0..n. Each
// parse owns its chart exclusively; columns grow monotonically during
// closure and are never mutated afterwards.
type Chart struct {
	cols  []*ItemSet
	start string
}

func newChart(n int, start string) *Chart {
	cols := make([]*ItemSet, n+1)
	for i := range cols {
		cols[i] = newItemSet()
	}
	return &Chart{cols: cols, start: start}
}

// Len returns the number of columns, which is input length + 1.
func (c *Chart) Len() int {
	return len(c.cols)
}

// Column returns the item set at position k.
func (c *Chart) Column(k int) *ItemSet {
	return c.cols[k]
}

// Accepts reports whether the chart records a full derivation: a complete
// item for the start symbol in the last column with origin 0.
func (c *Chart) Accepts() bool {
	last := c.cols[len(c.cols)-1]
	for _, it := range last.Items() {
		if it.Lhs == c.start && it.Origin == 0 && it.IsComplete() {
			return true
		}
	}
	return false
}

// CompletedAt returns every complete item for name spanning columns
// start..end, in insertion order. Forest builders walk the chart with
// this query.
func (c *Chart) CompletedAt(name string, start, end int) []Item {
	if end < 0 || end >= len(c.cols) {
		return nil
	}
	var found []Item
	for _, it := range c.cols[end].Items() {
		if it.Lhs == name && it.Origin == start && it.IsComplete() {
			found = append(found, it)
		}
	}
	return found
}

// String renders every column's items, one column per block.
func (c *Chart) String() string {
	var b strings.Builder
	for k, col := range c.cols {
		fmt.Fprintf(&b, "=== %d ===\n", k)
		for _, it := range col.Items() {
			fmt.Fprintln(&b, it)
		}
	}
	return b.String()
}
