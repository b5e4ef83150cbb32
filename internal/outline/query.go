package outline

import (
	"cmp"
	"fmt"
	"slices"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// WeekPattern matches a week block together with the date that opens it.
const WeekPattern = "(week (date) @date) @full_week"

// Capture names bound by WeekPattern.
const (
	CaptureWeek = "full_week"
	CaptureDate = "date"
)

// Capture slots of a Match. Slot 0 always holds the outer week node and slot
// 1 the inner date node, regardless of how the engine numbers captures.
const (
	SlotWeek = iota
	SlotDate
)

var slotNames = [2]string{SlotWeek: CaptureWeek, SlotDate: CaptureDate}

// Capture is one named node bound by a match.
type Capture struct {
	Name string
	Node tree_sitter.Node
}

// Match is one instance of the week pattern satisfied against a tree.
type Match struct {
	Captures [2]Capture
}

// Week returns the outer week node.
func (m *Match) Week() *tree_sitter.Node { return &m.Captures[SlotWeek].Node }

// Date returns the inner date node.
func (m *Match) Date() *tree_sitter.Node { return &m.Captures[SlotDate].Node }

// Query is a compiled week pattern. It is immutable once built and may be
// shared between goroutines; each Matches call owns its own cursor.
type Query struct {
	pattern string
	query   *tree_sitter.Query
	index   [2]uint
}

// CompileQuery compiles pattern against lang. The pattern must bind both the
// full_week and date captures. Failures are returned as *PatternError.
func CompileQuery(lang *tree_sitter.Language, pattern string) (*Query, error) {
	q, qerr := tree_sitter.NewQuery(lang, pattern)
	if qerr != nil {
		return nil, newPatternError(pattern, qerr)
	}

	compiled := &Query{pattern: pattern, query: q}
	for slot, name := range slotNames {
		idx, ok := q.CaptureIndexForName(name)
		if !ok {
			q.Close()
			return nil, &PatternError{
				Pattern: pattern,
				Message: fmt.Sprintf("missing capture @%s", name),
			}
		}
		compiled.index[slot] = idx
	}
	return compiled, nil
}

// Pattern returns the source text of the query.
func (q *Query) Pattern() string { return q.pattern }

// Matches runs the query over root and returns every complete match ordered
// by the start offset of its week node. source must be the exact buffer the
// tree was parsed from.
func (q *Query) Matches(root *tree_sitter.Node, source []byte) []Match {
	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()

	var matches []Match
	it := qc.Matches(q.query, root, source)
	for {
		m := it.Next()
		if m == nil {
			break
		}

		var (
			match  Match
			filled [2]bool
		)
		for _, c := range m.Captures {
			for slot, idx := range q.index {
				if uint(c.Index) == idx {
					match.Captures[slot] = Capture{Name: slotNames[slot], Node: c.Node}
					filled[slot] = true
				}
			}
		}
		if filled[SlotWeek] && filled[SlotDate] {
			matches = append(matches, match)
		}
	}

	// Document order.
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(a.Week().StartByte(), b.Week().StartByte())
	})
	return matches
}

// Close releases the underlying tree-sitter query.
func (q *Query) Close() {
	if q.query != nil {
		q.query.Close()
	}
}
