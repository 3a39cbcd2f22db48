package overlap

// Pair is one (query row, subject row) match.
type Pair struct {
	Query   int
	Subject int
}

// Hits is the bipartite match list produced by Find: one Pair per
// overlapping (query, subject) combination, sorted by Query then Subject,
// with no duplicates.  NQuery and NSubject record the sizes of the two sets
// at construction time so per-query results can include rows with zero
// matches.  Hits values are consumed, never mutated, by the join layer.
type Hits struct {
	Pairs    []Pair
	NQuery   int
	NSubject int
}

// Len returns the number of matches.
func (h *Hits) Len() int { return len(h.Pairs) }

// GroupByQuery partitions the subject indices by query row.  The result has
// exactly NQuery groups; rows with no matches get an empty group.  Within a
// group, subject indices are ascending.
func (h *Hits) GroupByQuery() [][]int {
	groups := make([][]int, h.NQuery)
	for _, p := range h.Pairs {
		groups[p.Query] = append(groups[p.Query], p.Subject)
	}
	return groups
}

// CountPerQuery returns the number of matches per query row.  The result
// length always equals NQuery, and the counts sum to Len().
func (h *Hits) CountPerQuery() []int {
	counts := make([]int, h.NQuery)
	for _, p := range h.Pairs {
		counts[p.Query]++
	}
	return counts
}
