// Package overlap answers bulk range-overlap queries between two interval
// sets and implements the relational layer on top of the resulting match
// list: grouping, counting, column carrying, per-group aggregation and pair
// intersection.
package overlap

import (
	"sort"

	biogo "github.com/biogo/store/interval"
	"github.com/grailbio/base/traverse"
	"github.com/rangelab/genomic/granges"
	"github.com/rangelab/genomic/interval"
)

// StrandPolicy selects how strands influence overlap matching.
type StrandPolicy int

const (
	// Ignore disregards strand entirely.
	Ignore StrandPolicy = iota
	// Respect requires compatible strands: Unstranded matches everything,
	// Plus and Minus match only themselves.
	Respect
)

// entry is a subject row stored in a per-sequence interval tree.  Positions
// are converted to half-open [start, limit) for the tree; zero-width rows
// become empty ranges and thus never match.
type entry struct {
	id     int
	start  interval.Pos
	limit  interval.Pos
	strand interval.Strand
}

func (e entry) Overlap(b biogo.IntRange) bool { return e.limit > b.Start && e.start < b.End }
func (e entry) Range() biogo.IntRange         { return biogo.IntRange{Start: e.start, End: e.limit} }
func (e entry) ID() uintptr                   { return uintptr(e.id) }

// Index is a query structure over one interval set (the subject).  It is
// read-only after Build, so concurrent Query calls need no locking.  Queries
// cost O(log M + K) for M subject rows and K results.
type Index struct {
	trees    map[string]*biogo.IntTree
	nSubject int
}

// Build groups the subject's rows by sequence and loads each group into an
// interval tree.  Insertion uses the fast path with a single AdjustRanges
// fixup per tree, the usual bulk-load pattern for biogo trees.
func Build(subject *granges.Set) *Index {
	x := &Index{
		trees:    map[string]*biogo.IntTree{},
		nSubject: subject.Len(),
	}
	for i, n := 0, subject.Len(); i < n; i++ {
		iv := subject.At(i)
		if iv.Empty() {
			// Zero-width rows can never share a base with anything.
			continue
		}
		tree := x.trees[iv.Seq]
		if tree == nil {
			tree = &biogo.IntTree{}
			x.trees[iv.Seq] = tree
		}
		_ = tree.Insert(entry{
			id:     i,
			start:  iv.Start,
			limit:  iv.End + 1,
			strand: iv.Strand,
		}, true)
	}
	for _, tree := range x.trees {
		tree.AdjustRanges()
	}
	return x
}

// Query returns the ascending subject row indices whose intervals share at
// least one base with iv on the same sequence, subject to the strand policy.
// A sequence the index has never seen yields zero matches, never an error.
func (x *Index) Query(iv interval.Interval, policy StrandPolicy) []int {
	tree := x.trees[iv.Seq]
	if tree == nil || iv.Empty() {
		return nil
	}
	probe := entry{start: iv.Start, limit: iv.End + 1}
	var ids []int
	tree.DoMatching(func(e biogo.IntInterface) (done bool) {
		hit := e.(entry)
		if policy == Respect && !interval.Compatible(iv.Strand, hit.strand) {
			return
		}
		ids = append(ids, hit.id)
		return
	}, probe)
	sort.Ints(ids)
	return ids
}

// Find builds an index over subject, queries every row of query in ascending
// row order, and concatenates the matches into a Hits value.  Queries are
// independent once the index is built and are fanned out with traverse.Each;
// the result order does not depend on scheduling.
func Find(query, subject *granges.Set, policy StrandPolicy) *Hits {
	x := Build(subject)
	n := query.Len()
	perQuery := make([][]int, n)
	_ = traverse.Each(n, func(i int) error {
		perQuery[i] = x.Query(query.At(i), policy)
		return nil
	})
	hits := &Hits{NQuery: n, NSubject: subject.Len()}
	for i, ids := range perQuery {
		for _, j := range ids {
			hits.Pairs = append(hits.Pairs, Pair{Query: i, Subject: j})
		}
	}
	return hits
}
