package granges

import (
	"sort"

	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"
	"github.com/rangelab/genomic/interval"
)

// The set-algebra operations below are all per-group computations, where a
// group is a sequence name plus, unless the caller ignores strand, a strand.
// Groups are independent, so they are fanned out with traverse.Each and the
// results reassembled in deterministic genomic order.

type groupKey struct {
	seq    string
	strand interval.Strand
}

// groups partitions the set's non-empty intervals.  When ignoreStrand is
// set, every interval lands in its sequence's Unstranded group and the
// reported strand of derived intervals is Unstranded.
func (s *Set) groups(ignoreStrand bool) (map[groupKey][]interval.Interval, []groupKey) {
	m := map[groupKey][]interval.Interval{}
	for _, iv := range s.ivs {
		if iv.Empty() {
			continue
		}
		key := groupKey{seq: iv.Seq, strand: iv.Strand}
		if ignoreStrand {
			key.strand = interval.Unstranded
		}
		iv.Strand = key.strand
		m[key] = append(m[key], iv)
	}
	keys := make([]groupKey, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].seq != keys[b].seq {
			return keys[a].seq < keys[b].seq
		}
		return keys[a].strand < keys[b].strand
	})
	return m, keys
}

// mergeGroup merges overlapping and touching (end+1 == next start) intervals
// of one group.  The input is copied, never mutated.
func mergeGroup(ivs []interval.Interval) []interval.Interval {
	sorted := append([]interval.Interval{}, ivs...)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].Start != sorted[b].Start {
			return sorted[a].Start < sorted[b].Start
		}
		return sorted[a].End < sorted[b].End
	})
	var merged []interval.Interval
	for _, iv := range sorted {
		if n := len(merged); n > 0 && merged[n-1].End+1 >= iv.Start {
			if iv.End > merged[n-1].End {
				merged[n-1].End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// assemble flattens per-group results into a new Set in genomic order,
// carrying the source set's universe.  Set algebra drops all metadata
// columns: a merged or derived range has no single source row.
func (s *Set) assemble(keys []groupKey, results [][]interval.Interval) *Set {
	out := s.emptyLike()
	for i := range keys {
		out.ivs = append(out.ivs, results[i]...)
	}
	sort.SliceStable(out.ivs, func(a, b int) bool {
		return out.ivs[a].Before(out.ivs[b])
	})
	return out
}

// Reduce merges overlapping and adjacent intervals per (sequence[, strand])
// group.  Adjacent means touching: end+1 == next start merges.  The result
// has no metadata columns and is in genomic order; Reduce is idempotent.
func Reduce(s *Set, ignoreStrand bool) *Set {
	m, keys := s.groups(ignoreStrand)
	results := make([][]interval.Interval, len(keys))
	_ = traverse.Each(len(keys), func(i int) error {
		results[i] = mergeGroup(m[keys[i]])
		return nil
	})
	return s.assemble(keys, results)
}

// Disjoin partitions each group's covered region into maximal atoms whose
// boundaries are the distinct start and end+1 positions of the inputs.  The
// atoms are pairwise non-overlapping, and their union of coordinates equals
// the union covered by Reduce.
func Disjoin(s *Set, ignoreStrand bool) *Set {
	m, keys := s.groups(ignoreStrand)
	results := make([][]interval.Interval, len(keys))
	_ = traverse.Each(len(keys), func(i int) error {
		results[i] = disjoinGroup(keys[i], m[keys[i]])
		return nil
	})
	return s.assemble(keys, results)
}

func disjoinGroup(key groupKey, ivs []interval.Interval) []interval.Interval {
	bounds := make([]interval.Pos, 0, 2*len(ivs))
	for _, iv := range ivs {
		bounds = append(bounds, iv.Start, iv.End+1)
	}
	sort.Ints(bounds)
	// Deduplicate in place.
	uniq := bounds[:0]
	for i, b := range bounds {
		if i == 0 || b != bounds[i-1] {
			uniq = append(uniq, b)
		}
	}
	// An atom [p, q-1] between consecutive boundaries is emitted iff at least
	// one input interval covers it; parity of the merged endpoint sequence
	// answers that in O(1) amortized per boundary.
	endpoints := interval.Endpoints(mergeGroup(ivs))
	var atoms []interval.Interval
	ei := interval.EndpointIndex(0)
	for i := 0; i+1 < len(uniq); i++ {
		ei.Update(uniq[i], endpoints)
		if !ei.Contained() {
			continue
		}
		atoms = append(atoms, interval.Interval{
			Seq:    key.seq,
			Start:  uniq[i],
			End:    uniq[i+1] - 1,
			Strand: key.strand,
		})
	}
	return atoms
}

// Gaps computes the complement of Reduce within [1, U] for each group, where
// U is the sequence's registered universe length.  Sequences present in the
// set but absent from the universe registry make Gaps fail with
// ErrMissingUniverse; no other operation consults the registry.
//
// When strand is honored, the complement is computed independently for the
// Plus, Minus and Unstranded groups of each sequence, and each is taken
// against the FULL sequence span rather than a strand-partitioned one.  A
// stranded complement therefore includes positions covered only on the
// opposite strand.  This mirrors the domain convention downstream consumers
// depend on; do not "fix" it.
func Gaps(s *Set, ignoreStrand bool) (*Set, error) {
	m, _ := s.groups(ignoreStrand)
	seqSet := map[string]bool{}
	for _, iv := range s.ivs {
		seqSet[iv.Seq] = true
	}
	seqs := make([]string, 0, len(seqSet))
	for seq := range seqSet {
		if _, ok := s.universe[seq]; !ok {
			return nil, errors.Wrapf(ErrMissingUniverse, "granges.Gaps: sequence %s", seq)
		}
		seqs = append(seqs, seq)
	}
	sort.Strings(seqs)

	strands := []interval.Strand{interval.Unstranded}
	if !ignoreStrand {
		strands = []interval.Strand{interval.Unstranded, interval.Plus, interval.Minus}
	}
	keys := make([]groupKey, 0, len(seqs)*len(strands))
	for _, seq := range seqs {
		for _, strand := range strands {
			keys = append(keys, groupKey{seq: seq, strand: strand})
		}
	}
	results := make([][]interval.Interval, len(keys))
	_ = traverse.Each(len(keys), func(i int) error {
		results[i] = complementGroup(keys[i], mergeGroup(m[keys[i]]), s.universe[keys[i].seq])
		return nil
	})
	return s.assemble(keys, results), nil
}

// complementGroup walks the merged group's covered spans with a UnionScanner
// and emits the uncovered stretches of [1, length].
func complementGroup(key groupKey, merged []interval.Interval, length interval.Pos) []interval.Interval {
	var gaps []interval.Interval
	cursor := interval.Pos(1)
	scanner := interval.NewUnionScanner(interval.Endpoints(merged))
	var start, limit interval.Pos
	for scanner.Scan(&start, &limit, length+1) {
		if start > cursor {
			gaps = append(gaps, interval.Interval{Seq: key.seq, Start: cursor, End: start - 1, Strand: key.strand})
		}
		if limit > cursor {
			cursor = limit
		}
	}
	if cursor <= length {
		gaps = append(gaps, interval.Interval{Seq: key.seq, Start: cursor, End: length, Strand: key.strand})
	}
	return gaps
}
