// Package coverage converts an interval set into compact per-sequence depth
// profiles: for every base of a sequence, how many input intervals span it.
// Profiles are run-length encoded, since genomic depth vectors are long and
// mostly flat.
package coverage

import (
	"sort"

	"github.com/grailbio/base/traverse"
	"github.com/rangelab/genomic/granges"
	"github.com/rangelab/genomic/interval"
)

// Run is one maximal stretch of constant depth.
type Run struct {
	Length interval.Pos
	Value  int
}

// Profile maps sequence name to its run-length-encoded depth vector over
// positions 1..L, where L is the sequence's universe length, or the maximum
// observed interval end when the source set has no registered length.
// Invariants: run lengths are positive, adjacent runs always differ in
// value, and lengths sum to L.
type Profile map[string][]Run

// Length returns the total profile length for seq (0 if absent).
func (p Profile) Length(seq string) interval.Pos {
	var total interval.Pos
	for _, run := range p[seq] {
		total += run.Length
	}
	return total
}

// At returns the depth at 1-based position pos, or 0 outside the profile.
func (p Profile) At(seq string, pos interval.Pos) int {
	cursor := interval.Pos(1)
	for _, run := range p[seq] {
		if pos < cursor+run.Length {
			if pos < cursor {
				return 0
			}
			return run.Value
		}
		cursor += run.Length
	}
	return 0
}

// Compute builds the depth profile of a set.  Coverage is strand-oblivious:
// Plus, Minus and Unstranded intervals all add depth alike.  A caller that
// wants per-strand profiles should Select by strand first and run Compute on
// each part.
//
// The implementation is an event sweep (+1 at each start, -1 one past each
// end, sorted, prefix-summed), so cost is O(N log N) in the number of
// intervals rather than O(N * width).  Sequences are independent and are
// processed with traverse.Each.
func Compute(s *granges.Set) Profile {
	events := map[string][]event{}
	maxEnd := map[string]interval.Pos{}
	for i, n := 0, s.Len(); i < n; i++ {
		iv := s.At(i)
		if iv.Empty() {
			// Zero-width intervals span no base.
			continue
		}
		events[iv.Seq] = append(events[iv.Seq], event{iv.Start, +1}, event{iv.End + 1, -1})
		if iv.End > maxEnd[iv.Seq] {
			maxEnd[iv.Seq] = iv.End
		}
	}
	seqs := make([]string, 0, len(events))
	for seq := range events {
		seqs = append(seqs, seq)
	}
	sort.Strings(seqs)

	results := make([][]Run, len(seqs))
	_ = traverse.Each(len(seqs), func(i int) error {
		seq := seqs[i]
		length := maxEnd[seq]
		if u, ok := s.UniverseLen(seq); ok {
			length = u
		}
		evs := events[seq]
		sort.Slice(evs, func(a, b int) bool { return evs[a].pos < evs[b].pos })
		results[i] = sweep(evs, length)
		return nil
	})

	profile := make(Profile, len(seqs))
	for i, seq := range seqs {
		profile[seq] = results[i]
	}
	return profile
}

type event struct {
	pos   interval.Pos
	delta int
}

// sweep prefix-sums position-sorted delta events into maximal runs covering
// [1, length].  Events whose net delta at a position is zero (an interval
// ending exactly where another starts) produce no run boundary, which keeps
// adjacent runs distinct by construction.
func sweep(evs []event, length interval.Pos) []Run {
	var runs []Run
	cursor := interval.Pos(1)
	depth := 0
	for i := 0; i < len(evs); {
		pos := evs[i].pos
		net := 0
		for ; i < len(evs) && evs[i].pos == pos; i++ {
			net += evs[i].delta
		}
		if net == 0 {
			continue
		}
		if pos > length+1 {
			pos = length + 1
		}
		if pos > cursor {
			runs = append(runs, Run{Length: pos - cursor, Value: depth})
			cursor = pos
		}
		depth += net
		if cursor > length {
			break
		}
	}
	if cursor <= length {
		runs = append(runs, Run{Length: length + 1 - cursor, Value: depth})
	}
	return runs
}
