package interval

import (
	"sort"
)

// This file supports representing an interval-union as a []Pos containing a
// sorted sequence of interval endpoints, and iterating over the union's
// spans.  Endpoints are stored as alternating {start, limit} values where
// limit is one past the inclusive end, so the union of
//   [5, 14]
//   [7, 16]
//   [20, 24]
// is
//   [5, 16] U [20, 24]
// and the endpoint sequence is
//   {5, 17, 20, 25}.
//
// The even/odd position of a search result within the sequence then encodes
// containment: a position is inside the union iff SearchPos(endpoints, pos+1)
// is odd.  The set-algebra routines in the granges package build these
// sequences from merged interval runs and use UnionScanner to walk covered
// spans (gaps emission walks the spans between them).

// PosMax is the sentinel position past every real coordinate.
const PosMax = Pos(^uint(0) >> 1)

// SearchPos returns the index of x in a[], or the position where x would be
// inserted if x isn't in a (this could be len(a)).  It's exactly the same as
// sort.SearchInts, kept for symmetry with ExpsearchPos.
func SearchPos(a []Pos, x Pos) EndpointIndex {
	return EndpointIndex(sort.Search(len(a), func(i int) bool { return a[i] >= x }))
}

// ExpsearchPos performs "exponential search"
// (https://en.wikipedia.org/wiki/Exponential_search ), checking a[idx], then
// a[idx + 1], then a[idx + 3], then a[idx + 7], etc., and finishing with
// binary search once it's either found an element larger than the target or
// has hit the end of the slice.  It's usually a better choice than SearchPos
// when iterating over nondecreasing query positions.
func ExpsearchPos(a []Pos, x Pos, idx EndpointIndex) EndpointIndex {
	nextIncr := EndpointIndex(1)
	startIdx := idx
	endIdx := EndpointIndex(len(a))
	for idx < endIdx {
		if a[idx] >= x {
			endIdx = idx
			break
		}
		startIdx = idx + 1
		idx += nextIncr
		nextIncr *= 2
	}
	// Inlined sort.Search call; startIdx is usually equal to endIdx here.
	for startIdx < endIdx {
		midIdx := EndpointIndex((uint(startIdx) + uint(endIdx)) >> 1)
		if a[midIdx] >= x {
			endIdx = midIdx
		} else {
			startIdx = midIdx + 1
		}
	}
	return startIdx
}

// EndpointIndex represents the result of SearchPos(endpoints, pos+1).
// NOTE THE "+1"!  It is necessary to line SearchPos up with the
// inclusive-start/exclusive-limit endpoint representation.
type EndpointIndex uint32

// NewEndpointIndex returns an EndpointIndex initialized to
// SearchPos(endpoints, pos+1).
func NewEndpointIndex(pos Pos, endpoints []Pos) EndpointIndex {
	return SearchPos(endpoints, pos+1)
}

// Contained returns whether we're inside a union span.
func (ei EndpointIndex) Contained() bool {
	return ei&1 != 0
}

// Finished returns whether we're past all the spans.
func (ei EndpointIndex) Finished(endpoints []Pos) bool {
	return ei >= EndpointIndex(len(endpoints))
}

// Begin returns:
// - the index for the beginning of the current span, if we're inside one
// - otherwise, the index for the beginning of the next span
func (ei EndpointIndex) Begin() EndpointIndex {
	return ei & (^EndpointIndex(1))
}

// Update updates the EndpointIndex to refer to newPos, which cannot be
// smaller than the previous position referred to by this EndpointIndex.  It
// is substantially faster than NewEndpointIndex when the position is
// increasing slowly.
func (ei *EndpointIndex) Update(newPos Pos, endpoints []Pos) {
	*ei = ExpsearchPos(endpoints, newPos+1, *ei)
}

// Endpoints flattens a genomically-sorted, already-merged run of intervals
// (all on one sequence, pairwise disjoint and non-touching) into the
// endpoint representation.  Zero-width intervals are skipped.
func Endpoints(ivs []Interval) []Pos {
	endpoints := make([]Pos, 0, 2*len(ivs))
	for _, iv := range ivs {
		if iv.Empty() {
			continue
		}
		endpoints = append(endpoints, iv.Start, iv.End+1)
	}
	return endpoints
}

// UnionScanner supports iteration over an interval-union.
// Invariants:
//   endpointIdx == SearchPos(endpoints, pos+1)
//   pos is either contained in a span, or is PosMax
type UnionScanner struct {
	endpoints   []Pos
	pos         Pos
	endpointIdx EndpointIndex
}

// NewUnionScanner returns a UnionScanner initialized to the first span.
func NewUnionScanner(endpoints []Pos) UnionScanner {
	startPos := Pos(PosMax)
	startEndpointIdx := EndpointIndex(0)
	// May as well make this not crash when there are no spans.
	if len(endpoints) >= 1 {
		startPos = endpoints[0]
		startEndpointIdx = 1
	}
	return UnionScanner{
		endpoints:   endpoints,
		pos:         startPos,
		endpointIdx: startEndpointIdx,
	}
}

// Pos returns the next position to be iterated over, or PosMax if there
// aren't any.
func (us *UnionScanner) Pos() Pos {
	return us.pos
}

// Scan is written so that the following loop iterates over all covered
// [start, limit) spans up to (and not including) limit:
//   for us.Scan(&start, &end, limit) {
//     for pos := start; pos < end; pos++ {
//       // ...do stuff with pos...
//     }
//   }
func (us *UnionScanner) Scan(start *Pos, end *Pos, limit Pos) bool {
	if us.pos >= limit {
		return false
	}
	*start = us.pos
	spanLimit := us.endpoints[us.endpointIdx]
	if spanLimit > limit {
		us.pos = limit
		*end = limit
		return true
	}
	*end = spanLimit
	us.endpointIdx++
	if us.endpointIdx.Finished(us.endpoints) {
		us.pos = PosMax
	} else {
		us.pos = us.endpoints[us.endpointIdx]
		us.endpointIdx++
	}
	return true
}
