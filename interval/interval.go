package interval

import (
	"fmt"

	"github.com/pkg/errors"
)

// Pos is the coordinate type.  Coordinates are 1-based with inclusive
// endpoints, so the width of [start, end] is end - start + 1 and
// end == start - 1 denotes a zero-width interval.  int (rather than int32) is
// used since universe lengths are summed in several places and there is no
// BAM-imposed 2^31 limit at this layer.
type Pos = int

// ErrInvalid is the cause returned when a constructor is handed an interval
// with negative width beyond the zero-width allowance (end < start - 1).
var ErrInvalid = errors.New("invalid interval")

// Interval is a contiguous coordinate span on a named sequence, with an
// orientation.  Treat values as immutable once constructed; all engine
// operations return new values rather than mutating inputs.
type Interval struct {
	Seq    string
	Start  Pos
	End    Pos
	Strand Strand
}

// New validates and constructs an Interval.  The only eager validation is the
// width rule: End must be >= Start - 1.
func New(seq string, start, end Pos, strand Strand) (Interval, error) {
	if end < start-1 {
		return Interval{}, errors.Wrapf(ErrInvalid, "interval.New: [%d, %d] on %s has negative width", start, end, seq)
	}
	return Interval{Seq: seq, Start: start, End: end, Strand: strand}, nil
}

// Width returns the number of bases the interval spans.  Zero-width intervals
// return 0.
func (iv Interval) Width() Pos {
	return iv.End - iv.Start + 1
}

// Empty returns whether the interval spans no bases.
func (iv Interval) Empty() bool {
	return iv.End < iv.Start
}

// Overlaps returns whether iv and other share at least one base.  Intervals
// on different sequences never overlap, and zero-width intervals overlap
// nothing.  Strand is not consulted; see OverlapsStranded.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.Seq != other.Seq {
		return false
	}
	return iv.Start <= other.End && other.Start <= iv.End
}

// OverlapsStranded is Overlaps with the strand-compatibility rule applied:
// unstranded intervals match both strands, Plus and Minus only themselves.
func (iv Interval) OverlapsStranded(other Interval) bool {
	return Compatible(iv.Strand, other.Strand) && iv.Overlaps(other)
}

// Intersect returns the overlapping sub-interval {max(Start), min(End)}.  The
// result carries iv's sequence and strand.  If the two do not overlap the
// result is zero- or negative-width; callers that need a valid Interval must
// check Overlaps first.
func (iv Interval) Intersect(other Interval) Interval {
	start := iv.Start
	if other.Start > start {
		start = other.Start
	}
	end := iv.End
	if other.End < end {
		end = other.End
	}
	return Interval{Seq: iv.Seq, Start: start, End: end, Strand: iv.Strand}
}

// Before reports whether iv sorts before other in genomic order: by sequence
// name, then start, then end.
func (iv Interval) Before(other Interval) bool {
	if iv.Seq != other.Seq {
		return iv.Seq < other.Seq
	}
	if iv.Start != other.Start {
		return iv.Start < other.Start
	}
	return iv.End < other.End
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s:[%d, %d]%s", iv.Seq, iv.Start, iv.End, iv.Strand)
}
