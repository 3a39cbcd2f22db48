package coverage

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/rangelab/genomic/granges"
	"github.com/rangelab/genomic/interval"
)

func mustSet(t *testing.T, ivs []interval.Interval) *granges.Set {
	s, err := granges.NewSet(ivs)
	assert.NoError(t, err)
	return s
}

func TestComputeWithUniverse(t *testing.T) {
	s := mustSet(t, []interval.Interval{
		{Seq: "chr1", Start: 1, End: 3},
		{Seq: "chr1", Start: 2, End: 4},
	})
	s.SetUniverse(map[string]interval.Pos{"chr1": 5})

	profile := Compute(s)
	expect.EQ(t, profile["chr1"], []Run{{1, 1}, {2, 2}, {1, 1}, {1, 0}})
	expect.EQ(t, profile.Length("chr1"), 5)
	for pos, want := range map[interval.Pos]int{1: 1, 2: 2, 3: 2, 4: 1, 5: 0} {
		expect.EQ(t, profile.At("chr1", pos), want, "pos=%d", pos)
	}
}

func TestComputeNoUniverse(t *testing.T) {
	// Without a registered length the profile extends to the max observed
	// end.
	s := mustSet(t, []interval.Interval{
		{Seq: "chr1", Start: 3, End: 7},
		{Seq: "chr1", Start: 5, End: 9},
	})
	profile := Compute(s)
	expect.EQ(t, profile["chr1"], []Run{{2, 0}, {2, 1}, {3, 2}, {2, 1}})
	expect.EQ(t, profile.Length("chr1"), 9)
}

func TestComputeTouchingIntervalsMergeRuns(t *testing.T) {
	// One interval ends exactly where the next starts; depth never changes,
	// so the profile must stay a single run.
	s := mustSet(t, []interval.Interval{
		{Seq: "chr1", Start: 1, End: 4},
		{Seq: "chr1", Start: 5, End: 10},
	})
	profile := Compute(s)
	expect.EQ(t, profile["chr1"], []Run{{10, 1}})
}

func TestComputeStrandOblivious(t *testing.T) {
	s := mustSet(t, []interval.Interval{
		{Seq: "chr1", Start: 1, End: 5, Strand: interval.Plus},
		{Seq: "chr1", Start: 1, End: 5, Strand: interval.Minus},
	})
	profile := Compute(s)
	expect.EQ(t, profile["chr1"], []Run{{5, 2}})
}

func TestComputeZeroWidthAndMultiSeq(t *testing.T) {
	s := mustSet(t, []interval.Interval{
		{Seq: "chr1", Start: 5, End: 4}, // zero-width, no depth
		{Seq: "chr1", Start: 2, End: 3},
		{Seq: "chr2", Start: 1, End: 1},
	})
	profile := Compute(s)
	expect.EQ(t, profile["chr1"], []Run{{1, 0}, {2, 1}})
	expect.EQ(t, profile["chr2"], []Run{{1, 1}})
}

func TestComputeMatchesNaiveCounting(t *testing.T) {
	const universeLen = 300
	rng := rand.New(rand.NewSource(4))
	var ivs []interval.Interval
	depth := make([]int, universeLen+1)
	for i := 0; i < 150; i++ {
		start := rng.Intn(universeLen) + 1
		end := start + rng.Intn(30)
		if end > universeLen {
			end = universeLen
		}
		ivs = append(ivs, interval.Interval{Seq: "chr1", Start: start, End: end})
		for pos := start; pos <= end; pos++ {
			depth[pos]++
		}
	}
	s := mustSet(t, ivs)
	s.SetUniverse(map[string]interval.Pos{"chr1": universeLen})
	profile := Compute(s)

	expect.EQ(t, profile.Length("chr1"), universeLen)
	for pos := 1; pos <= universeLen; pos++ {
		expect.EQ(t, profile.At("chr1", pos), depth[pos], "pos=%d", pos)
	}
	// Runs are maximal.
	runs := profile["chr1"]
	for i := 1; i < len(runs); i++ {
		expect.True(t, runs[i].Value != runs[i-1].Value, "adjacent runs %d and %d share value", i-1, i)
	}
}
