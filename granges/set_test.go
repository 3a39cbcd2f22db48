package granges

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/rangelab/genomic/interval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, ivs []interval.Interval) *Set {
	s, err := NewSet(ivs)
	require.NoError(t, err)
	return s
}

func TestNewSetValidation(t *testing.T) {
	_, err := NewSet([]interval.Interval{
		{Seq: "chr1", Start: 10, End: 20},
		{Seq: "chr1", Start: 10, End: 8},
	})
	require.Error(t, err)
	assert.Equal(t, interval.ErrInvalid, errors.Cause(err))
}

func TestSetColumnAlignment(t *testing.T) {
	s := mustSet(t, []interval.Interval{
		{Seq: "chr1", Start: 1, End: 5},
		{Seq: "chr1", Start: 8, End: 9},
	})
	require.NoError(t, s.SetColumn("score", Ints{7, 3}))
	assert.Error(t, s.SetColumn("bad", Floats{1.0}))
	assert.Equal(t, []string{"score"}, s.ColumnNames())
	assert.Equal(t, Ints{7, 3}, s.Column("score"))
}

func TestSortGenomicOrder(t *testing.T) {
	s := mustSet(t, []interval.Interval{
		{Seq: "chr2", Start: 1, End: 5},
		{Seq: "chr1", Start: 8, End: 9},
		{Seq: "chr1", Start: 2, End: 4},
	})
	require.NoError(t, s.SetColumn("name", Strings{"a", "b", "c"}))
	sorted := s.Sort()
	assert.Equal(t, []interval.Interval{
		{Seq: "chr1", Start: 2, End: 4},
		{Seq: "chr1", Start: 8, End: 9},
		{Seq: "chr2", Start: 1, End: 5},
	}, sorted.Intervals())
	assert.Equal(t, Strings{"c", "b", "a"}, sorted.Column("name"))
	// The receiver is untouched.
	assert.Equal(t, Strings{"a", "b", "c"}, s.Column("name"))
}

func TestSortBy(t *testing.T) {
	s := mustSet(t, []interval.Interval{
		{Seq: "chr1", Start: 1, End: 2},
		{Seq: "chr1", Start: 3, End: 4},
		{Seq: "chr1", Start: 5, End: 6},
	})
	require.NoError(t, s.SetColumn("score", Ints{2, 1, 2}))
	require.NoError(t, s.SetColumn("lists", IntLists{{1}, {2}, {3}}))

	sorted, err := s.SortBy("score")
	require.NoError(t, err)
	// Stable: the two score=2 rows keep their relative order.
	assert.Equal(t, []interval.Interval{
		{Seq: "chr1", Start: 3, End: 4},
		{Seq: "chr1", Start: 1, End: 2},
		{Seq: "chr1", Start: 5, End: 6},
	}, sorted.Intervals())

	_, err = s.SortBy("lists")
	assert.Error(t, err)
	_, err = s.SortBy("nonesuch")
	assert.Error(t, err)
}

func TestSubset(t *testing.T) {
	s := mustSet(t, []interval.Interval{
		{Seq: "chr1", Start: 1, End: 2},
		{Seq: "chr1", Start: 3, End: 4},
		{Seq: "chr1", Start: 5, End: 6},
	})
	require.NoError(t, s.SetColumn("score", Floats{0.1, 0.2, 0.3}))

	sub, err := s.Subset([]int{2, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Len())
	assert.Equal(t, interval.Interval{Seq: "chr1", Start: 5, End: 6}, sub.At(0))
	assert.Equal(t, Floats{0.3, 0.1, 0.3}, sub.Column("score"))

	_, err = s.Subset([]int{3})
	assert.Equal(t, ErrIndexOutOfRange, errors.Cause(err))
	_, err = s.Subset([]int{-1})
	assert.Equal(t, ErrIndexOutOfRange, errors.Cause(err))
}

func TestReplaceAtomic(t *testing.T) {
	s := mustSet(t, []interval.Interval{
		{Seq: "chr1", Start: 1, End: 2},
		{Seq: "chr1", Start: 3, End: 4},
	})
	require.NoError(t, s.SetColumn("score", Ints{1, 2}))
	require.NoError(t, s.SetColumn("name", Strings{"a", "b"}))

	iv := interval.Interval{Seq: "chr2", Start: 100, End: 200, Strand: interval.Minus}
	require.NoError(t, s.Replace(1, iv, map[string]interface{}{"score": 9, "name": "z"}))
	assert.Equal(t, iv, s.At(1))
	assert.Equal(t, Ints{1, 9}, s.Column("score"))
	assert.Equal(t, Strings{"a", "z"}, s.Column("name"))

	// A mistyped value must leave the whole row untouched.
	err := s.Replace(0, iv, map[string]interface{}{"score": 5, "name": 13})
	require.Error(t, err)
	assert.Equal(t, interval.Interval{Seq: "chr1", Start: 1, End: 2}, s.At(0))
	assert.Equal(t, Ints{1, 9}, s.Column("score"))

	err = s.Replace(2, iv, nil)
	assert.Equal(t, ErrIndexOutOfRange, errors.Cause(err))
	err = s.Replace(0, interval.Interval{Seq: "chr1", Start: 5, End: 2}, nil)
	assert.Equal(t, interval.ErrInvalid, errors.Cause(err))
}

func TestSelect(t *testing.T) {
	s := mustSet(t, []interval.Interval{
		{Seq: "chr1", Start: 1, End: 10},
		{Seq: "chr1", Start: 20, End: 25},
		{Seq: "chr2", Start: 1, End: 100},
	})
	require.NoError(t, s.SetColumn("score", Ints{5, 50, 500}))
	require.NoError(t, s.SetColumn("name", Strings{"a", "b", "c"}))

	got, err := s.Select(func(iv interval.Interval, row Row) bool {
		return iv.Seq == "chr1" && row.Value("score").(int) >= 50
	}, "score")
	require.NoError(t, err)
	assert.Equal(t, []interval.Interval{{Seq: "chr1", Start: 20, End: 25}}, got.Intervals())
	assert.Equal(t, Ints{50}, got.Column("score"))
	// The name column was projected away.
	assert.Nil(t, got.Column("name"))

	_, err = s.Select(func(interval.Interval, Row) bool { return true }, "nonesuch")
	assert.Error(t, err)
}

func TestStack(t *testing.T) {
	a := mustSet(t, []interval.Interval{
		{Seq: "chr1", Start: 1, End: 5},
		{Seq: "chr1", Start: 9, End: 12},
	})
	require.NoError(t, a.SetColumn("score", Ints{1, 2}))
	b := mustSet(t, []interval.Interval{
		{Seq: "chr2", Start: 3, End: 7},
	})
	require.NoError(t, b.SetColumn("name", Strings{"x"}))

	got, err := Stack("origin", []NamedSet{{"exons", a}, {"peaks", b}})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())
	// Input internal order is preserved, inputs in call order.
	assert.Equal(t, interval.Interval{Seq: "chr1", Start: 1, End: 5}, got.At(0))
	assert.Equal(t, interval.Interval{Seq: "chr2", Start: 3, End: 7}, got.At(2))
	assert.Equal(t, Strings{"exons", "exons", "peaks"}, got.Column("origin"))
	// Unioned schema, zero-filled where an input lacks the column.
	assert.Equal(t, Ints{1, 2, 0}, got.Column("score"))
	assert.Equal(t, Strings{"", "", "x"}, got.Column("name"))

	// Type conflict across inputs is an error.
	c := mustSet(t, []interval.Interval{{Seq: "chr3", Start: 1, End: 2}})
	require.NoError(t, c.SetColumn("score", Floats{0.5}))
	_, err = Stack("origin", []NamedSet{{"a", a}, {"c", c}})
	assert.Error(t, err)
}
