package granges

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/rangelab/genomic/interval"
)

// Error causes returned by Set operations.  Callers test with errors.Cause.
var (
	// ErrIndexOutOfRange is returned when a row index is >= the set length.
	ErrIndexOutOfRange = errors.New("row index out of range")
	// ErrMissingUniverse is returned by Gaps when a sequence present in the
	// input has no registered length.
	ErrMissingUniverse = errors.New("missing universe length")
)

// Set is an ordered collection of intervals plus parallel metadata columns.
// Row order is insertion order unless Sort or SortBy is called; sorting is
// explicit, never implicit.  Every operation except Replace returns a new
// Set and leaves its receiver untouched, so a built Set can be shared across
// goroutines without locking.
//
// A Set additionally owns an advisory universe registry mapping sequence
// name to length.  Only Gaps consults it; its absence never prevents any
// other operation.
type Set struct {
	ivs      []interval.Interval
	colNames []string
	cols     map[string]Column
	universe map[string]interval.Pos
}

// NewSet constructs a Set from a slice of intervals, validating each one
// eagerly (the interval.ErrInvalid cause is reported for negative widths
// beyond the zero-width allowance).  The slice is copied.
func NewSet(ivs []interval.Interval) (*Set, error) {
	for _, iv := range ivs {
		if iv.End < iv.Start-1 {
			return nil, errors.Wrapf(interval.ErrInvalid, "granges.NewSet: [%d, %d] on %s", iv.Start, iv.End, iv.Seq)
		}
	}
	s := &Set{
		ivs:  append([]interval.Interval{}, ivs...),
		cols: map[string]Column{},
	}
	return s, nil
}

// Len returns the number of rows.
func (s *Set) Len() int { return len(s.ivs) }

// At returns the interval at row i.
func (s *Set) At(i int) interval.Interval { return s.ivs[i] }

// Intervals returns a copy of the interval sequence.
func (s *Set) Intervals() []interval.Interval {
	return append([]interval.Interval{}, s.ivs...)
}

// SetColumn attaches (or overwrites) a metadata column.  The column length
// must equal the set length.
func (s *Set) SetColumn(name string, col Column) error {
	if col.Len() != len(s.ivs) {
		return errors.Errorf("granges.SetColumn: column %s has %d entries for %d rows", name, col.Len(), len(s.ivs))
	}
	if _, exists := s.cols[name]; !exists {
		s.colNames = append(s.colNames, name)
	}
	s.cols[name] = col
	return nil
}

// Column returns the named column, or nil if absent.
func (s *Set) Column(name string) Column { return s.cols[name] }

// ColumnNames returns the column names in attachment order.
func (s *Set) ColumnNames() []string {
	return append([]string{}, s.colNames...)
}

// SetUniverse registers sequence lengths for complement computations.  The
// map is copied.
func (s *Set) SetUniverse(universe map[string]interval.Pos) {
	s.universe = make(map[string]interval.Pos, len(universe))
	for seq, length := range universe {
		s.universe[seq] = length
	}
}

// UniverseLen returns the registered length for seq, if any.
func (s *Set) UniverseLen(seq string) (interval.Pos, bool) {
	length, ok := s.universe[seq]
	return length, ok
}

// Row is a read-only view of one row's metadata, handed to Select
// predicates.
type Row struct {
	s *Set
	i int
}

// Index returns the row index within the owning Set.
func (r Row) Index() int { return r.i }

// Value returns the named column's value at this row, or nil if the column
// does not exist.
func (r Row) Value(col string) interface{} {
	c, ok := r.s.cols[col]
	if !ok {
		return nil
	}
	return c.value(r.i)
}

// emptyLike copies the container shape (universe included) with no rows; the
// caller fills in intervals and columns.
func (s *Set) emptyLike() *Set {
	out := &Set{cols: map[string]Column{}}
	if s.universe != nil {
		out.universe = make(map[string]interval.Pos, len(s.universe))
		for seq, length := range s.universe {
			out.universe[seq] = length
		}
	}
	return out
}

// apply builds a new Set whose row r is the receiver's row perm[r].  perm
// must contain valid indices.
func (s *Set) apply(perm []int) *Set {
	out := s.emptyLike()
	out.ivs = make([]interval.Interval, len(perm))
	for i, r := range perm {
		out.ivs[i] = s.ivs[r]
	}
	out.colNames = append([]string{}, s.colNames...)
	for _, name := range s.colNames {
		out.cols[name] = s.cols[name].subset(perm)
	}
	return out
}

// Sort returns a copy in genomic order: by sequence name, then start, then
// end.  The sort is stable, so ties preserve insertion order.
func (s *Set) Sort() *Set {
	perm := make([]int, len(s.ivs))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return s.ivs[perm[a]].Before(s.ivs[perm[b]])
	})
	return s.apply(perm)
}

// SortBy returns a copy stably sorted by the named column's values.  List
// columns have no sort order and are rejected.
func (s *Set) SortBy(col string) (*Set, error) {
	c, ok := s.cols[col]
	if !ok {
		return nil, errors.Errorf("granges.SortBy: no column %s", col)
	}
	switch c.(type) {
	case IntLists, FloatLists:
		return nil, errors.Errorf("granges.SortBy: column %s is a list column and has no sort order", col)
	}
	perm := make([]int, len(s.ivs))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return c.less(perm[a], perm[b])
	})
	return s.apply(perm), nil
}

// Subset returns a new Set holding the given rows, in the given order, with
// column alignment preserved.  Row indices may repeat.
func (s *Set) Subset(rows []int) (*Set, error) {
	for _, r := range rows {
		if r < 0 || r >= len(s.ivs) {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "granges.Subset: row %d of %d", r, len(s.ivs))
		}
	}
	return s.apply(rows), nil
}

// Replace atomically substitutes row i's interval and metadata.  Every value
// in row is validated against its column's type before anything is written,
// so a failed Replace leaves the Set unchanged.  Columns not mentioned in
// row keep their current value.
func (s *Set) Replace(i int, iv interval.Interval, row map[string]interface{}) error {
	if i < 0 || i >= len(s.ivs) {
		return errors.Wrapf(ErrIndexOutOfRange, "granges.Replace: row %d of %d", i, len(s.ivs))
	}
	if iv.End < iv.Start-1 {
		return errors.Wrapf(interval.ErrInvalid, "granges.Replace: [%d, %d] on %s", iv.Start, iv.End, iv.Seq)
	}
	for name, v := range row {
		c, ok := s.cols[name]
		if !ok {
			return errors.Errorf("granges.Replace: no column %s", name)
		}
		// Dry-run the type check against the current value's slot.
		old := c.value(i)
		if err := c.setValue(i, v); err != nil {
			return err
		}
		if err := c.setValue(i, old); err != nil {
			panic("granges: internal error: cannot restore column value")
		}
	}
	s.ivs[i] = iv
	for name, v := range row {
		if err := s.cols[name].setValue(i, v); err != nil {
			panic("granges: internal error: validated value failed to store")
		}
	}
	return nil
}

// Select returns the rows for which pred returns true, projected onto the
// named columns; columns not named are dropped.  pred receives the row's
// interval and a read-only metadata view.
func (s *Set) Select(pred func(iv interval.Interval, row Row) bool, cols ...string) (*Set, error) {
	for _, name := range cols {
		if _, ok := s.cols[name]; !ok {
			return nil, errors.Errorf("granges.Select: no column %s", name)
		}
	}
	var keep []int
	for i, iv := range s.ivs {
		if pred(iv, Row{s: s, i: i}) {
			keep = append(keep, i)
		}
	}
	out := s.emptyLike()
	out.ivs = make([]interval.Interval, len(keep))
	for i, r := range keep {
		out.ivs[i] = s.ivs[r]
	}
	for _, name := range cols {
		out.colNames = append(out.colNames, name)
		out.cols[name] = s.cols[name].subset(keep)
	}
	return out, nil
}

// NamedSet pairs a Set with the origin label Stack records for its rows.
type NamedSet struct {
	Name string
	Set  *Set
}

// Stack concatenates the inputs in order, preserving each input's internal
// row order, and appends a Strings column named originCol recording each
// row's source set.  Column schemas are unioned; a column missing from some
// input is zero-filled for that input's rows, and two inputs using the same
// column name with different types is an error.  Universe registries are
// merged, later inputs winning on conflict.
func Stack(originCol string, inputs []NamedSet) (*Set, error) {
	out := &Set{cols: map[string]Column{}}
	origin := Strings{}
	for _, in := range inputs {
		n := in.Set.Len()
		// Extend the columns already accumulated.
		for _, name := range out.colNames {
			if c := in.Set.cols[name]; c != nil {
				merged, err := out.cols[name].concat(c)
				if err != nil {
					return nil, errors.Wrapf(err, "granges.Stack: column %s in set %s", name, in.Name)
				}
				out.cols[name] = merged
			} else {
				out.cols[name] = out.cols[name].grow(n)
			}
		}
		// Adopt columns this input introduces, zero-padded for prior rows.
		for _, name := range in.Set.colNames {
			if name == originCol {
				return nil, errors.Errorf("granges.Stack: set %s already has a column %s", in.Name, originCol)
			}
			if _, seen := out.cols[name]; seen {
				continue
			}
			var empty Column
			switch in.Set.cols[name].(type) {
			case Ints:
				empty = Ints{}
			case Floats:
				empty = Floats{}
			case Strings:
				empty = Strings{}
			case IntLists:
				empty = IntLists{}
			case FloatLists:
				empty = FloatLists{}
			}
			padded := empty.grow(len(out.ivs))
			merged, err := padded.concat(in.Set.cols[name])
			if err != nil {
				panic("granges: internal error: padded column type mismatch")
			}
			out.colNames = append(out.colNames, name)
			out.cols[name] = merged
		}
		out.ivs = append(out.ivs, in.Set.ivs...)
		for i := 0; i < n; i++ {
			origin = append(origin, in.Name)
		}
		if in.Set.universe != nil {
			if out.universe == nil {
				out.universe = map[string]interval.Pos{}
			}
			for seq, length := range in.Set.universe {
				out.universe[seq] = length
			}
		}
	}
	out.colNames = append(out.colNames, originCol)
	out.cols[originCol] = origin
	return out, nil
}
