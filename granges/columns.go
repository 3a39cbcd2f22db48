package granges

import (
	"github.com/pkg/errors"
)

// Column is a typed metadata column: a homogeneously-typed value array with
// exactly one entry per row of the owning Set.  The concrete types are the
// closed variant {Ints, Floats, Strings, IntLists, FloatLists}; per-row
// dynamic typing is deliberately not supported.  The list types hold one
// nested slice per row and exist mainly to carry grouped aggregation
// results.
type Column interface {
	// Len returns the number of rows.
	Len() int

	subset(rows []int) Column
	concat(other Column) (Column, error)
	grow(n int) Column
	value(i int) interface{}
	setValue(i int, v interface{}) error
	// less panics for the list types; SortBy rejects them up front.
	less(i, j int) bool
}

// Ints is an integer column.
type Ints []int

// Floats is a float column.
type Floats []float64

// Strings is a string column.
type Strings []string

// IntLists holds one []int per row.
type IntLists [][]int

// FloatLists holds one []float64 per row.
type FloatLists [][]float64

func (c Ints) Len() int       { return len(c) }
func (c Floats) Len() int     { return len(c) }
func (c Strings) Len() int    { return len(c) }
func (c IntLists) Len() int   { return len(c) }
func (c FloatLists) Len() int { return len(c) }

func (c Ints) subset(rows []int) Column {
	out := make(Ints, len(rows))
	for i, r := range rows {
		out[i] = c[r]
	}
	return out
}

func (c Floats) subset(rows []int) Column {
	out := make(Floats, len(rows))
	for i, r := range rows {
		out[i] = c[r]
	}
	return out
}

func (c Strings) subset(rows []int) Column {
	out := make(Strings, len(rows))
	for i, r := range rows {
		out[i] = c[r]
	}
	return out
}

func (c IntLists) subset(rows []int) Column {
	out := make(IntLists, len(rows))
	for i, r := range rows {
		out[i] = c[r]
	}
	return out
}

func (c FloatLists) subset(rows []int) Column {
	out := make(FloatLists, len(rows))
	for i, r := range rows {
		out[i] = c[r]
	}
	return out
}

func (c Ints) concat(other Column) (Column, error) {
	o, ok := other.(Ints)
	if !ok {
		return nil, errors.Errorf("granges: cannot concatenate %T onto Ints", other)
	}
	return append(append(Ints{}, c...), o...), nil
}

func (c Floats) concat(other Column) (Column, error) {
	o, ok := other.(Floats)
	if !ok {
		return nil, errors.Errorf("granges: cannot concatenate %T onto Floats", other)
	}
	return append(append(Floats{}, c...), o...), nil
}

func (c Strings) concat(other Column) (Column, error) {
	o, ok := other.(Strings)
	if !ok {
		return nil, errors.Errorf("granges: cannot concatenate %T onto Strings", other)
	}
	return append(append(Strings{}, c...), o...), nil
}

func (c IntLists) concat(other Column) (Column, error) {
	o, ok := other.(IntLists)
	if !ok {
		return nil, errors.Errorf("granges: cannot concatenate %T onto IntLists", other)
	}
	return append(append(IntLists{}, c...), o...), nil
}

func (c FloatLists) concat(other Column) (Column, error) {
	o, ok := other.(FloatLists)
	if !ok {
		return nil, errors.Errorf("granges: cannot concatenate %T onto FloatLists", other)
	}
	return append(append(FloatLists{}, c...), o...), nil
}

// grow appends n zero-valued rows; Stack uses it to fill columns missing
// from one of the stacked inputs.
func (c Ints) grow(n int) Column       { return append(append(Ints{}, c...), make(Ints, n)...) }
func (c Floats) grow(n int) Column     { return append(append(Floats{}, c...), make(Floats, n)...) }
func (c Strings) grow(n int) Column    { return append(append(Strings{}, c...), make(Strings, n)...) }
func (c IntLists) grow(n int) Column   { return append(append(IntLists{}, c...), make(IntLists, n)...) }
func (c FloatLists) grow(n int) Column { return append(append(FloatLists{}, c...), make(FloatLists, n)...) }

func (c Ints) value(i int) interface{}       { return c[i] }
func (c Floats) value(i int) interface{}     { return c[i] }
func (c Strings) value(i int) interface{}    { return c[i] }
func (c IntLists) value(i int) interface{}   { return c[i] }
func (c FloatLists) value(i int) interface{} { return c[i] }

func (c Ints) setValue(i int, v interface{}) error {
	x, ok := v.(int)
	if !ok {
		return errors.Errorf("granges: cannot store %T in an Ints column", v)
	}
	c[i] = x
	return nil
}

func (c Floats) setValue(i int, v interface{}) error {
	x, ok := v.(float64)
	if !ok {
		return errors.Errorf("granges: cannot store %T in a Floats column", v)
	}
	c[i] = x
	return nil
}

func (c Strings) setValue(i int, v interface{}) error {
	x, ok := v.(string)
	if !ok {
		return errors.Errorf("granges: cannot store %T in a Strings column", v)
	}
	c[i] = x
	return nil
}

func (c IntLists) setValue(i int, v interface{}) error {
	x, ok := v.([]int)
	if !ok {
		return errors.Errorf("granges: cannot store %T in an IntLists column", v)
	}
	c[i] = x
	return nil
}

func (c FloatLists) setValue(i int, v interface{}) error {
	x, ok := v.([]float64)
	if !ok {
		return errors.Errorf("granges: cannot store %T in a FloatLists column", v)
	}
	c[i] = x
	return nil
}

func (c Ints) less(i, j int) bool    { return c[i] < c[j] }
func (c Floats) less(i, j int) bool  { return c[i] < c[j] }
func (c Strings) less(i, j int) bool { return c[i] < c[j] }

func (c IntLists) less(i, j int) bool {
	panic("granges: internal error: list column used as sort key")
}

func (c FloatLists) less(i, j int) bool {
	panic("granges: internal error: list column used as sort key")
}
