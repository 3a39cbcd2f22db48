package overlap

import (
	"math"

	"github.com/pkg/errors"
	"github.com/rangelab/genomic/granges"
	"github.com/rangelab/genomic/interval"
)

// ErrAmbiguousJoin is the cause returned by CarryColumn when some query row
// matched more than one subject row; reduce the groups with
// AggregatePerQuery first.
var ErrAmbiguousJoin = errors.New("ambiguous join")

// CarryColumn copies the named subject column into query space: the result
// has one entry per query row holding the matched subject's value.  Query
// rows with no match receive the column type's zero value.  If any row has
// more than one match the join is ambiguous and fails; there is no implicit
// reduction.
func CarryColumn(hits *Hits, subject *granges.Set, col string) (granges.Column, error) {
	src := subject.Column(col)
	if src == nil {
		return nil, errors.Errorf("overlap.CarryColumn: subject has no column %s", col)
	}
	groups := hits.GroupByQuery()
	for q, g := range groups {
		if len(g) > 1 {
			return nil, errors.Wrapf(ErrAmbiguousJoin, "overlap.CarryColumn: query row %d has %d matches", q, len(g))
		}
	}
	switch c := src.(type) {
	case granges.Ints:
		out := make(granges.Ints, hits.NQuery)
		for q, g := range groups {
			if len(g) == 1 {
				out[q] = c[g[0]]
			}
		}
		return out, nil
	case granges.Floats:
		out := make(granges.Floats, hits.NQuery)
		for q, g := range groups {
			if len(g) == 1 {
				out[q] = c[g[0]]
			}
		}
		return out, nil
	case granges.Strings:
		out := make(granges.Strings, hits.NQuery)
		for q, g := range groups {
			if len(g) == 1 {
				out[q] = c[g[0]]
			}
		}
		return out, nil
	case granges.IntLists:
		out := make(granges.IntLists, hits.NQuery)
		for q, g := range groups {
			if len(g) == 1 {
				out[q] = c[g[0]]
			}
		}
		return out, nil
	case granges.FloatLists:
		out := make(granges.FloatLists, hits.NQuery)
		for q, g := range groups {
			if len(g) == 1 {
				out[q] = c[g[0]]
			}
		}
		return out, nil
	}
	return nil, errors.Errorf("overlap.CarryColumn: unsupported column type %T", src)
}

// Reducer folds a group of subject column values into one number.  Identity
// is the explicit result for query rows with no matches; empty groups are
// never silently null.
type Reducer struct {
	Identity float64
	Step     func(acc, v float64) float64
}

// Stock reducers.
var (
	Max = Reducer{Identity: math.Inf(-1), Step: math.Max}
	Min = Reducer{Identity: math.Inf(1), Step: math.Min}
	Sum = Reducer{Identity: 0, Step: func(acc, v float64) float64 { return acc + v }}
	// Count ignores the values and counts group members.
	Count = Reducer{Identity: 0, Step: func(acc, _ float64) float64 { return acc + 1 }}
)

// AggregatePerQuery folds the named numeric subject column over each query
// row's match group.  The result has one value per query row; rows with no
// matches receive the reducer's identity.
func AggregatePerQuery(hits *Hits, subject *granges.Set, col string, r Reducer) (granges.Floats, error) {
	var values granges.Floats
	switch c := subject.Column(col).(type) {
	case granges.Ints:
		values = make(granges.Floats, len(c))
		for i, v := range c {
			values[i] = float64(v)
		}
	case granges.Floats:
		values = c
	case nil:
		return nil, errors.Errorf("overlap.AggregatePerQuery: subject has no column %s", col)
	default:
		return nil, errors.Errorf("overlap.AggregatePerQuery: column %s is not numeric", col)
	}
	out := make(granges.Floats, hits.NQuery)
	for i := range out {
		out[i] = r.Identity
	}
	for _, p := range hits.Pairs {
		out[p.Query] = r.Step(out[p.Query], values[p.Subject])
	}
	return out, nil
}

// IntersectPairs materializes one row per hit whose interval is the precise
// overlap region {max(Start), min(End)} of the matched pair, carrying the
// query row's strand.  The "query" and "subject" Ints columns record the
// source row indices, so callers can re-join against either side.
func IntersectPairs(hits *Hits, query, subject *granges.Set) (*granges.Set, error) {
	ivs := make([]interval.Interval, 0, hits.Len())
	queryIdx := make(granges.Ints, 0, hits.Len())
	subjectIdx := make(granges.Ints, 0, hits.Len())
	for _, p := range hits.Pairs {
		ivs = append(ivs, query.At(p.Query).Intersect(subject.At(p.Subject)))
		queryIdx = append(queryIdx, p.Query)
		subjectIdx = append(subjectIdx, p.Subject)
	}
	out, err := granges.NewSet(ivs)
	if err != nil {
		return nil, err
	}
	if err := out.SetColumn("query", queryIdx); err != nil {
		return nil, err
	}
	if err := out.SetColumn("subject", subjectIdx); err != nil {
		return nil, err
	}
	return out, nil
}
