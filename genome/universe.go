// Package genome supplies sequence-length universes to the interval engine.
// A universe bounds complement (gaps) computations; it is advisory metadata
// everywhere else.  Lengths come from an injected Provider, never from a
// hidden process-wide registry.
package genome

import (
	"github.com/grailbio/hts/sam"
	"github.com/rangelab/genomic/interval"
)

// Universe maps sequence name to total length (positions 1..length).
type Universe map[string]interval.Pos

// Clone returns a copy of the universe.
func (u Universe) Clone() Universe {
	out := make(Universe, len(u))
	for seq, length := range u {
		out[seq] = length
	}
	return out
}

// FromSAMHeader builds a Universe from the reference dictionary of a SAM/BAM
// header.
func FromSAMHeader(header *sam.Header) Universe {
	refs := header.Refs()
	u := make(Universe, len(refs))
	for _, ref := range refs {
		u[ref.Name()] = interval.Pos(ref.Len())
	}
	return u
}
