package genome

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/rangelab/genomic/interval"
)

// ReadSizes parses chrom-sizes text: one sequence per line, name and length
// separated by whitespace, blank lines ignored.  This is the two-column
// table produced by the UCSC fetchChromSizes tool, not one of the feature
// formats (BED and friends) this module deliberately does not parse.
func ReadSizes(reader io.Reader) (Universe, error) {
	u := Universe{}
	scanner := bufio.NewScanner(reader)
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, errors.Errorf("genome.ReadSizes: line %d has %d fields, want 2", lineIdx, len(fields))
		}
		length, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "genome.ReadSizes: line %d", lineIdx)
		}
		if length <= 0 {
			return nil, errors.Errorf("genome.ReadSizes: non-positive length for %s on line %d", fields[0], lineIdx)
		}
		if _, dup := u[fields[0]]; dup {
			return nil, errors.Errorf("genome.ReadSizes: duplicate sequence %s on line %d", fields[0], lineIdx)
		}
		u[fields[0]] = interval.Pos(length)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.Printf("chrom sizes loaded, %d sequence(s).\n", len(u))
	return u, nil
}

// ReadSizesFromPath is a wrapper for ReadSizes that takes a path instead of
// an io.Reader, decompressing .gz transparently.
func ReadSizesFromPath(ctx context.Context, path string) (u Universe, err error) {
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	return ReadSizes(reader)
}
