// Package csvio reads FOREL input datasets and writes clustering results as
// comma-separated text.
//
// Input layout: the first record holds the minimum cluster count, every
// following record one point. Output layout: one line per point, its
// coordinates followed by the index of its cluster.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/okian/forel/internal/domain/geometry"
)

// Dataset is a parsed input file.
type Dataset struct {
	MinClusters int
	Points      []geometry.Point
}

// ReadDataset parses the input layout from r. Blank lines are skipped and
// fields may carry surrounding whitespace.
func ReadDataset(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var ds Dataset
	header := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
		}
		line, _ := cr.FieldPos(0)

		if header {
			ds.MinClusters, err = parseHeader(record, line)
			if err != nil {
				return Dataset{}, err
			}
			header = false
			continue
		}

		p, err := parsePoint(record, line)
		if err != nil {
			return Dataset{}, err
		}
		if len(ds.Points) > 0 && len(p) != len(ds.Points[0]) {
			return Dataset{}, fmt.Errorf("%w: line %d has %d coordinates, want %d",
				geometry.ErrDimensionMismatch, line, len(p), len(ds.Points[0]))
		}
		ds.Points = append(ds.Points, p)
	}

	if header {
		return Dataset{}, fmt.Errorf("%w: missing minimum cluster count", ErrMalformedRecord)
	}
	return ds, nil
}

// ReadFile opens path and parses it with ReadDataset.
func ReadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	ds, err := ReadDataset(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ds, nil
}

func parseHeader(record []string, line int) (int, error) {
	if len(record) != 1 {
		return 0, fmt.Errorf("%w: line %d: minimum cluster count must be a single value, got %d fields",
			ErrMalformedRecord, line, len(record))
	}
	n, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: minimum cluster count %q is not an integer",
			ErrMalformedRecord, line, record[0])
	}
	return n, nil
}

func parsePoint(record []string, line int) (geometry.Point, error) {
	p := make(geometry.Point, len(record))
	for i, field := range record {
		field = strings.TrimSpace(field)
		if field == "" {
			return nil, fmt.Errorf("%w: line %d: field %d is empty", ErrMalformedRecord, line, i+1)
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: line %d: field %d %q is not a finite number",
				ErrMalformedRecord, line, i+1, field)
		}
		p[i] = v
	}
	return p, nil
}
