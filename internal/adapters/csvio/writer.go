package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/okian/forel/internal/domain/forel"
)

// integerTolerance is how close a coordinate must be to an integer to be
// written as one.
const integerTolerance = 1e-9

// AutoPrecision writes integers as integers and anything else in its
// shortest form.
const AutoPrecision = -1

// FormatCoordinate renders v. A non-negative precision forces that many
// decimals.
func FormatCoordinate(v float64, precision int) string {
	if precision >= 0 {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
	if r := math.Round(v); math.Abs(v-r) <= integerTolerance {
		// adding zero turns -0 into 0
		return strconv.FormatFloat(r+0, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteClusters writes every point of every cluster, in discovery order, as
// its coordinates followed by the cluster index.
func WriteClusters(w io.Writer, clusters []forel.Cluster, precision int) error {
	cw := csv.NewWriter(w)
	var row []string
	for _, c := range clusters {
		for _, p := range c.Points {
			row = row[:0]
			for _, v := range p {
				row = append(row, FormatCoordinate(v, precision))
			}
			row = append(row, strconv.Itoa(c.Index))
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write cluster %d: %w", c.Index, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates path and writes clusters into it.
func WriteFile(path string, clusters []forel.Cluster, precision int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	return WriteClusters(f, clusters, precision)
}

// WriteDataset writes ds in the input layout: the minimum cluster count on
// the first line, then one point per line.
func WriteDataset(w io.Writer, ds Dataset, precision int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{strconv.Itoa(ds.MinClusters)}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, 0, 8)
	for i, p := range ds.Points {
		row = row[:0]
		for _, v := range p {
			row = append(row, FormatCoordinate(v, precision))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write point %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDatasetFile creates path and writes ds into it in the input layout.
func WriteDatasetFile(path string, ds Dataset, precision int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close dataset: %w", cerr)
		}
	}()

	return WriteDataset(f, ds, precision)
}
