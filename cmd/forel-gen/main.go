// Command forel-gen writes a synthetic dataset of Gaussian blobs in the
// input layout read by forel.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/okian/forel/internal/adapters/csvio"
	"github.com/okian/forel/internal/datagen"
	"github.com/okian/forel/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	def := datagen.DefaultConfig()
	fs := flag.NewFlagSet("forel-gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		centers     = fs.Int("centers", def.Centers, "number of blobs")
		points      = fs.Int("points", def.PointsPerCenter, "points per blob")
		dims        = fs.Int("dims", def.Dims, "coordinates per point")
		spread      = fs.Float64("spread", def.Spread, "standard deviation around a blob center")
		valueRange  = fs.Float64("range", def.Range, "blob centers are drawn from [0, range)")
		seed        = fs.Int64("seed", def.Seed, "random seed")
		minClusters = fs.Int("min-clusters", -1, "minimum cluster count header (default: number of blobs)")
		reals       = fs.Bool("reals", false, "write real coordinates instead of rounding to integers")
		output      = fs.String("output", "", "output file (default stdout)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := logger.InitWithWriter(stderr, logger.FormatText); err != nil {
		_, _ = fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return 1
	}
	log := logger.Named("forel-gen")
	ctx := context.Background()

	cfg := datagen.Config{
		Centers:         *centers,
		PointsPerCenter: *points,
		Dims:            *dims,
		Spread:          *spread,
		Range:           *valueRange,
		Seed:            *seed,
		MinClusters:     *minClusters,
		Integer:         !*reals,
	}
	if cfg.MinClusters < 0 {
		cfg.MinClusters = cfg.Centers
	}

	sample, err := datagen.Generate(cfg)
	if err != nil {
		log.Error(ctx, "failed to generate dataset", logger.Error(err))
		return 2
	}

	if *output == "" {
		err = csvio.WriteDataset(stdout, sample.Dataset, csvio.AutoPrecision)
	} else {
		err = csvio.WriteDatasetFile(*output, sample.Dataset, csvio.AutoPrecision)
	}
	if err != nil {
		log.Error(ctx, "failed to write dataset", logger.String("output", *output), logger.Error(err))
		return 1
	}

	log.Info(ctx, "dataset generated",
		logger.Int("points", len(sample.Dataset.Points)),
		logger.Int("centers", cfg.Centers),
		logger.Int("dims", cfg.Dims),
		logger.Int("min_clusters", cfg.MinClusters),
		logger.String("output", *output),
	)
	return 0
}
