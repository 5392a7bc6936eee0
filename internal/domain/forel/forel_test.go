package forel_test

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/okian/forel/internal/domain/forel"
	"github.com/okian/forel/internal/domain/geometry"
	. "github.com/smartystreets/goconvey/convey"
)

// assertPartition checks that every input index appears in exactly one
// non-empty cluster and that cluster indices follow discovery order.
func assertPartition(res forel.Result, n int) {
	seen := make([]int, n)
	for i, c := range res.Clusters {
		So(c.Index, ShouldEqual, i)
		So(c.Members, ShouldNotBeEmpty)
		So(len(c.Points), ShouldEqual, len(c.Members))
		for _, idx := range c.Members {
			seen[idx]++
		}
	}
	for _, count := range seen {
		So(count, ShouldEqual, 1)
	}
}

func line(n int) []geometry.Point {
	points := make([]geometry.Point, n)
	for i := range points {
		points[i] = geometry.Point{float64(i)}
	}
	return points
}

func TestRunTwoPairs(t *testing.T) {
	Convey("Given two well separated pairs", t, func() {
		points := []geometry.Point{{0, 0}, {0, 1}, {10, 10}, {10, 11}}

		Convey("When clustering with at least two clusters", func() {
			res, err := forel.New().Run(context.Background(), points, 2)

			Convey("Then each pair forms its own cluster", func() {
				So(err, ShouldBeNil)
				So(res.Clusters, ShouldHaveLength, 2)
				So(res.Clusters[0].Members, ShouldResemble, []int{0, 1})
				So(res.Clusters[1].Members, ShouldResemble, []int{2, 3})
				So(res.Attempts, ShouldEqual, 1)
				assertPartition(res, len(points))
			})

			Convey("And points come back in the original scale", func() {
				So(err, ShouldBeNil)
				for _, c := range res.Clusters {
					for i, p := range c.Points {
						want := points[c.Members[i]]
						So(p[0], ShouldAlmostEqual, want[0], 1e-9)
						So(p[1], ShouldAlmostEqual, want[1], 1e-9)
					}
				}
				So(res.Clusters[0].Center[0], ShouldAlmostEqual, 0, 1e-9)
				So(res.Clusters[0].Center[1], ShouldAlmostEqual, 0.5, 1e-9)
			})
		})
	})
}

func TestRunSinglePoint(t *testing.T) {
	Convey("Given a single point", t, func() {
		points := []geometry.Point{{5, 5}}

		Convey("When asking for one cluster", func() {
			res, err := forel.New().Run(context.Background(), points, 1)

			Convey("Then the point forms the only cluster", func() {
				So(err, ShouldBeNil)
				So(res.Clusters, ShouldHaveLength, 1)
				So(res.Clusters[0].Points, ShouldResemble, []geometry.Point{{5, 5}})
				So(res.Clusters[0].Members, ShouldResemble, []int{0})
			})
		})

		Convey("When asking for two clusters", func() {
			_, err := forel.New().Run(context.Background(), points, 2)

			Convey("Then the minimum is unreachable", func() {
				So(errors.Is(err, forel.ErrUnreachableMinClusters), ShouldBeTrue)
			})
		})
	})
}

func TestRunUnreachable(t *testing.T) {
	Convey("Given fewer distinct points than requested clusters", t, func() {
		points := []geometry.Point{{0, 0}, {0, 1}, {10, 10}, {10, 11}}

		Convey("When clustering", func() {
			_, err := forel.New().Run(context.Background(), points, 5)

			Convey("Then the run stops with ErrUnreachableMinClusters", func() {
				So(errors.Is(err, forel.ErrUnreachableMinClusters), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "after 9 attempts")
			})
		})

		Convey("When the attempt cap is lower", func() {
			_, err := forel.New(forel.WithMaxAttempts(2)).Run(context.Background(), points, 5)

			Convey("Then it is honored", func() {
				So(errors.Is(err, forel.ErrUnreachableMinClusters), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "after 2 attempts")
			})
		})
	})
}

func TestRunCollinear(t *testing.T) {
	Convey("Given ten evenly spaced points on one axis", t, func() {
		points := line(10)

		Convey("When asking for at least three clusters", func() {
			res, err := forel.New().Run(context.Background(), points, 3)

			Convey("Then the radius shrinks until three clusters appear", func() {
				So(err, ShouldBeNil)
				So(len(res.Clusters), ShouldBeGreaterThanOrEqualTo, 3)
				So(res.Attempts, ShouldEqual, 3)
				So(res.Radius, ShouldAlmostEqual, 0.252, 1e-9)
				assertPartition(res, len(points))
			})

			Convey("And clusters are contiguous segments", func() {
				So(err, ShouldBeNil)
				for _, c := range res.Clusters {
					lo, hi := c.Points[0][0], c.Points[0][0]
					for _, p := range c.Points {
						if p[0] < lo {
							lo = p[0]
						}
						if p[0] > hi {
							hi = p[0]
						}
					}
					for _, other := range res.Clusters {
						if other.Index == c.Index {
							continue
						}
						for _, p := range other.Points {
							So(p[0] < lo || p[0] > hi, ShouldBeTrue)
						}
					}
				}
				So(res.Clusters[0].Members, ShouldResemble, []int{0, 1, 2, 3})
				So(res.Clusters[1].Members, ShouldResemble, []int{4, 5, 6, 7})
				So(res.Clusters[2].Members, ShouldResemble, []int{8, 9})
			})
		})

		Convey("When no minimum is requested", func() {
			res, err := forel.New().Run(context.Background(), points, 0)

			Convey("Then the first attempt is accepted", func() {
				So(err, ShouldBeNil)
				So(res.Attempts, ShouldEqual, 1)
				So(res.Clusters, ShouldHaveLength, 2)
			})
		})

		Convey("When the iteration cap is too small", func() {
			_, err := forel.New(forel.WithMaxIterations(2)).Run(context.Background(), points, 1)

			Convey("Then non-convergence is surfaced", func() {
				So(errors.Is(err, forel.ErrNonConvergence), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "cluster 0 seeded at point 0")
			})
		})
	})
}

func TestRunDuplicates(t *testing.T) {
	Convey("Given points with identical coordinates", t, func() {
		points := []geometry.Point{{0, 0}, {0, 0}, {10, 10}, {10, 10}, {0, 0}}

		Convey("When clustering", func() {
			res, err := forel.New().Run(context.Background(), points, 2)

			Convey("Then every duplicate is assigned exactly once", func() {
				So(err, ShouldBeNil)
				So(res.Clusters, ShouldHaveLength, 2)
				So(res.Clusters[0].Members, ShouldResemble, []int{0, 1, 4})
				So(res.Clusters[1].Members, ShouldResemble, []int{2, 3})
				assertPartition(res, len(points))
			})
		})
	})
}

func TestRunInvalidInput(t *testing.T) {
	Convey("Given invalid datasets", t, func() {
		e := forel.New()
		ctx := context.Background()

		Convey("When the dataset is empty", func() {
			_, err := e.Run(ctx, nil, 1)
			So(errors.Is(err, geometry.ErrEmptyDataset), ShouldBeTrue)
		})

		Convey("When dimensions disagree", func() {
			_, err := e.Run(ctx, []geometry.Point{{1, 2}, {3}}, 1)
			So(errors.Is(err, geometry.ErrDimensionMismatch), ShouldBeTrue)
		})

		Convey("When a coordinate is constant", func() {
			_, err := e.Run(ctx, []geometry.Point{{1, 3}, {2, 3}, {5, 3}}, 1)
			So(errors.Is(err, geometry.ErrDegenerateFeature), ShouldBeTrue)
		})

		Convey("When all points are identical", func() {
			_, err := e.Run(ctx, []geometry.Point{{4, 4}, {4, 4}}, 1)
			So(errors.Is(err, geometry.ErrDegenerateFeature), ShouldBeTrue)
		})
	})
}

func TestRunCancelled(t *testing.T) {
	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When running", func() {
			_, err := forel.New().Run(ctx, line(5), 1)

			Convey("Then the cancellation is returned", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestRunRandomBlobs(t *testing.T) {
	Convey("Given points scattered around three centers", t, func() {
		rng := rand.New(rand.NewSource(7))
		centers := []geometry.Point{{0, 0}, {50, 50}, {100, 0}}
		var points []geometry.Point
		for i := 0; i < 90; i++ {
			c := centers[i%len(centers)]
			points = append(points, geometry.Point{c[0] + rng.NormFloat64()*2, c[1] + rng.NormFloat64()*2})
		}

		Convey("When clustering with at least three clusters", func() {
			res, err := forel.New().Run(context.Background(), points, 3)

			Convey("Then the result is a partition of the input", func() {
				So(err, ShouldBeNil)
				So(len(res.Clusters), ShouldBeGreaterThanOrEqualTo, 3)
				assertPartition(res, len(points))
			})

			Convey("And no cluster mixes points from different centers", func() {
				So(err, ShouldBeNil)
				for _, c := range res.Clusters {
					origins := make(map[int]struct{})
					for _, idx := range c.Members {
						origins[idx%len(centers)] = struct{}{}
					}
					So(origins, ShouldHaveLength, 1)
				}
			})

			Convey("And members are listed in input order", func() {
				So(err, ShouldBeNil)
				for _, c := range res.Clusters {
					So(sort.IntsAreSorted(c.Members), ShouldBeTrue)
				}
			})
		})
	})
}
