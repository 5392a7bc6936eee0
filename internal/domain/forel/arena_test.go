package forel

import (
	"errors"
	"testing"

	"github.com/okian/forel/internal/domain/geometry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestArenaQuery(t *testing.T) {
	Convey("Given an arena of normalized points", t, func() {
		a := newArena([]geometry.Point{{0.9, 0.9}, {0, 0}, {0.1, 0}, {0.5, 0.5}, {0, 0.1}})

		Convey("When querying around a member", func() {
			got := a.query(geometry.Point{0, 0}, 0.2)

			Convey("Then members strictly inside are returned in input order", func() {
				So(got, ShouldResemble, []int{1, 2, 4})
			})
		})

		Convey("When a point lies exactly on the sphere", func() {
			got := a.query(geometry.Point{0, 0}, 0.1)

			Convey("Then it is excluded", func() {
				So(got, ShouldResemble, []int{1})
			})
		})

		Convey("When nothing lies within the radius", func() {
			got := a.query(geometry.Point{5, 5}, 0.1)

			Convey("Then the result is empty and its centroid is an error", func() {
				So(got, ShouldBeEmpty)
				_, err := a.centroid(got)
				So(errors.Is(err, ErrEmptyHypersphere), ShouldBeTrue)
				So(errors.Is(err, geometry.ErrEmptySet), ShouldBeTrue)
			})
		})

		Convey("When points are removed", func() {
			a.remove([]int{1, 2})

			Convey("Then they no longer answer queries", func() {
				So(a.query(geometry.Point{0, 0}, 0.2), ShouldResemble, []int{4})
				So(a.remaining(), ShouldEqual, 3)
			})

			Convey("And the first remaining index is the lowest active one", func() {
				first, ok := a.first()
				So(ok, ShouldBeTrue)
				So(first, ShouldEqual, 0)
			})

			Convey("And reset restores every point", func() {
				a.reset()
				So(a.remaining(), ShouldEqual, 5)
			})
		})

		Convey("When every point is removed", func() {
			a.remove([]int{0, 1, 2, 3, 4})
			_, ok := a.first()
			So(ok, ShouldBeFalse)
			So(a.remaining(), ShouldEqual, 0)
		})
	})
}

func TestArenaDuplicates(t *testing.T) {
	Convey("Given an arena with identical coordinates", t, func() {
		a := newArena([]geometry.Point{{0.5, 0.5}, {0.5, 0.5}, {1, 1}})

		Convey("When removing one of the duplicates by index", func() {
			a.remove([]int{0})

			Convey("Then the other one stays active", func() {
				So(a.query(geometry.Point{0.5, 0.5}, 0.01), ShouldResemble, []int{1})
			})
		})
	})
}

func TestSolve(t *testing.T) {
	Convey("Given evenly spaced points on a line", t, func() {
		points := make([]geometry.Point, 10)
		for i := range points {
			points[i] = geometry.Point{float64(i) / 9}
		}
		a := newArena(points)

		Convey("When solving from the first point with radius 0.45", func() {
			e := New()
			sol, err := e.solve(a, points[0], 0.45)

			Convey("Then the center converges over the first eight points", func() {
				So(err, ShouldBeNil)
				So(sol.members, ShouldResemble, []int{0, 1, 2, 3, 4, 5, 6, 7})
				So(sol.center[0], ShouldAlmostEqual, 3.5/9, 1e-12)
				So(sol.iterations, ShouldEqual, 4)
			})
		})

		Convey("When the iteration cap is too small", func() {
			e := New(WithMaxIterations(2))
			_, err := e.solve(a, points[0], 0.45)

			Convey("Then non-convergence is reported", func() {
				So(errors.Is(err, ErrNonConvergence), ShouldBeTrue)
			})
		})
	})
}
