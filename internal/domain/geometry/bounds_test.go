package geometry_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/forel/internal/domain/geometry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBounds(t *testing.T) {
	Convey("Given a dataset", t, func() {
		points := []geometry.Point{{0, 10}, {5, -2}, {10, 4}}

		Convey("When computing bounds", func() {
			b, err := geometry.ComputeBounds(points)

			Convey("Then min and max are tracked per dimension", func() {
				So(err, ShouldBeNil)
				So(b.Min, ShouldResemble, geometry.Point{0, -2})
				So(b.Max, ShouldResemble, geometry.Point{10, 10})
				So(b.Dims(), ShouldEqual, 2)
				So(b.Validate(), ShouldBeNil)
			})

			Convey("And the bounds do not alias the first point", func() {
				b.Min[0] = 99
				So(points[0][0], ShouldEqual, 0.0)
			})

			Convey("And normalization maps extremes to 0 and 1", func() {
				n, err := b.NormalizeAll(points)
				So(err, ShouldBeNil)
				So(n[0], ShouldResemble, geometry.Point{0, 1})
				So(n[1], ShouldResemble, geometry.Point{0.5, 0})
				So(n[2], ShouldResemble, geometry.Point{1, 0.5})
			})
		})

		Convey("When the dataset is empty", func() {
			_, err := geometry.ComputeBounds(nil)
			So(err, ShouldEqual, geometry.ErrEmptyDataset)
		})
	})
}

func TestNormalizeRoundTrip(t *testing.T) {
	Convey("Given valid bounds", t, func() {
		b := geometry.Bounds{
			Min: geometry.Point{-3.5, 0, 1e6},
			Max: geometry.Point{7.25, 1, 1e6 + 3},
		}
		samples := []geometry.Point{
			{-3.5, 0, 1e6},
			{7.25, 1, 1e6 + 3},
			{0.1, 0.333, 1e6 + 1.7},
			{100, -4, 1e6 + 2.5},
		}

		Convey("Then denormalize(normalize(p)) returns p within 1e-9", func() {
			for _, p := range samples {
				n, err := b.Normalize(p)
				So(err, ShouldBeNil)
				back := b.Denormalize(n)
				for i := range p {
					So(math.Abs(back[i]-p[i]), ShouldBeLessThan, 1e-9)
				}
			}
		})

		Convey("When the point has the wrong length", func() {
			_, err := b.Normalize(geometry.Point{1})
			So(errors.Is(err, geometry.ErrDimensionMismatch), ShouldBeTrue)
		})
	})
}

func TestDegenerateFeature(t *testing.T) {
	Convey("Given a dataset with a constant coordinate", t, func() {
		points := []geometry.Point{{1, 7}, {2, 7}, {3, 7}}
		b, err := geometry.ComputeBounds(points)
		So(err, ShouldBeNil)

		Convey("Then validation reports the degenerate dimension", func() {
			err := b.Validate()
			So(errors.Is(err, geometry.ErrDegenerateFeature), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "dimension 1")
		})

		Convey("And normalization refuses instead of producing NaN", func() {
			n, err := b.NormalizeAll(points)
			So(errors.Is(err, geometry.ErrDegenerateFeature), ShouldBeTrue)
			So(n, ShouldBeNil)

			_, err = b.Normalize(points[0])
			So(errors.Is(err, geometry.ErrDegenerateFeature), ShouldBeTrue)
		})
	})
}
