// Package stats holds the numeric helpers behind the summary endpoints.
// Every function reports "no value" as a nil pointer instead of NaN.
package stats

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Point is one timestamped measurement.
type Point struct {
	At    time.Time
	Value float64
}

// Mean returns the arithmetic mean, or nil for an empty slice.
func Mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return finite(sum / float64(len(xs)))
}

// Slope fits y = a + b*x by least squares and returns b. It is nil when
// there are fewer than two points or all x are equal.
func Slope(xs, ys []float64) *float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return nil
	}
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - mx
		sxy += dx * (ys[i] - my)
		sxx += dx * dx
	}
	if sxx == 0 {
		return nil
	}
	return finite(sxy / sxx)
}

// DailySlope is the least-squares change per day of points. Time is
// measured in fractional days from the first point.
func DailySlope(points []Point) *float64 {
	if len(points) == 0 {
		return nil
	}
	origin := points[0].At
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.At.Sub(origin).Hours() / 24
		ys[i] = p.Value
	}
	return Slope(xs, ys)
}

// RecentSlope is DailySlope over the points no older than window before the
// latest one. points must be sorted by time. More than two points must fall
// inside the window.
func RecentSlope(points []Point, window time.Duration) *float64 {
	if len(points) == 0 {
		return nil
	}
	latest := points[len(points)-1].At
	from := latest.Add(-window)

	start := len(points)
	for start > 0 && !points[start-1].At.Before(from) {
		start--
	}
	recent := points[start:]
	if len(recent) <= 2 {
		return nil
	}
	return DailySlope(recent)
}

// Scale multiplies a nullable value.
func Scale(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	return finite(*v * factor)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
