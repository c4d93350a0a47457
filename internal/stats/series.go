package stats

import "time"

const (
	deviationHalfWindow = 84 * time.Hour // 3.5 days
	deviationMinPoints  = 5
	shortTermMinPoints  = 6
	shortTermSpan       = 7 * day
)

// HourlyMeans buckets points by hour of day (in their own location) and
// returns the 24 bucket means.
func HourlyMeans(points []Point) []*float64 {
	var buckets [24][]float64
	for _, p := range points {
		h := p.At.Hour()
		buckets[h] = append(buckets[h], p.Value)
	}
	out := make([]*float64, 24)
	for h := range buckets {
		out[h] = Mean(buckets[h])
	}
	return out
}

// HourlyDeviation averages, per hour of day, how far each point sits from
// the mean of its neighbourhood: value/mean - 1. The neighbourhood starts
// at ±3.5 days and grows a day at a time until it holds five points or
// covers the whole series. points must be sorted by time.
func HourlyDeviation(points []Point) []*float64 {
	var buckets [24][]float64
	for i, p := range points {
		m := windowMean(points, i)
		if m == nil || *m == 0 {
			continue
		}
		mean := *m
		h := p.At.Hour()
		buckets[h] = append(buckets[h], p.Value/mean-1)
	}
	out := make([]*float64, 24)
	for h := range buckets {
		out[h] = Mean(buckets[h])
	}
	return out
}

func windowMean(points []Point, i int) *float64 {
	center := points[i].At
	for half := deviationHalfWindow; ; half += day {
		var vals []float64
		for _, q := range points {
			d := q.At.Sub(center)
			if d >= -half && d <= half {
				vals = append(vals, q.Value)
			}
		}
		if len(vals) >= deviationMinPoints || len(vals) == len(points) {
			return Mean(vals)
		}
	}
}

// Bucket is one step of an evenly spaced trend.
type Bucket struct {
	Start time.Time
	Mean  *float64
}

// Trend splits the span from the first to the last point into n equal
// buckets and averages each. Empty buckets have a nil Mean. A series
// without span collapses into a single bucket. points must be sorted.
func Trend(points []Point, n int) []Bucket {
	if len(points) == 0 || n <= 0 {
		return nil
	}
	first := points[0].At
	span := points[len(points)-1].At.Sub(first)
	if span <= 0 {
		vals := make([]float64, len(points))
		for i, p := range points {
			vals[i] = p.Value
		}
		return []Bucket{{Start: first, Mean: Mean(vals)}}
	}

	width := span / time.Duration(n)
	if width <= 0 {
		width = 1
	}
	grouped := make([][]float64, n)
	for _, p := range points {
		idx := int(p.At.Sub(first) / width)
		if idx >= n {
			idx = n - 1
		}
		grouped[idx] = append(grouped[idx], p.Value)
	}

	out := make([]Bucket, n)
	for i := range grouped {
		out[i] = Bucket{Start: first.Add(time.Duration(i) * width), Mean: Mean(grouped[i])}
	}
	return out
}

// ShortTermAverage walks back from the newest point and averages until the
// points are both more than a week older than the newest one and at least
// six have been taken. points must be sorted.
func ShortTermAverage(points []Point) *float64 {
	if len(points) == 0 {
		return nil
	}
	latest := points[len(points)-1].At
	var vals []float64
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		if len(vals) >= shortTermMinPoints && latest.Sub(p.At) > shortTermSpan {
			break
		}
		vals = append(vals, p.Value)
	}
	return Mean(vals)
}
