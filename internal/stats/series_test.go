package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlyMeans(t *testing.T) {
	pts := []Point{
		{At: time.Date(2024, 5, 1, 7, 10, 0, 0, time.UTC), Value: 80},
		{At: time.Date(2024, 5, 2, 7, 50, 0, 0, time.UTC), Value: 82},
		{At: time.Date(2024, 5, 2, 21, 0, 0, 0, time.UTC), Value: 83},
	}
	m := HourlyMeans(pts)
	require.Len(t, m, 24)
	require.NotNil(t, m[7])
	assert.InDelta(t, 81.0, *m[7], 1e-9)
	assert.InDelta(t, 83.0, *m[21], 1e-9)
	assert.Nil(t, m[0])
}

func TestHourlyDeviation_FlatSeriesIsZero(t *testing.T) {
	d := HourlyDeviation(series(80, 80, 80, 80, 80, 80))
	require.Len(t, d, 24)
	require.NotNil(t, d[8])
	assert.InDelta(t, 0.0, *d[8], 1e-9)
	assert.Nil(t, d[9])
}

func TestHourlyDeviation_MorningHeavier(t *testing.T) {
	var pts []Point
	for i := 0; i < 7; i++ {
		base := t0.Add(time.Duration(i) * day)
		pts = append(pts,
			Point{At: base, Value: 81},                     // 08:00
			Point{At: base.Add(12 * time.Hour), Value: 79}, // 20:00
		)
	}
	d := HourlyDeviation(pts)
	require.NotNil(t, d[8])
	require.NotNil(t, d[20])
	assert.Greater(t, *d[8], 0.0)
	assert.Less(t, *d[20], 0.0)
}

func TestHourlyDeviation_WindowGrowsOverSparseData(t *testing.T) {
	// Points ten days apart: the window has to widen to include them all.
	pts := []Point{
		{At: t0, Value: 100},
		{At: t0.Add(10 * day), Value: 100},
		{At: t0.Add(20 * day), Value: 100},
	}
	d := HourlyDeviation(pts)
	require.NotNil(t, d[8])
	assert.InDelta(t, 0.0, *d[8], 1e-9)
}

func TestTrend(t *testing.T) {
	pts := series(10, 20, 30, 40, 50)
	tr := Trend(pts, 2)
	require.Len(t, tr, 2)
	assert.InDelta(t, 15.0, *tr[0].Mean, 1e-9)
	assert.InDelta(t, 40.0, *tr[1].Mean, 1e-9)
	assert.Equal(t, t0, tr[0].Start)
	assert.Equal(t, t0.Add(2*day), tr[1].Start)

	tr = Trend(series(1, 2, 3), 20)
	require.Len(t, tr, 20)
	assert.NotNil(t, tr[0].Mean)
	assert.Nil(t, tr[1].Mean)
	assert.NotNil(t, tr[19].Mean)

	single := Trend(series(5), 20)
	require.Len(t, single, 1)
	assert.InDelta(t, 5.0, *single[0].Mean, 1e-9)

	assert.Nil(t, Trend(nil, 20))
}

func TestShortTermAverage(t *testing.T) {
	assert.Nil(t, ShortTermAverage(nil))

	// Daily points: the last eight days are within a week of the newest.
	var pts []Point
	for i := 0; i < 20; i++ {
		v := 100.0
		if i >= 12 {
			v = 80
		}
		pts = append(pts, Point{At: t0.Add(time.Duration(i) * day), Value: v})
	}
	avg := ShortTermAverage(pts)
	require.NotNil(t, avg)
	assert.InDelta(t, 80.0, *avg, 1e-9)

	// Sparse data keeps going until six points are collected.
	sparse := []Point{
		{At: t0, Value: 1},
		{At: t0.Add(30 * day), Value: 2},
		{At: t0.Add(60 * day), Value: 3},
		{At: t0.Add(90 * day), Value: 4},
		{At: t0.Add(120 * day), Value: 5},
		{At: t0.Add(150 * day), Value: 6},
		{At: t0.Add(180 * day), Value: 7},
	}
	avg = ShortTermAverage(sparse)
	require.NotNil(t, avg)
	assert.InDelta(t, 4.5, *avg, 1e-9) // mean of 2..7
}
