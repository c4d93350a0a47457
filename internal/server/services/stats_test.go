package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsService(t *testing.T, cache *SummaryCache) (*StatsService, *memDB) {
	t.Helper()
	db, _ := newSQLMock(t)
	m := newMemDB()
	rm := &fakeRepoManager{m: m}
	s := NewStatsService(db, rm, NewFoodService(db, rm, cache, testLogger), cache)
	s.now = func() time.Time { return time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC) }
	m.users[owner] = &models.User{ID: owner, Name: "Ann", PreferredUnits: models.UnitsKilograms}
	return s, m
}

func TestSearchNutrition_ScalesMatchingEntries(t *testing.T) {
	s, m := newStatsService(t, nil)
	m.foods[1] = &models.Food{ID: 1, UserID: owner, Name: "Rice", Quantity: "1/2 cup", Calories: models.NumberOf(100), Protein: models.NumberOf(2)}
	m.foods[2] = &models.Food{ID: 2, UserID: owner, Name: "rice", Quantity: "2 Cups", Calories: models.NumberOf(400)}
	m.foods[3] = &models.Food{ID: 3, UserID: owner, Name: "Fried rice", Quantity: "100 g", Calories: models.NumberOf(180)}
	m.foods[4] = &models.Food{ID: 4, UserID: owner, Name: "Bread", Quantity: "1 cup", Calories: models.NumberOf(999)}

	res, err := s.SearchNutrition(context.Background(), owner, "rice", "1 cup")
	require.NoError(t, err)
	assert.Equal(t, "1 cup", res.Quantity)
	assert.InDelta(t, 200, res.Calories.Float64, 1e-9)
	assert.InDelta(t, 4, res.Protein.Float64, 1e-9)
	require.Len(t, res.Entries, 3)

	matched := 0
	for _, e := range res.Entries {
		if e.Matched {
			matched++
		}
	}
	assert.Equal(t, 2, matched)
}

func TestSearchNutrition_NoMatches(t *testing.T) {
	s, m := newStatsService(t, nil)
	m.foods[1] = &models.Food{ID: 1, UserID: owner, Name: "Rice", Quantity: "a bowl", Calories: models.NumberOf(300)}

	res, err := s.SearchNutrition(context.Background(), owner, "rice", "1 cup")
	require.NoError(t, err)
	assert.False(t, res.Calories.Valid)
	assert.False(t, res.Protein.Valid)
	assert.Len(t, res.Entries, 1)

	_, err = s.SearchNutrition(context.Background(), owner, "rice", "some")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestSearchFrequent(t *testing.T) {
	s, m := newStatsService(t, nil)

	out, err := s.SearchFrequent(context.Background(), owner, "egg")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	m.frequent = []models.FrequentFood{{Name: "Egg", Quantity: "1", Count: 12}, {Name: "Eggs", Quantity: "2", Count: 3}}
	out, err = s.SearchFrequent(context.Background(), owner, "egg")
	require.NoError(t, err)
	assert.Equal(t, m.frequent, out)
}

func TestSearchRecentAndPremade(t *testing.T) {
	s, m := newStatsService(t, nil)
	for i := int64(1); i <= 7; i++ {
		m.foods[i] = &models.Food{ID: i, UserID: owner, Name: "Soup", Date: day("2024-03-01").AddDays(int(i))}
	}
	m.foods[20] = &models.Food{ID: 20, UserID: owner, Name: "Stew pot", Date: day("2024-03-01"), Premade: true}
	m.foods[21] = &models.Food{ID: 21, UserID: owner, Name: "Carrot", Date: day("2024-03-01"), ParentID: ptr(int64(20))}
	m.foods[22] = &models.Food{ID: 22, UserID: owner, Name: "Stew old", Date: day("2024-02-01"), Premade: true, Finished: ptr(true)}

	recent, err := s.SearchRecent(context.Background(), owner, "soup")
	require.NoError(t, err)
	require.Len(t, recent, searchLimit)
	assert.Equal(t, int64(7), recent[0].ID)

	premade, err := s.SearchPremade(context.Background(), owner, "stew")
	require.NoError(t, err)
	require.Len(t, premade, 1)
	assert.Equal(t, int64(20), premade[0].ID)
	require.Len(t, premade[0].Children, 1)
	assert.Equal(t, "Carrot", premade[0].Children[0].Name)
}

func addWeight(m *memDB, date, tod string, kg float64) {
	id := m.id()
	var t *string
	if tod != "" {
		t = &tod
	}
	m.bodyweights[id] = &models.Bodyweight{ID: id, UserID: owner, Date: day(date), Time: t, Bodyweight: kg}
}

func TestBodyweightSummary(t *testing.T) {
	s, m := newStatsService(t, nil)
	addWeight(m, "2024-03-01", "08:00:00", 80)
	addWeight(m, "2024-03-02", "08:00:00", 81)
	addWeight(m, "2024-03-03", "08:00:00", 82)
	addWeight(m, "2024-03-04", "08:00:00", 83)
	addWeight(m, "2024-03-05", "", 200)

	sum, err := s.BodyweightSummary(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, models.UnitsKilograms, sum.Units)
	require.True(t, sum.WeightChangePerDay.Valid)
	assert.InDelta(t, 1.0, sum.WeightChangePerDay.Float64, 1e-9)
	assert.InDelta(t, 83, sum.Latest.Float64, 1e-9)
	require.Len(t, sum.HourlyMean, 24)
	assert.InDelta(t, 81.5, sum.HourlyMean[8].Float64, 1e-9)
	assert.False(t, sum.HourlyMean[9].Valid)
	assert.Len(t, sum.HourlyDeviation, 24)
	assert.Len(t, sum.Trend, trendBuckets)
	assert.InDelta(t, 81.5, sum.ShortTermAverage.Float64, 1e-9)
}

func TestBodyweightSummary_Pounds(t *testing.T) {
	s, m := newStatsService(t, nil)
	m.users[owner].PreferredUnits = models.UnitsPounds
	addWeight(m, "2024-03-01", "08:00:00", 80)
	addWeight(m, "2024-03-02", "08:00:00", 81)
	addWeight(m, "2024-03-03", "08:00:00", 82)

	sum, err := s.BodyweightSummary(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, models.UnitsPounds, sum.Units)
	assert.InDelta(t, 82/kilogramsPerPound, sum.Latest.Float64, 1e-9)
	assert.InDelta(t, 1/kilogramsPerPound, sum.WeightChangePerDay.Float64, 1e-9)
}

func TestBodyweightSummary_Empty(t *testing.T) {
	s, _ := newStatsService(t, nil)

	sum, err := s.BodyweightSummary(context.Background(), owner)
	require.NoError(t, err)
	assert.False(t, sum.Latest.Valid)
	assert.False(t, sum.WeightChangePerDay.Valid)
	assert.NotNil(t, sum.Trend)
}

func TestBodyweightSummary_Cached(t *testing.T) {
	cache := NewSummaryCache(time.Minute)
	s, m := newStatsService(t, cache)
	addWeight(m, "2024-03-01", "08:00:00", 80)

	first, err := s.BodyweightSummary(context.Background(), owner)
	require.NoError(t, err)

	addWeight(m, "2024-03-02", "08:00:00", 90)
	again, err := s.BodyweightSummary(context.Background(), owner)
	require.NoError(t, err)
	assert.Same(t, first, again)

	cache.Invalidate(owner)
	fresh, err := s.BodyweightSummary(context.Background(), owner)
	require.NoError(t, err)
	assert.InDelta(t, 90, fresh.Latest.Float64, 1e-9)
}

func TestFoodSummary(t *testing.T) {
	cache := NewSummaryCache(time.Minute)
	s, m := newStatsService(t, cache)
	m.dailyCalories = []models.DailyCalories{
		{Date: day("2024-03-07"), Calories: 2000},
		{Date: day("2024-03-08"), Calories: 2100},
		{Date: day("2024-03-09"), Calories: 2200},
	}

	sum, err := s.FoodSummary(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, sum.History, 3)
	assert.InDelta(t, 100, sum.CalorieChangePerDay.Float64, 1e-6)
	assert.InDelta(t, 2100, sum.AverageCalories.Float64, 1e-6)

	m.dailyCalories = nil
	cached, err := s.FoodSummary(context.Background(), owner)
	require.NoError(t, err)
	assert.Same(t, sum, cached)

	cache.Invalidate(owner)
	empty, err := s.FoodSummary(context.Background(), owner)
	require.NoError(t, err)
	assert.NotNil(t, empty.History)
	assert.False(t, empty.AverageCalories.Valid)
	assert.False(t, empty.CalorieChangePerDay.Valid)
}
