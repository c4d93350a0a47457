package services

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fitlog/internal/stats"
)

const (
	searchLimit       = 5
	trendBuckets      = 20
	slopeWindow       = 7 * 24 * time.Hour
	foodSummaryDays   = 7
	kilogramsPerPound = 0.45359237
)

// StatsService answers read-only questions about a user's history.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	foods       *FoodService
	summaries   *SummaryCache
	now         func() time.Time
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager, foods *FoodService, summaries *SummaryCache) *StatsService {
	return &StatsService{db: db, repomanager: m, foods: foods, summaries: summaries, now: time.Now}
}

// SearchFrequent ranks what the user logs most often.
func (s *StatsService) SearchFrequent(ctx context.Context, userID int64, term string) ([]models.FrequentFood, error) {
	out, err := s.repomanager.Foods(s.db).SearchFrequent(ctx, userID, term, searchLimit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.FrequentFood{}
	}
	return out, nil
}

func (s *StatsService) SearchRecent(ctx context.Context, userID int64, term string) ([]models.FoodView, error) {
	list, err := s.repomanager.Foods(s.db).SearchRecent(ctx, userID, term, searchLimit)
	if err != nil {
		return nil, err
	}
	return s.foods.renderAll(ctx, s.db, list, models.RenderOptions{Children: true})
}

// SearchPremade finds premade dishes that are not used up yet.
func (s *StatsService) SearchPremade(ctx context.Context, userID int64, term string) ([]models.FoodView, error) {
	list, err := s.repomanager.Foods(s.db).SearchPremade(ctx, userID, term)
	if err != nil {
		return nil, err
	}
	return s.foods.renderAll(ctx, s.db, list, models.RenderOptions{Children: true})
}

// SearchNutrition estimates calories and protein of quantity of the named
// food from past entries logged in the same unit.
func (s *StatsService) SearchNutrition(ctx context.Context, userID int64, term, quantity string) (*models.NutritionResult, error) {
	want, ok := stats.ParseQuantity(quantity)
	if !ok {
		return nil, common.Validationf("Unable to parse quantity %q.", quantity)
	}
	list, err := s.repomanager.Foods(s.db).SearchByName(ctx, userID, strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}

	res := &models.NutritionResult{Quantity: quantity, Entries: make([]models.NutritionEntry, 0, len(list))}
	var cals, prots []float64
	for _, f := range list {
		e := models.NutritionEntry{Name: f.Name, Quantity: f.Quantity, Calories: f.Calories, Protein: f.Protein}
		if q, ok := stats.ParseQuantity(f.Quantity); ok && q.Unit == want.Unit {
			e.Matched = true
			if f.Calories.Valid {
				cals = append(cals, f.Calories.Float64/q.Amount*want.Amount)
			}
			if f.Protein.Valid {
				prots = append(prots, f.Protein.Float64/q.Amount*want.Amount)
			}
		}
		res.Entries = append(res.Entries, e)
	}
	res.Calories = models.NumberPtr(stats.Mean(cals))
	res.Protein = models.NumberPtr(stats.Mean(prots))
	return res, nil
}

// BodyweightSummary describes timed weight measurements in the user's
// preferred units.
func (s *StatsService) BodyweightSummary(ctx context.Context, userID int64) (*models.BodyweightSummary, error) {
	if v, ok := s.summaries.get(summaryBodyweight, userID); ok {
		return v.(*models.BodyweightSummary), nil
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repomanager.Bodyweights(s.db).ListTimed(ctx, userID)
	if err != nil {
		return nil, err
	}

	points := make([]stats.Point, 0, len(rows))
	for _, b := range rows {
		at, ok := measuredAt(b)
		if !ok {
			continue
		}
		points = append(points, stats.Point{At: at, Value: b.Bodyweight})
	}
	slices.SortStableFunc(points, func(a, b stats.Point) int { return a.At.Compare(b.At) })

	units := models.UnitsKilograms
	factor := 1.0
	if user.PreferredUnits == models.UnitsPounds {
		units = models.UnitsPounds
		factor = 1 / kilogramsPerPound
	}

	sum := &models.BodyweightSummary{
		Units:              units,
		HourlyMean:         numbers(stats.HourlyMeans(points), factor),
		HourlyDeviation:    numbers(stats.HourlyDeviation(points), 1),
		Trend:              []models.TrendPoint{},
		WeightChangePerDay: models.NumberPtr(stats.Scale(stats.RecentSlope(points, slopeWindow), factor)),
		ShortTermAverage:   models.NumberPtr(stats.Scale(stats.ShortTermAverage(points), factor)),
	}
	for _, b := range stats.Trend(points, trendBuckets) {
		sum.Trend = append(sum.Trend, models.TrendPoint{
			Date:  models.DateOf(b.Start),
			Value: models.NumberPtr(stats.Scale(b.Mean, factor)),
		})
	}
	if n := len(points); n > 0 {
		sum.Latest = models.NumberOf(points[n-1].Value * factor)
	}

	s.summaries.set(summaryBodyweight, userID, sum)
	return sum, nil
}

// FoodSummary sums calories per day over the last week, counting a
// composite entry once.
func (s *StatsService) FoodSummary(ctx context.Context, userID int64) (*models.FoodSummary, error) {
	if v, ok := s.summaries.get(summaryFood, userID); ok {
		return v.(*models.FoodSummary), nil
	}

	today := models.DateOf(s.now())
	from := today.AddDays(-(foodSummaryDays - 1))
	days, err := s.repomanager.Foods(s.db).DailyCalories(ctx, userID, from, today)
	if err != nil {
		return nil, err
	}

	sum := &models.FoodSummary{History: days}
	if sum.History == nil {
		sum.History = []models.DailyCalories{}
	}
	xs := make([]float64, len(days))
	ys := make([]float64, len(days))
	for i, d := range days {
		xs[i] = d.Date.Days() - from.Days()
		ys[i] = d.Calories
	}
	sum.CalorieChangePerDay = models.NumberPtr(stats.Slope(xs, ys))
	sum.AverageCalories = models.NumberPtr(stats.Mean(ys))

	s.summaries.set(summaryFood, userID, sum)
	return sum, nil
}

func measuredAt(b *models.Bodyweight) (time.Time, bool) {
	if b.Time == nil {
		return time.Time{}, false
	}
	tod, err := time.Parse(common.TimeLayout, *b.Time)
	if err != nil {
		return time.Time{}, false
	}
	y, m, d := b.Date.Date()
	return time.Date(y, m, d, tod.Hour(), tod.Minute(), tod.Second(), 0, time.UTC), true
}

func numbers(vals []*float64, factor float64) []models.Number {
	out := make([]models.Number, len(vals))
	for i, v := range vals {
		out[i] = models.NumberPtr(stats.Scale(v, factor))
	}
	return out
}
