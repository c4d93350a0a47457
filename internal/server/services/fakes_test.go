package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/bodyweights"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/foods"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/labels"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/photogroups"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/photos"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/tags"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/users"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/workouts"
)

// memDB is shared by all fake repositories of one test. It ignores
// transactions: sqlmock only checks that they begin and end.
type memDB struct {
	nextID int64

	foods       map[int64]*models.Food
	photos      map[int64]*models.Photo
	groups      map[int64]*models.PhotoGroup
	tags        map[int64]*models.Tag
	labels      map[int64]*models.Label
	bodyweights map[int64]*models.Bodyweight
	users       map[int64]*models.User
	exercises   map[int64]*models.Exercise
	sets        map[int64]*models.WorkoutSet

	dailyCalories []models.DailyCalories
	frequent      []models.FrequentFood
	failFoodGet   error
}

func newMemDB() *memDB {
	return &memDB{
		foods:       map[int64]*models.Food{},
		photos:      map[int64]*models.Photo{},
		groups:      map[int64]*models.PhotoGroup{},
		tags:        map[int64]*models.Tag{},
		labels:      map[int64]*models.Label{},
		bodyweights: map[int64]*models.Bodyweight{},
		users:       map[int64]*models.User{},
		exercises:   map[int64]*models.Exercise{},
		sets:        map[int64]*models.WorkoutSet{},
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func sortedKeys[T any](rows map[int64]T) []int64 {
	keys := make([]int64, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	m *memDB
}

func (f *fakeRepoManager) Foods(dbx.DBTX) foods.Repository {
	return &fakeFoods{f.m}
}

func (f *fakeRepoManager) Photos(dbx.DBTX) photos.Repository {
	return &fakePhotos{f.m}
}

func (f *fakeRepoManager) PhotoGroups(dbx.DBTX) photogroups.Repository {
	return &fakeGroups{f.m}
}

func (f *fakeRepoManager) Tags(dbx.DBTX) tags.Repository {
	return &fakeTags{f.m}
}

func (f *fakeRepoManager) Labels(dbx.DBTX) labels.Repository {
	return &fakeLabels{f.m}
}

func (f *fakeRepoManager) Bodyweights(dbx.DBTX) bodyweights.Repository {
	return &fakeBodyweights{f.m}
}

func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository {
	return &fakeUsers{f.m}
}

func (f *fakeRepoManager) Exercises(dbx.DBTX) workouts.ExerciseRepository {
	return &fakeExercises{f.m}
}

func (f *fakeRepoManager) WorkoutSets(dbx.DBTX) workouts.SetRepository {
	return &fakeSets{f.m}
}

// --- foods ---

type fakeFoods struct{ m *memDB }

func (r *fakeFoods) Create(_ context.Context, f *models.Food) (*models.Food, error) {
	f.ID = r.m.id()
	c := *f
	r.m.foods[f.ID] = &c
	return f, nil
}

func (r *fakeFoods) Update(_ context.Context, f *models.Food) error {
	old, ok := r.m.foods[f.ID]
	if !ok || old.UserID != f.UserID {
		return common.ErrorNotFound
	}
	c := *f
	r.m.foods[f.ID] = &c
	return nil
}

func (r *fakeFoods) Get(_ context.Context, userID, id int64) (*models.Food, error) {
	if r.m.failFoodGet != nil {
		return nil, r.m.failFoodGet
	}
	f, ok := r.m.foods[id]
	if !ok || f.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *f
	return &c, nil
}

func (r *fakeFoods) Delete(_ context.Context, userID, id int64) error {
	f, ok := r.m.foods[id]
	if !ok || f.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.m.foods, id)
	return nil
}

func (r *fakeFoods) filter(pred func(*models.Food) bool) []*models.Food {
	var out []*models.Food
	for _, id := range sortedKeys(r.m.foods) {
		if f := r.m.foods[id]; pred(f) {
			c := *f
			out = append(out, &c)
		}
	}
	return out
}

func (r *fakeFoods) ListByDate(_ context.Context, userID int64, date models.Date) ([]*models.Food, error) {
	return r.filter(func(f *models.Food) bool { return f.UserID == userID && f.Date.Equal(date) }), nil
}

func (r *fakeFoods) ListChildren(_ context.Context, userID, parentID int64) ([]*models.Food, error) {
	return r.filter(func(f *models.Food) bool {
		return f.UserID == userID && f.ParentID != nil && *f.ParentID == parentID
	}), nil
}

func (r *fakeFoods) ListDescendants(_ context.Context, userID, rootID int64) ([]*models.Food, error) {
	var out []*models.Food
	below := map[int64]bool{rootID: true}
	for grew := true; grew; {
		grew = false
		for _, id := range sortedKeys(r.m.foods) {
			f := r.m.foods[id]
			if f.UserID == userID && !below[id] && f.ParentID != nil && below[*f.ParentID] {
				below[id] = true
				c := *f
				out = append(out, &c)
				grew = true
			}
		}
	}
	return out, nil
}

func (r *fakeFoods) SetSubtreeDate(ctx context.Context, userID, rootID int64, date models.Date) error {
	rows, _ := r.ListDescendants(ctx, userID, rootID)
	for _, f := range rows {
		r.m.foods[f.ID].Date = date
	}
	return nil
}

func (r *fakeFoods) ListRootsByPhoto(_ context.Context, userID, photoID int64, groupID *int64) ([]*models.Food, error) {
	return r.filter(func(f *models.Food) bool {
		if f.UserID != userID || f.ParentID != nil {
			return false
		}
		if f.PhotoID != nil && *f.PhotoID == photoID {
			return true
		}
		return groupID != nil && f.PhotoGroupID != nil && *f.PhotoGroupID == *groupID
	}), nil
}

func (r *fakeFoods) ClearPhoto(_ context.Context, userID, photoID int64) error {
	for _, f := range r.m.foods {
		if f.UserID == userID && f.PhotoID != nil && *f.PhotoID == photoID {
			f.PhotoID = nil
		}
	}
	return nil
}

func (r *fakeFoods) CountByPhoto(_ context.Context, userID, photoID int64) (int, error) {
	n := 0
	for _, f := range r.m.foods {
		if f.UserID == userID && f.PhotoID != nil && *f.PhotoID == photoID {
			n++
		}
	}
	return n, nil
}

func (r *fakeFoods) SearchFrequent(context.Context, int64, string, int) ([]models.FrequentFood, error) {
	return r.m.frequent, nil
}

func (r *fakeFoods) byName(userID int64, term string) []*models.Food {
	out := r.filter(func(f *models.Food) bool {
		return f.UserID == userID && strings.Contains(strings.ToLower(f.Name), strings.ToLower(term))
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date.Time) })
	return out
}

func (r *fakeFoods) SearchRecent(_ context.Context, userID int64, term string, limit int) ([]*models.Food, error) {
	out := r.byName(userID, term)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeFoods) SearchPremade(_ context.Context, userID int64, term string) ([]*models.Food, error) {
	var out []*models.Food
	for _, f := range r.byName(userID, term) {
		if f.Premade && (f.Finished == nil || !*f.Finished) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFoods) SearchByName(_ context.Context, userID int64, term string) ([]*models.Food, error) {
	return r.byName(userID, term), nil
}

func (r *fakeFoods) DailyCalories(context.Context, int64, models.Date, models.Date) ([]models.DailyCalories, error) {
	return r.m.dailyCalories, nil
}

// --- photos ---

type fakePhotos struct{ m *memDB }

func (r *fakePhotos) Create(_ context.Context, p *models.Photo) (*models.Photo, error) {
	p.ID = r.m.id()
	p.UploadTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := *p
	r.m.photos[p.ID] = &c
	return p, nil
}

func (r *fakePhotos) Update(_ context.Context, p *models.Photo) error {
	if _, ok := r.m.photos[p.ID]; !ok {
		return common.ErrorNotFound
	}
	c := *p
	r.m.photos[p.ID] = &c
	return nil
}

func (r *fakePhotos) Get(_ context.Context, userID, id int64) (*models.Photo, error) {
	p, ok := r.m.photos[id]
	if !ok || p.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *p
	return &c, nil
}

func (r *fakePhotos) GetMany(ctx context.Context, userID int64, ids []int64) ([]*models.Photo, error) {
	var out []*models.Photo
	seen := map[int64]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, err := r.Get(ctx, userID, id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePhotos) List(_ context.Context, userID int64, filter models.PhotoFilter) ([]*models.Photo, error) {
	var out []*models.Photo
	for _, id := range sortedKeys(r.m.photos) {
		p := r.m.photos[id]
		if p.UserID != userID {
			continue
		}
		if filter.Date != nil && !p.Date.Equal(*filter.Date) {
			continue
		}
		if filter.GroupID != nil && (p.GroupID == nil || *p.GroupID != *filter.GroupID) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakePhotos) ListByGroup(ctx context.Context, userID, groupID int64) ([]*models.Photo, error) {
	return r.List(ctx, userID, models.PhotoFilter{GroupID: &groupID})
}

func (r *fakePhotos) SetGroup(_ context.Context, userID int64, ids []int64, groupID int64) error {
	for _, id := range ids {
		if p, ok := r.m.photos[id]; ok && p.UserID == userID {
			g := groupID
			p.GroupID = &g
		}
	}
	return nil
}

func (r *fakePhotos) Delete(_ context.Context, userID, id int64) error {
	p, ok := r.m.photos[id]
	if !ok || p.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.m.photos, id)
	return nil
}

// --- photo groups ---

type fakeGroups struct{ m *memDB }

func (r *fakeGroups) Create(_ context.Context, g *models.PhotoGroup) (*models.PhotoGroup, error) {
	g.ID = r.m.id()
	c := *g
	r.m.groups[g.ID] = &c
	return g, nil
}

func (r *fakeGroups) Get(_ context.Context, userID, id int64) (*models.PhotoGroup, error) {
	g, ok := r.m.groups[id]
	if !ok || g.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *g
	return &c, nil
}

func (r *fakeGroups) List(_ context.Context, userID int64, _ models.PhotoGroupFilter) ([]*models.PhotoGroup, error) {
	var out []*models.PhotoGroup
	for _, id := range sortedKeys(r.m.groups) {
		if g := r.m.groups[id]; g.UserID == userID {
			c := *g
			out = append(out, &c)
		}
	}
	return out, nil
}

// --- tags and labels ---

type fakeTags struct{ m *memDB }

func (r *fakeTags) Create(_ context.Context, t *models.Tag) (*models.Tag, error) {
	t.ID = r.m.id()
	c := *t
	r.m.tags[t.ID] = &c
	return t, nil
}

func (r *fakeTags) Get(_ context.Context, userID, id int64) (*models.Tag, error) {
	t, ok := r.m.tags[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (r *fakeTags) List(_ context.Context, userID int64) ([]*models.Tag, error) {
	var out []*models.Tag
	for _, id := range sortedKeys(r.m.tags) {
		if t := r.m.tags[id]; t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTags) Search(ctx context.Context, userID int64, term string, limit int) ([]*models.Tag, error) {
	all, _ := r.List(ctx, userID)
	var out []*models.Tag
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Tag), strings.ToLower(term)) && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeLabels struct{ m *memDB }

func (r *fakeLabels) Create(_ context.Context, l *models.Label) (*models.Label, error) {
	l.ID = r.m.id()
	c := *l
	r.m.labels[l.ID] = &c
	return l, nil
}

func (r *fakeLabels) Update(_ context.Context, l *models.Label) error {
	c := *l
	r.m.labels[l.ID] = &c
	return nil
}

func (r *fakeLabels) Get(_ context.Context, userID, id int64) (*models.Label, error) {
	l, ok := r.m.labels[id]
	if !ok || l.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *l
	return &c, nil
}

func (r *fakeLabels) ListByPhoto(_ context.Context, userID, photoID int64) ([]*models.Label, error) {
	var out []*models.Label
	for _, id := range sortedKeys(r.m.labels) {
		if l := r.m.labels[id]; l.UserID == userID && l.PhotoID == photoID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLabels) Delete(_ context.Context, userID, id int64) error {
	l, ok := r.m.labels[id]
	if !ok || l.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.m.labels, id)
	return nil
}

// --- body weights ---

type fakeBodyweights struct{ m *memDB }

func (r *fakeBodyweights) Create(_ context.Context, b *models.Bodyweight) (*models.Bodyweight, error) {
	b.ID = r.m.id()
	c := *b
	r.m.bodyweights[b.ID] = &c
	return b, nil
}

func (r *fakeBodyweights) Update(_ context.Context, b *models.Bodyweight) error {
	c := *b
	r.m.bodyweights[b.ID] = &c
	return nil
}

func (r *fakeBodyweights) Get(_ context.Context, userID, id int64) (*models.Bodyweight, error) {
	b, ok := r.m.bodyweights[id]
	if !ok || b.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *b
	return &c, nil
}

func (r *fakeBodyweights) List(_ context.Context, userID int64) ([]*models.Bodyweight, error) {
	var out []*models.Bodyweight
	for _, id := range sortedKeys(r.m.bodyweights) {
		if b := r.m.bodyweights[id]; b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBodyweights) ListTimed(ctx context.Context, userID int64) ([]*models.Bodyweight, error) {
	all, _ := r.List(ctx, userID)
	var out []*models.Bodyweight
	for _, b := range all {
		if b.Time != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBodyweights) Delete(_ context.Context, userID, id int64) error {
	b, ok := r.m.bodyweights[id]
	if !ok || b.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.m.bodyweights, id)
	return nil
}

// --- users ---

type fakeUsers struct{ m *memDB }

func (r *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	for _, other := range r.m.users {
		if other.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = r.m.id()
	c := *u
	r.m.users[u.ID] = &c
	return u, nil
}

func (r *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUsers) UpdateProfile(_ context.Context, u *models.User) error {
	old, ok := r.m.users[u.ID]
	if !ok {
		return common.ErrorNotFound
	}
	old.Name = u.Name
	old.PreferredUnits = u.PreferredUnits
	return nil
}

func (r *fakeUsers) TouchActivity(_ context.Context, id int64, at time.Time) error {
	if u, ok := r.m.users[id]; ok {
		u.LastActivity = &at
	}
	return nil
}

// --- workouts ---

type fakeExercises struct{ m *memDB }

func (r *fakeExercises) Create(_ context.Context, e *models.Exercise) (*models.Exercise, error) {
	e.ID = r.m.id()
	c := *e
	r.m.exercises[e.ID] = &c
	return e, nil
}

func (r *fakeExercises) Update(_ context.Context, e *models.Exercise) error {
	c := *e
	r.m.exercises[e.ID] = &c
	return nil
}

func (r *fakeExercises) Get(_ context.Context, userID, id int64) (*models.Exercise, error) {
	e, ok := r.m.exercises[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *e
	return &c, nil
}

func (r *fakeExercises) List(_ context.Context, userID int64) ([]*models.Exercise, error) {
	var out []*models.Exercise
	for _, id := range sortedKeys(r.m.exercises) {
		if e := r.m.exercises[id]; e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExercises) Delete(_ context.Context, userID, id int64) error {
	if _, err := r.Get(context.Background(), userID, id); err != nil {
		return err
	}
	delete(r.m.exercises, id)
	return nil
}

type fakeSets struct{ m *memDB }

func (r *fakeSets) Create(_ context.Context, s *models.WorkoutSet) (*models.WorkoutSet, error) {
	s.ID = r.m.id()
	c := *s
	r.m.sets[s.ID] = &c
	return s, nil
}

func (r *fakeSets) Update(_ context.Context, s *models.WorkoutSet) error {
	c := *s
	r.m.sets[s.ID] = &c
	return nil
}

func (r *fakeSets) Get(_ context.Context, userID, id int64) (*models.WorkoutSet, error) {
	s, ok := r.m.sets[id]
	if !ok || s.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *s
	return &c, nil
}

func (r *fakeSets) List(_ context.Context, userID int64, date *models.Date) ([]*models.WorkoutSet, error) {
	var out []*models.WorkoutSet
	for _, id := range sortedKeys(r.m.sets) {
		s := r.m.sets[id]
		if s.UserID == userID && (date == nil || s.Date.Equal(*date)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSets) Delete(_ context.Context, userID, id int64) error {
	if _, err := r.Get(context.Background(), userID, id); err != nil {
		return err
	}
	delete(r.m.sets, id)
	return nil
}

// --- helpers ---

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

func expectRollback(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

var testLogger logging.Logger = logging.Nop{}

func ptr[T any](v T) *T { return &v }

func day(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
