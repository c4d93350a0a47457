package httpapi

import (
	"context"

	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/dmitrijs2005/fitlog/internal/server/services"
)

// The handlers depend on these narrow views of the services package.

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Get(ctx context.Context, viewerID, id int64) (any, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, upd models.ProfileUpdate) (*models.User, error)
}

type FoodService interface {
	Save(ctx context.Context, userID int64, in models.FoodInput) ([]int64, error)
	Update(ctx context.Context, userID, id int64, in models.FoodInput) ([]int64, error)
	Delete(ctx context.Context, userID, id int64) ([]int64, error)
	DeleteMany(ctx context.Context, userID int64, ids []int64) ([]int64, error)
	Get(ctx context.Context, userID, id int64, opts models.RenderOptions) (*models.FoodView, error)
	ListByDate(ctx context.Context, userID int64, date models.Date, opts models.RenderOptions) ([]models.FoodView, error)
	ListByPhoto(ctx context.Context, userID, photoID int64) ([]models.FoodView, error)
	CreateFromPhotos(ctx context.Context, userID int64, photoIDs []int64) (int64, error)
}

type PhotoService interface {
	Upload(ctx context.Context, userID int64, up services.PhotoUpload) (*models.Photo, error)
	List(ctx context.Context, userID int64, filter models.PhotoFilter) ([]*models.Photo, error)
	Get(ctx context.Context, userID, id int64) (*models.Photo, error)
	Update(ctx context.Context, userID, id int64, upd models.PhotoUpdate) (*models.Photo, error)
	Data(ctx context.Context, userID, id int64) ([]byte, error)
	Delete(ctx context.Context, userID, id int64) error
	ListGroups(ctx context.Context, userID int64, filter models.PhotoGroupFilter) ([]*models.PhotoGroup, error)
	CreateGroup(ctx context.Context, userID int64, g models.PhotoGroup) (*models.PhotoGroup, error)
}

type CatalogService interface {
	ListTags(ctx context.Context, userID int64) ([]*models.Tag, error)
	SearchTags(ctx context.Context, userID int64, term string) ([]*models.Tag, error)
	CreateTag(ctx context.Context, userID int64, t models.Tag) (*models.Tag, error)
	ListLabels(ctx context.Context, userID, photoID int64) ([]*models.Label, error)
	CreateLabel(ctx context.Context, userID int64, l models.Label) (*models.Label, error)
	UpdateLabel(ctx context.Context, userID, id int64, upd models.LabelUpdate) (*models.Label, error)
	DeleteLabel(ctx context.Context, userID, id int64) error
}

type BodyService interface {
	List(ctx context.Context, userID int64) ([]*models.Bodyweight, error)
	Create(ctx context.Context, userID int64, in models.BodyweightInput) (*models.Bodyweight, error)
	Update(ctx context.Context, userID, id int64, in models.BodyweightInput) (*models.Bodyweight, error)
	Delete(ctx context.Context, userID, id int64) error
}

type WorkoutService interface {
	ListExercises(ctx context.Context, userID int64) ([]*models.Exercise, error)
	CreateExercise(ctx context.Context, userID int64, e models.Exercise) (*models.Exercise, error)
	UpdateExercise(ctx context.Context, userID, id int64, upd models.ExerciseUpdate) (*models.Exercise, error)
	DeleteExercise(ctx context.Context, userID, id int64) error
	ListSets(ctx context.Context, userID int64, date *models.Date) ([]*models.WorkoutSet, error)
	CreateSet(ctx context.Context, userID int64, ws models.WorkoutSet) (*models.WorkoutSet, error)
	UpdateSet(ctx context.Context, userID, id int64, upd models.WorkoutSetUpdate) (*models.WorkoutSet, error)
	DeleteSet(ctx context.Context, userID, id int64) error
}

type StatsService interface {
	SearchFrequent(ctx context.Context, userID int64, term string) ([]models.FrequentFood, error)
	SearchRecent(ctx context.Context, userID int64, term string) ([]models.FoodView, error)
	SearchPremade(ctx context.Context, userID int64, term string) ([]models.FoodView, error)
	SearchNutrition(ctx context.Context, userID int64, term, quantity string) (*models.NutritionResult, error)
	BodyweightSummary(ctx context.Context, userID int64) (*models.BodyweightSummary, error)
	FoodSummary(ctx context.Context, userID int64) (*models.FoodSummary, error)
}

// Services bundles everything the API serves.
type Services struct {
	Users    UserService
	Foods    FoodService
	Photos   PhotoService
	Catalog  CatalogService
	Body     BodyService
	Workouts WorkoutService
	Stats    StatsService
}
