// Package httpapi exposes the services as a JSON API over echo.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/dmitrijs2005/fitlog/internal/server/metrics"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	echo      *echo.Echo
	address   string
	logger    logging.Logger
	jwtSecret []byte
	svc       Services
	metrics   *metrics.HTTPMetrics
}

func NewServer(a string, l logging.Logger, secretKey string, svc Services, registry *prometheus.Registry) (*Server, error) {
	m, err := metrics.NewHTTPMetrics(registry)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		address:   a,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
		svc:       svc,
		metrics:   m,
	}
	e.HTTPErrorHandler = s.errorHandler
	s.configureMiddleware()
	s.routes()
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(registry)))
	return s, nil
}

// Handler returns the root handler; used by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.echo.Start(s.address)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() {
	api := s.echo.Group("/api")
	api.POST("/auth/login", s.login)
	api.POST("/users", s.register)
	api.GET("/users/:id", s.getUser, s.requireAuth)

	data := api.Group("/data", s.requireAuth)

	data.GET("/profile", s.getProfile)
	data.PUT("/profile", s.updateProfile)

	data.GET("/foods", s.listFoods)
	data.POST("/foods", s.saveFood)
	data.DELETE("/foods", s.deleteFoods)
	data.GET("/foods/search", s.searchFoods)
	data.GET("/foods/nutrition", s.searchNutrition)
	data.GET("/foods/summary", s.foodSummary)
	data.GET("/foods/:id", s.getFood)
	data.PUT("/foods/:id", s.updateFood)
	data.DELETE("/foods/:id", s.deleteFood)

	data.GET("/photos", s.listPhotos)
	data.POST("/photos", s.uploadPhoto)
	data.POST("/photos/food", s.foodFromPhotos)
	data.GET("/photos/:id", s.getPhoto)
	data.PUT("/photos/:id", s.updatePhoto)
	data.DELETE("/photos/:id", s.deletePhoto)
	data.GET("/photos/:id/data", s.photoData)
	data.GET("/photos/:id/food", s.photoFoods)

	data.GET("/photo_groups", s.listPhotoGroups)
	data.POST("/photo_groups", s.createPhotoGroup)

	data.GET("/tags", s.listTags)
	data.POST("/tags", s.createTag)
	data.GET("/tags/search", s.searchTags)

	data.GET("/labels", s.listLabels)
	data.POST("/labels", s.createLabel)
	data.PUT("/labels/:id", s.updateLabel)
	data.DELETE("/labels/:id", s.deleteLabel)

	data.GET("/body/weights", s.listBodyweights)
	data.POST("/body/weights", s.createBodyweight)
	data.GET("/body/weights/summary", s.bodyweightSummary)
	data.PUT("/body/weights/:id", s.updateBodyweight)
	data.DELETE("/body/weights/:id", s.deleteBodyweight)

	data.GET("/exercises", s.listExercises)
	data.POST("/exercises", s.createExercise)
	data.PUT("/exercises/:id", s.updateExercise)
	data.DELETE("/exercises/:id", s.deleteExercise)

	data.GET("/workout/sets", s.listSets)
	data.POST("/workout/sets", s.createSet)
	data.PUT("/workout/sets/:id", s.updateSet)
	data.DELETE("/workout/sets/:id", s.deleteSet)
}
