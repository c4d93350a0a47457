package httpapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/server/auth"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// UserIDFromContext returns the authenticated user id stored by requireAuth.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func (s *Server) configureMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				args = append(args, "error", v.Error.Error())
			}
			s.logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	}))
	s.echo.Use(s.observe)
}

// observe feeds the request metrics. It sits inside the request logger so
// it sees handler errors before they are rendered.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		status := c.Response().Status
		if err != nil {
			status, _ = errorResponse(err)
			s.metrics.ObserveError(path, err)
		}
		s.metrics.ObserveRequest(c.Request().Method, path, status, time.Since(start))
		return err
	}
}

// requireAuth accepts "Authorization: Bearer <jwt>" and stores the user id
// in the request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			return common.ErrorUnauthorized
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimSpace(token), s.jwtSecret)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
		}

		req := c.Request()
		c.SetRequest(req.WithContext(context.WithValue(req.Context(), userIDKey, userID)))
		return next(c)
	}
}

func currentUser(c echo.Context) int64 {
	id, _ := UserIDFromContext(c.Request().Context())
	return id
}
