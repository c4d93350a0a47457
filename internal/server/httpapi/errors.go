package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Error string `json:"error"`
}

// errorResponse maps a service error to a status code and a body that is
// safe to show to the client.
func errorResponse(err error) (int, errorBody) {
	var he *echo.HTTPError
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, errorBody{common.Detail(err)}
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, errorBody{err.Error()}
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, errorBody{common.ErrorUnauthorized.Error()}
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, errorBody{err.Error()}
	case dbx.IsBusy(err):
		return http.StatusServiceUnavailable, errorBody{"server busy, retry"}
	case errors.As(err, &he):
		if msg, ok := he.Message.(string); ok {
			return he.Code, errorBody{msg}
		}
		return he.Code, errorBody{http.StatusText(he.Code)}
	default:
		return http.StatusInternalServerError, errorBody{common.ErrorInternal.Error()}
	}
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, body := errorResponse(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, body)
	}
	if werr != nil {
		s.logger.Error(c.Request().Context(), "error response not written", "error", werr)
	}
}
