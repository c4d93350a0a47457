package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/labstack/echo/v4"
)

func (s *Server) listBodyweights(c echo.Context) error {
	list, err := s.svc.Body.List(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

func (s *Server) createBodyweight(c echo.Context) error {
	var in models.BodyweightInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	b, err := s.svc.Body.Create(c.Request().Context(), currentUser(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, b)
}

func (s *Server) updateBodyweight(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in models.BodyweightInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	b, err := s.svc.Body.Update(c.Request().Context(), currentUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) deleteBodyweight(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.svc.Body.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) bodyweightSummary(c echo.Context) error {
	sum, err := s.svc.Stats.BodyweightSummary(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}
