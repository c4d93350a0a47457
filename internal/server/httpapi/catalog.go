package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/labstack/echo/v4"
)

func (s *Server) listTags(c echo.Context) error {
	list, err := s.svc.Catalog.ListTags(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

func (s *Server) searchTags(c echo.Context) error {
	list, err := s.svc.Catalog.SearchTags(c.Request().Context(), currentUser(c), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

func (s *Server) createTag(c echo.Context) error {
	var t models.Tag
	if err := bindJSON(c, &t); err != nil {
		return err
	}
	created, err := s.svc.Catalog.CreateTag(c.Request().Context(), currentUser(c), t)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) listLabels(c echo.Context) error {
	photoID, err := queryInt64(c, "photo_id")
	if err != nil {
		return err
	}
	if photoID == nil {
		return common.Validationf("No photo_id provided.")
	}
	list, err := s.svc.Catalog.ListLabels(c.Request().Context(), currentUser(c), *photoID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

func (s *Server) createLabel(c echo.Context) error {
	var l models.Label
	if err := bindJSON(c, &l); err != nil {
		return err
	}
	created, err := s.svc.Catalog.CreateLabel(c.Request().Context(), currentUser(c), l)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateLabel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var upd models.LabelUpdate
	if err := bindJSON(c, &upd); err != nil {
		return err
	}
	l, err := s.svc.Catalog.UpdateLabel(c.Request().Context(), currentUser(c), id, upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

func (s *Server) deleteLabel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.svc.Catalog.DeleteLabel(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
