package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/dmitrijs2005/fitlog/internal/server/services"
	"github.com/labstack/echo/v4"
)

// uploadPhoto takes a multipart form with "file" and optional "date" and
// "time" fields.
func (s *Server) uploadPhoto(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return common.Validationf("No file provided.")
	}
	var date *models.Date
	if raw := c.FormValue("date"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			return err
		}
		date = &d
	}
	var tod *string
	if raw := c.FormValue("time"); raw != "" {
		tod = &raw
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	p, err := s.svc.Photos.Upload(c.Request().Context(), currentUser(c), services.PhotoUpload{
		Date:     date,
		Time:     tod,
		FileName: fh.Filename,
		Body:     f,
		Size:     fh.Size,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) listPhotos(c echo.Context) error {
	var filter models.PhotoFilter
	var err error
	if filter.Date, err = queryDate(c, "date"); err != nil {
		return err
	}
	if filter.GroupID, err = queryInt64(c, "group_id"); err != nil {
		return err
	}
	list, err := s.svc.Photos.List(c.Request().Context(), currentUser(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

func (s *Server) getPhoto(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := s.svc.Photos.Get(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) updatePhoto(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var upd models.PhotoUpdate
	if err := bindJSON(c, &upd); err != nil {
		return err
	}
	p, err := s.svc.Photos.Update(c.Request().Context(), currentUser(c), id, upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) deletePhoto(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.svc.Photos.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) photoData(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	b, err := s.svc.Photos.Data(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, http.DetectContentType(b), b)
}

func (s *Server) photoFoods(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	list, err := s.svc.Foods.ListByPhoto(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// foodFromPhotos logs a placeholder food entry for {"id": [photo ids]}.
func (s *Server) foodFromPhotos(c echo.Context) error {
	var in idsRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	id, err := s.svc.Foods.CreateFromPhotos(c.Request().Context(), currentUser(c), in.IDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, idResponse{ID: id})
}

func (s *Server) listPhotoGroups(c echo.Context) error {
	var filter models.PhotoGroupFilter
	var err error
	if filter.ID, err = queryInt64(c, "id"); err != nil {
		return err
	}
	if filter.ParentID, err = queryInt64(c, "parent_id"); err != nil {
		return err
	}
	if filter.Date, err = queryDate(c, "date"); err != nil {
		return err
	}
	list, err := s.svc.Photos.ListGroups(c.Request().Context(), currentUser(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

func (s *Server) createPhotoGroup(c echo.Context) error {
	var g models.PhotoGroup
	if err := bindJSON(c, &g); err != nil {
		return err
	}
	created, err := s.svc.Photos.CreateGroup(c.Request().Context(), currentUser(c), g)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// nonNil keeps empty lists rendering as [] rather than null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
