package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/labstack/echo/v4"
)

type idsResponse struct {
	IDs []int64 `json:"ids"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type idsRequest struct {
	IDs []int64 `json:"id"`
}

func (s *Server) listFoods(c echo.Context) error {
	date, err := queryDate(c, "date")
	if err != nil {
		return err
	}
	if date == nil {
		return common.Validationf("No valid date provided.")
	}
	list, err := s.svc.Foods.ListByDate(c.Request().Context(), currentUser(c), *date, renderOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) saveFood(c echo.Context) error {
	var in models.FoodInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	ids, err := s.svc.Foods.Save(c.Request().Context(), currentUser(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, idsResponse{IDs: ids})
}

func (s *Server) getFood(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	v, err := s.svc.Foods.Get(c.Request().Context(), currentUser(c), id, renderOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Server) updateFood(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in models.FoodInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	ids, err := s.svc.Foods.Update(c.Request().Context(), currentUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idsResponse{IDs: ids})
}

func (s *Server) deleteFood(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ids, err := s.svc.Foods.Delete(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idsResponse{IDs: ids})
}

func (s *Server) deleteFoods(c echo.Context) error {
	var in idsRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	if len(in.IDs) == 0 {
		return common.Validationf("No ids provided.")
	}
	ids, err := s.svc.Foods.DeleteMany(c.Request().Context(), currentUser(c), in.IDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idsResponse{IDs: ids})
}

func (s *Server) searchFoods(c echo.Context) error {
	ctx := c.Request().Context()
	userID := currentUser(c)
	term := strings.TrimSpace(c.QueryParam("q"))

	var (
		out any
		err error
	)
	switch c.QueryParam("type") {
	case "", "frequent":
		out, err = s.svc.Stats.SearchFrequent(ctx, userID, term)
	case "recent":
		out, err = s.svc.Stats.SearchRecent(ctx, userID, term)
	case "premade":
		out, err = s.svc.Stats.SearchPremade(ctx, userID, term)
	default:
		return common.Validationf("Unknown search type %q.", c.QueryParam("type"))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) searchNutrition(c echo.Context) error {
	res, err := s.svc.Stats.SearchNutrition(c.Request().Context(), currentUser(c), c.QueryParam("q"), c.QueryParam("quantity"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) foodSummary(c echo.Context) error {
	res, err := s.svc.Stats.FoodSummary(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
