package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/labstack/echo/v4"
)

func (s *Server) listExercises(c echo.Context) error {
	list, err := s.svc.Workouts.ListExercises(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

func (s *Server) createExercise(c echo.Context) error {
	var e models.Exercise
	if err := bindJSON(c, &e); err != nil {
		return err
	}
	created, err := s.svc.Workouts.CreateExercise(c.Request().Context(), currentUser(c), e)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateExercise(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var upd models.ExerciseUpdate
	if err := bindJSON(c, &upd); err != nil {
		return err
	}
	e, err := s.svc.Workouts.UpdateExercise(c.Request().Context(), currentUser(c), id, upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (s *Server) deleteExercise(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.svc.Workouts.DeleteExercise(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listSets(c echo.Context) error {
	date, err := queryDate(c, "date")
	if err != nil {
		return err
	}
	list, err := s.svc.Workouts.ListSets(c.Request().Context(), currentUser(c), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

func (s *Server) createSet(c echo.Context) error {
	var ws models.WorkoutSet
	if err := bindJSON(c, &ws); err != nil {
		return err
	}
	created, err := s.svc.Workouts.CreateSet(c.Request().Context(), currentUser(c), ws)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateSet(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var upd models.WorkoutSetUpdate
	if err := bindJSON(c, &upd); err != nil {
		return err
	}
	ws, err := s.svc.Workouts.UpdateSet(c.Request().Context(), currentUser(c), id, upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ws)
}

func (s *Server) deleteSet(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.svc.Workouts.DeleteSet(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
