package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/labstack/echo/v4"
)

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *Server) login(c echo.Context) error {
	var in credentials
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	token, err := s.svc.Users.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token})
}

func (s *Server) register(c echo.Context) error {
	var in credentials
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	u, err := s.svc.Users.Register(c.Request().Context(), in.Name, in.Email, in.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

func (s *Server) getUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, err := s.svc.Users.Get(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) getProfile(c echo.Context) error {
	u, err := s.svc.Users.Profile(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) updateProfile(c echo.Context) error {
	var upd models.ProfileUpdate
	if err := bindJSON(c, &upd); err != nil {
		return err
	}
	u, err := s.svc.Users.UpdateProfile(c.Request().Context(), currentUser(c), upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
