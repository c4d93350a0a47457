package httpapi

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/labstack/echo/v4"
)

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.Validationf("Invalid id %q.", c.Param("id"))
	}
	return id, nil
}

// queryInt64 returns nil when the parameter is absent.
func queryInt64(c echo.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, common.Validationf("Invalid %s %q.", name, raw)
	}
	return &v, nil
}

// queryDate returns nil when the parameter is absent.
func queryDate(c echo.Context, name string) (*models.Date, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func queryFlag(c echo.Context, name string) bool {
	v, _ := strconv.ParseBool(c.QueryParam(name))
	return v
}

func renderOptions(c echo.Context) models.RenderOptions {
	return models.RenderOptions{
		Photos:      queryFlag(c, "photos"),
		ChildrenIDs: queryFlag(c, "children_ids"),
		Children:    queryFlag(c, "children"),
	}
}

// bindJSON decodes the request body into v. Malformed JSON is a validation
// error; an empty body leaves v untouched.
func bindJSON(c echo.Context, v any) error {
	err := json.NewDecoder(c.Request().Body).Decode(v)
	switch {
	case err == nil, err == io.EOF:
		return nil
	default:
		return common.Validationf("Malformed JSON body: %v", err)
	}
}
