package helper_util

import (
	"strconv"

	"github.com/gin-gonic/gin"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

// GetPaginationParams reads page and limit from the query string. Missing
// values take the defaults; malformed or non-positive values are rejected.
func GetPaginationParams(c *gin.Context) (model.Page, error) {
	page, err := positiveQueryInt(c, "page", 1)
	if err != nil {
		return model.Page{}, err
	}
	limit, err := positiveQueryInt(c, "limit", model.DefaultPageSize)
	if err != nil {
		return model.Page{}, err
	}
	return model.Page{Page: page, Limit: limit}.Normalize(), nil
}

func positiveQueryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, intervene_errors.ErrInvalidPagination.WithDetails(map[string]interface{}{name: raw})
	}
	return v, nil
}
