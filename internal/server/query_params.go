package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storeadmin/internal/resource"
)

type productListQuery struct {
	CategoryID string `form:"categoryId"`
	SizeID     string `form:"sizeId"`
	ColorID    string `form:"colorId"`
	IsFeatured string `form:"isFeatured"`
	SortBy     string `form:"sort_by"`
	OrderBy    string `form:"order_by"`
}

func storeParam(c *gin.Context) string {
	return strings.TrimSpace(c.Param("storeId"))
}

func idParam(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}

// requireIDParam aborts with "<title> ID is required" when the :id segment is blank.
func requireIDParam(c *gin.Context, title string) (string, bool) {
	id := idParam(c)
	if id == "" {
		AbortWithError(c, resource.Invalid(title+" ID is required"))
		return "", false
	}
	return id, true
}
