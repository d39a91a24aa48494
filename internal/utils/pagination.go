// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const MaxPageLimit = 100

// OffsetParams is offset/limit pagination. A zero Limit means "no limit".
type OffsetParams struct {
	Offset int `json:"offset" validate:"min=0"`
	Limit  int `json:"limit" validate:"min=0,max=100"`
}

func GetOffsetParams(c *gin.Context) OffsetParams {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return OffsetParams{Offset: offset, Limit: limit}
}

// Paginate slices items according to params without copying them.
func Paginate[T any](items []T, params OffsetParams) []T {
	if params.Offset < 0 {
		params.Offset = 0
	}
	if params.Offset >= len(items) {
		return items[:0]
	}
	items = items[params.Offset:]
	if params.Limit > 0 && params.Limit < len(items) {
		items = items[:params.Limit]
	}
	return items
}

func SetPaginationHeaders(c *gin.Context, total, returned int, params OffsetParams) {
	c.Header("X-Total-Count", strconv.Itoa(total))
	c.Header("X-Returned-Count", strconv.Itoa(returned))
	c.Header("X-Offset", strconv.Itoa(params.Offset))
	if params.Limit > 0 {
		c.Header("X-Limit", strconv.Itoa(params.Limit))
	}
}
