package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/job-board-api/internal/constants"
)

func paginationContext(query string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/jobs?"+query, nil)
	return c
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		page   int
		limit  int
		offset int
	}{
		{"defaults", "", 1, constants.DefaultPageSize, 0},
		{"explicit", "page=3&limit=10", 3, 10, 20},
		{"page below minimum", "page=0&limit=10", 1, 10, 0},
		{"limit above maximum", "page=2&limit=1000", 2, constants.DefaultPageSize, constants.DefaultPageSize},
		{"garbage", "page=abc&limit=xyz", 1, constants.DefaultPageSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := GetPaginationParams(paginationContext(tt.query))
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
			assert.Equal(t, tt.offset, params.Offset)
		})
	}
}

func TestTotalPages(t *testing.T) {
	params := PaginationParams{Page: 1, Limit: 10}
	assert.Equal(t, 0, params.TotalPages(0))
	assert.Equal(t, 1, params.TotalPages(10))
	assert.Equal(t, 3, params.TotalPages(21))
}
