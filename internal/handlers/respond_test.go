package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationFor(t *testing.T, query string) (int, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/items?"+query, nil)
	return pagination(c, 24, 100)
}

func TestPaginationDefaults(t *testing.T) {
	limit, offset := paginationFor(t, "")
	assert.Equal(t, 24, limit)
	assert.Equal(t, 0, offset)
}

func TestPaginationExplicitPage(t *testing.T) {
	limit, offset := paginationFor(t, "page=3&perPage=10")
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)
}

func TestPaginationCapsPerPage(t *testing.T) {
	limit, _ := paginationFor(t, "perPage=5000")
	assert.Equal(t, 24, limit)
}

func TestPaginationIgnoresGarbage(t *testing.T) {
	limit, offset := paginationFor(t, "page=abc&perPage=-5")
	assert.Equal(t, 24, limit)
	assert.Equal(t, 0, offset)
}
