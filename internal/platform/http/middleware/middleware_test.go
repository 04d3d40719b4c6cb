package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var (
	errNotFound = errors.New("not found")
	errUpstream = errors.New("upstream down")
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newErrorRouter(err error) *gin.Engine {
	r := gin.New()
	r.Use(Error(
		StatusRule{Err: errNotFound, Status: http.StatusNotFound},
		StatusRule{Err: errUpstream, Status: http.StatusBadGateway, Message: "market data unavailable"},
	))
	r.GET("/x", func(c *gin.Context) {
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"no error", nil, http.StatusOK, `{"ok":true}`},
		{"rule uses error text", fmt.Errorf("lookup: %w", errNotFound), http.StatusNotFound, `{"error":"lookup: not found"}`},
		{"rule uses fixed message", fmt.Errorf("twelvedata: %w", errUpstream), http.StatusBadGateway, `{"error":"market data unavailable"}`},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			newErrorRouter(tt.err).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestError_ValidationErrors(t *testing.T) {
	t.Parallel()

	type query struct {
		Days int `form:"days" binding:"required,min=1"`
	}

	r := gin.New()
	r.Use(Error())
	r.GET("/x", func(c *gin.Context) {
		var q query
		if err := c.ShouldBindQuery(&q); err != nil {
			_ = c.Error(err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?days=0", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Days failed on")
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("keeps valid incoming id", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, id, w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces invalid incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, "not-a-uuid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
	})
}
