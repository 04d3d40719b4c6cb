// Package middleware provides gin middleware shared by every route group.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"stock_dash/internal/api"
)

// StatusRule maps errors matching Err (via errors.Is) to an HTTP status.
// When Message is empty the error text itself is returned to the client.
type StatusRule struct {
	Err     error
	Status  int
	Message string
}

// Error converts the first error pushed with c.Error into a JSON error response.
// Rules are checked in order; unmatched errors become 500.
func Error(rules ...StatusRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors[0].Err

		// バインディング時のバリデーションエラー
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]string, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, fe.Field()+" failed on "+fe.Tag())
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: strings.Join(fields, "; ")})
			return
		}

		for _, r := range rules {
			if !errors.Is(err, r.Err) {
				continue
			}
			msg := r.Message
			if msg == "" {
				msg = err.Error()
			}
			if r.Status >= http.StatusInternalServerError {
				slog.Error("request failed", "path", c.Request.URL.Path, "status", r.Status, "error", err)
			}
			c.AbortWithStatusJSON(r.Status, api.ErrorResponse{Error: msg})
			return
		}

		slog.Error("unhandled request error", "path", c.Request.URL.Path, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}
