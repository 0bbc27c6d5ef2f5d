package ginmw

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reoring/formskema"
	"github.com/reoring/formskema/middleware"
)

// ValidateJSON validates the incoming JSON with v using opt (or
// DefaultValidateOpt when zero), stores the decoded value in the request
// context, and on validation failure returns 400 with an Issues payload.
func ValidateJSON(v formskema.Validator, opt formskema.ValidateOpt) gin.HandlerFunc {
	if opt == (formskema.ValidateOpt{}) {
		opt = middleware.DefaultValidateOpt()
	}
	return func(c *gin.Context) {
		val, raw, err := middleware.Check(c.Request.Context(), v, c.Request.Body, opt)
		if err != nil {
			if iss, ok := formskema.AsIssues(err); ok {
				c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		c.Request = c.Request.WithContext(middleware.ContextWithValue(c.Request.Context(), val))
		c.Next()
	}
}

// GetValue fetches the validated body from gin.Context.
func GetValue(c *gin.Context) (formskema.Value, bool) {
	return middleware.ValueFromContext(c.Request.Context())
}
