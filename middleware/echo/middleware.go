package echomw

import (
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reoring/formskema"
	"github.com/reoring/formskema/middleware"
)

// ValidateJSON validates request bodies with v, stores the decoded value in
// the request context on success, or returns 400 with Issues when validation
// fails. A zero opt means middleware.DefaultValidateOpt.
func ValidateJSON(v formskema.Validator, opt formskema.ValidateOpt) echo.MiddlewareFunc {
	if opt == (formskema.ValidateOpt{}) {
		opt = middleware.DefaultValidateOpt()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			val, raw, err := middleware.Check(req.Context(), v, req.Body, opt)
			if err != nil {
				if iss, ok := formskema.AsIssues(err); ok {
					return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				}
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			req.Body = io.NopCloser(bytes.NewReader(raw))
			c.SetRequest(req.WithContext(middleware.ContextWithValue(req.Context(), val)))
			return next(c)
		}
	}
}

// GetValue fetches the validated body from echo.Context.
func GetValue(c echo.Context) (formskema.Value, bool) {
	return middleware.ValueFromContext(c.Request().Context())
}
