package echomw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/reoring/formskema"
	g "github.com/reoring/formskema/dsl"
	echomw "github.com/reoring/formskema/middleware/echo"
)

func TestValidateJSON(t *testing.T) {
	v := g.Object().Field("title", g.String().Min(3)).Required().MustBuild()
	e := echo.New()
	e.POST("/quizzes", func(c echo.Context) error {
		val, ok := echomw.GetValue(c)
		if !ok {
			t.Errorf("value missing from context")
		}
		title, _ := val.(*formskema.Object).Get("title")
		return c.String(http.StatusCreated, string(title.(formskema.String)))
	}, echomw.ValidateJSON(v, formskema.ValidateOpt{}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(`{"title":"Animal Quiz"}`)))
	if rec.Code != http.StatusCreated || rec.Body.String() != "Animal Quiz" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(`{"title":"ab"}`)))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"code":"too_short"`) {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}
