package ginmw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/reoring/formskema"
	g "github.com/reoring/formskema/dsl"
	ginmw "github.com/reoring/formskema/middleware/gin"
)

func TestValidateJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := g.Object().Field("title", g.String().Min(3)).Required().MustBuild()
	r := gin.New()
	r.POST("/quizzes", ginmw.ValidateJSON(v, formskema.ValidateOpt{}), func(c *gin.Context) {
		val, ok := ginmw.GetValue(c)
		if !ok {
			t.Errorf("value missing from context")
		}
		title, _ := val.(*formskema.Object).Get("title")
		c.String(http.StatusCreated, string(title.(formskema.String)))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(`{"title":"Animal Quiz"}`)))
	if rec.Code != http.StatusCreated || rec.Body.String() != "Animal Quiz" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(`{"title":"ab"}`)))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"code":"too_short"`) {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}
