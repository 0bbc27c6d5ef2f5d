package web4app_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/reoring/formskema"
	"github.com/reoring/formskema/web4app"
)

func minimal() map[string]any {
	return map[string]any{
		"project": map[string]any{
			"name":        "Test",
			"version":     "1.0.0",
			"description": "Short desc",
			"goals":       []any{"Goal1"},
		},
		"features": []any{},
		"tests":    map[string]any{"testScenarios": []any{}},
		"authors":  []any{},
	}
}

func issue(t *testing.T, err error) formskema.Issue {
	t.Helper()
	iss, ok := formskema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	return iss[0]
}

func TestValidateJSON_ValidDocument(t *testing.T) {
	b, err := os.ReadFile("testdata/valid.json")
	if err != nil {
		t.Fatal(err)
	}
	if err := web4app.ValidateJSON(context.Background(), formskema.JSONBytes(b)); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestValidate_Minimal(t *testing.T) {
	if err := web4app.Validate(context.Background(), minimal()); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]any)
		path   string
		code   string
	}{
		{
			name:   "missing project name",
			mutate: func(d map[string]any) { delete(d["project"].(map[string]any), "name") },
			path:   "project.name",
			code:   formskema.CodeRequired,
		},
		{
			name:   "description too long",
			mutate: func(d map[string]any) { d["project"].(map[string]any)["description"] = strings.Repeat("a", 5000) },
			path:   "project.description",
			code:   formskema.CodeTooLong,
		},
		{
			name:   "goal too long",
			mutate: func(d map[string]any) { d["project"].(map[string]any)["goals"] = []any{"ok", strings.Repeat("g", 256)} },
			path:   "project.goals[1]",
			code:   formskema.CodeTooLong,
		},
		{
			name: "library without name",
			mutate: func(d map[string]any) {
				d["references"] = map[string]any{
					"librariesOrDependencies": []any{map[string]any{"notes": "We forgot name and url"}},
				}
			},
			path: "references.librariesOrDependencies[0].name",
			code: formskema.CodeRequired,
		},
		{
			name:   "crypto integration without actions",
			mutate: func(d map[string]any) { d["cryptoIntegration"] = map[string]any{"description": "no actions"} },
			path:   "cryptoIntegration.actions",
			code:   formskema.CodeRequired,
		},
		{
			name:   "features not an array",
			mutate: func(d map[string]any) { d["features"] = map[string]any{} },
			path:   "features",
			code:   formskema.CodeInvalidType,
		},
		{
			name:   "required null",
			mutate: func(d map[string]any) { d["tests"] = nil },
			path:   "tests",
			code:   formskema.CodeInvalidType,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := minimal()
			tc.mutate(doc)
			it := issue(t, web4app.Validate(context.Background(), doc))
			if it.Path != tc.path || it.Code != tc.code {
				t.Fatalf("got %s at %q, want %s at %q", it.Code, it.Path, tc.code, tc.path)
			}
		})
	}
}

func TestValidate_OptionalNullsAreAbsent(t *testing.T) {
	doc := minimal()
	doc["references"] = nil
	doc["platformSupport"] = nil
	doc["aiUsage"] = nil
	doc["cryptoIntegration"] = nil
	doc["authors"] = []any{map[string]any{"role": "Contributor", "name": "John", "contact": nil}}
	if err := web4app.Validate(context.Background(), doc); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestValidate_RootNotAnObject(t *testing.T) {
	it := issue(t, web4app.Validate(context.Background(), []any{}))
	if got := web4app.Message(it); got != "Root object is not correct" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestMessage(t *testing.T) {
	doc := minimal()
	doc["project"].(map[string]any)["name"] = strings.Repeat("n", 300)
	it := issue(t, web4app.Validate(context.Background(), doc))
	want := `Field "project.name" is not correct (length exceeds 255)`
	if got := web4app.Message(it); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	doc = minimal()
	doc["authors"] = "nobody"
	it = issue(t, web4app.Validate(context.Background(), doc))
	want = `Field "authors" is not correct (should be an array)`
	if got := web4app.Message(it); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNode_IsFresh(t *testing.T) {
	a, b := web4app.Node(), web4app.Node()
	if a == b || a.Properties == b.Properties {
		t.Fatalf("Node must return independent trees")
	}
	if diff := len(a.Properties.Keys()); diff != 8 {
		t.Fatalf("expected 8 top-level properties, got %d", diff)
	}
}
