package formskema_test

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/reoring/formskema"
)

const quizSchema = `{
  "type": "object",
  "required": ["title", "questions"],
  "properties": {
    "title": {"type": "string", "minLength": 3, "maxLength": 20},
    "description": {"type": "string", "maxLength": 4096},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["text", "options", "answer"],
        "properties": {
          "text": {"type": "string", "minLength": 3, "maxLength": 200},
          "options": {
            "type": "array",
            "minItems": 4,
            "maxItems": 4,
            "items": {"type": "string", "minLength": 1, "maxLength": 50}
          },
          "answer": {"type": "number", "minimum": 0, "maximum": 3},
          "hint": {"type": "string", "nullable": true}
        }
      }
    }
  }
}`

func mustNode(tb testing.TB, src string) *formskema.Node {
	tb.Helper()
	var n formskema.Node
	if err := json.Unmarshal([]byte(src), &n); err != nil {
		tb.Fatalf("decode schema: %v", err)
	}
	return &n
}

func mustCompile(tb testing.TB, src string) formskema.Validator {
	tb.Helper()
	v, err := formskema.Compile(mustNode(tb, src))
	if err != nil {
		tb.Fatalf("compile: %v", err)
	}
	return v
}

// validQuiz returns a fresh document on every call so tests may mutate it.
func validQuiz() map[string]any {
	return map[string]any{
		"title":       "Animal Quiz",
		"description": "Guess the animal.",
		"questions": []any{
			map[string]any{
				"text":    "Which animal barks?",
				"options": []any{"cat", "dog", "cow", "owl"},
				"answer":  1.0,
				"hint":    "It is a pet.",
			},
		},
	}
}

func firstIssue(t *testing.T, err error) formskema.Issue {
	t.Helper()
	iss, ok := formskema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	return iss[0]
}
