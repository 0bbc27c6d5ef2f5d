package formskema_test

import (
	"context"
	"testing"

	"github.com/reoring/formskema"
)

const eventSchema = `{
  "type": "object",
  "required": ["title", "start", "end"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "start": {"type": "number"},
    "end": {"type": "number"},
    "capacity": {"type": "number", "minimum": 1},
    "attendees": {"type": "array", "items": {"type": "string"}}
  },
  "rules": [
    {"expr": "end >= start", "message": "event must not end before it starts"},
    {"expr": "capacity == nil || len(attendees ?? []) <= capacity"}
  ]
}`

func TestRules(t *testing.T) {
	ctx := context.Background()
	v := mustCompile(t, eventSchema)

	ok := map[string]any{"title": "Launch", "start": 10, "end": 12, "capacity": 2, "attendees": []any{"a", "b"}}
	if err := formskema.Validate(ctx, v, ok); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	it := firstIssue(t, formskema.Validate(ctx, v, map[string]any{"title": "Launch", "start": 12, "end": 10}))
	if it.Code != formskema.CodeBusinessRule || it.Path != "" || it.Rule != "end >= start" {
		t.Fatalf("unexpected issue: %v", it)
	}
	if it.Message != "event must not end before it starts" {
		t.Fatalf("custom message lost: %q", it.Message)
	}

	it = firstIssue(t, formskema.Validate(ctx, v, map[string]any{"title": "Launch", "start": 1, "end": 2, "capacity": 1, "attendees": []any{"a", "b"}}))
	if it.Code != formskema.CodeBusinessRule || it.Message == "" {
		t.Fatalf("unexpected issue: %v", it)
	}
}

func TestRules_SkippedWhenFieldsInvalid(t *testing.T) {
	v := mustCompile(t, eventSchema)
	doc := map[string]any{"title": "", "start": 12, "end": 10}
	iss, _ := formskema.AsIssues(formskema.Validate(context.Background(), v, doc, formskema.ValidateOpt{Mode: formskema.CollectAll}))
	if len(iss) != 1 || iss[0].Code != formskema.CodeTooShort {
		t.Fatalf("rules must not run on an invalid object: %v", iss)
	}
}

func TestRules_RuntimeErrorIsAnIssue(t *testing.T) {
	v := mustCompile(t, `{"type":"object","properties":{"name":{"type":"string"}},"rules":[{"expr":"name > 3"}]}`)
	it := firstIssue(t, formskema.Validate(context.Background(), v, map[string]any{"name": "abc"}))
	if it.Code != formskema.CodeBusinessRule || it.Cause == nil {
		t.Fatalf("expected business_rule with cause, got %v", it)
	}
}

func TestRules_OptionalFieldsNeedGuard(t *testing.T) {
	ctx := context.Background()
	doc := map[string]any{"low": 1}
	props := `"properties":{"low":{"type":"number"},"high":{"type":"number"}}`

	bare := mustCompile(t, `{"type":"object",`+props+`,"rules":[{"expr":"low < high"}]}`)
	if it := firstIssue(t, formskema.Validate(ctx, bare, doc)); it.Code != formskema.CodeBusinessRule {
		t.Fatalf("unguarded rule over a missing field: %v", it)
	}

	guarded := mustCompile(t, `{"type":"object",`+props+`,"rules":[{"expr":"high == nil || low < high"}]}`)
	if err := formskema.Validate(ctx, guarded, doc); err != nil {
		t.Fatalf("guarded rule must pass without the optional field: %v", err)
	}
	it := firstIssue(t, formskema.Validate(ctx, guarded, map[string]any{"low": 3, "high": 2}))
	if it.Code != formskema.CodeBusinessRule {
		t.Fatalf("unexpected issue: %v", it)
	}
}
