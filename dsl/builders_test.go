package dsl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/formskema"
	g "github.com/reoring/formskema/dsl"
)

func TestObject_FieldOrderAndRequired(t *testing.T) {
	n := g.Object().
		Field("b", g.String()).Required().
		Field("a", g.Number()).Optional().
		Field("c", g.Bool()).Required().
		Node()

	if diff := cmp.Diff([]string{"b", "a", "c"}, n.Properties.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "c"}, n.Required); diff != "" {
		t.Fatalf("required (-want +got):\n%s", diff)
	}
}

func TestFieldStep_OptionalUndoesRequired(t *testing.T) {
	b := g.Object()
	b.Field("x", g.String()).Required()
	b.Field("x", g.String()).Optional()
	if n := b.Node(); len(n.Required) != 0 {
		t.Fatalf("expected no required fields, got %v", n.Required)
	}
}

func TestBuilders_NodeIsACopy(t *testing.T) {
	s := g.String().Max(10)
	first := s.Node()
	s.Max(20)
	if *first.MaxLength != 10 {
		t.Fatalf("earlier node changed: maxLength=%d", *first.MaxLength)
	}
}

func TestArray_Len(t *testing.T) {
	v := g.Object().Field("xs", g.Array(g.String()).Len(2)).Required().MustBuild()
	err := formskema.Validate(context.Background(), v, map[string]any{"xs": []any{"a"}})
	iss, ok := formskema.AsIssues(err)
	if !ok || iss[0].Code != formskema.CodeTooShort || iss[0].Path != "xs" {
		t.Fatalf("unexpected result: %v", err)
	}
}

func TestObject_ClosedOverridesOptions(t *testing.T) {
	ctx := context.Background()
	closed := g.Object().Field("a", g.String()).Closed().MustBuild()
	open := g.Object().Field("a", g.String()).Open().MustBuild()
	data := map[string]any{"a": "x", "extra": 1}

	if err := formskema.Validate(ctx, closed, data); err == nil {
		t.Fatalf("closed object accepted unknown field")
	}
	if err := formskema.Validate(ctx, open, data, formskema.ValidateOpt{Unknown: formskema.UnknownStrict}); err != nil {
		t.Fatalf("open object rejected unknown field: %v", err)
	}
}

func TestBuild_ReportsCompileErrors(t *testing.T) {
	_, err := g.Object().Field("n", g.Number().Min(5).Max(1)).Build()
	if !errors.Is(err, formskema.ErrContradictoryBounds) {
		t.Fatalf("expected ErrContradictoryBounds, got %v", err)
	}
	var ce *formskema.CompileError
	if !errors.As(err, &ce) || ce.Path != "properties.n" {
		t.Fatalf("expected compile error at properties.n, got %v", err)
	}
}

func TestStringHelpers(t *testing.T) {
	n := g.String().Email().Nullable().Node()
	if n.Format != "email" || !n.Nullable {
		t.Fatalf("unexpected node: %+v", n)
	}
	e := g.String().Enum("a", "b").Node()
	if diff := cmp.Diff([]string{"a", "b"}, e.Enum); diff != "" {
		t.Fatalf("enum (-want +got):\n%s", diff)
	}
}

func TestObject_Rule(t *testing.T) {
	v := g.Object().
		Field("low", g.Number()).Required().
		Field("high", g.Number()).Required().
		Rule("low <= high", "low must not exceed high").
		MustBuild()
	err := formskema.Validate(context.Background(), v, map[string]any{"low": 3, "high": 1})
	iss, ok := formskema.AsIssues(err)
	if !ok || iss[0].Code != formskema.CodeBusinessRule || iss[0].Message != "low must not exceed high" {
		t.Fatalf("unexpected result: %v", err)
	}
}
