// Package web4app validates Web4App project descriptions: a fixed document
// shape with project, features, tests and authors sections plus optional
// references, platform support, AI usage and crypto integration details.
//
// The shape is an ordinary schema compiled once at init, so it reports the
// same issue codes and paths as any other formskema Validator.
package web4app

import (
	"context"
	"fmt"

	"github.com/reoring/formskema"
	g "github.com/reoring/formskema/dsl"
)

const (
	// MaxText bounds names, versions, URLs and notes.
	MaxText = 255
	// MaxDescription bounds description fields.
	MaxDescription = 4096
)

func text() *g.StringBuilder        { return g.String().Max(MaxText) }
func description() *g.StringBuilder { return g.String().Max(MaxDescription) }

// optional fields accept null like an absent field.
func optText() *g.StringBuilder { return text().Nullable() }

// Node returns the Web4AppData schema. The result is a fresh tree.
func Node() *formskema.Node {
	project := g.Object().
		Field("name", text()).Required().
		Field("version", text()).Required().
		Field("description", description()).Required().
		Field("goals", g.Array(text())).Required()

	named := g.Object().
		Field("name", text()).Required().
		Field("description", description()).Required()

	author := g.Object().
		Field("role", text()).Required().
		Field("name", text()).Required().
		Field("contact", optText()).Optional()

	library := g.Object().
		Field("name", text()).Required().
		Field("url", text()).Required().
		Field("notes", optText()).Optional()

	references := g.Object().
		Field("librariesOrDependencies", g.Array(library).Nullable()).Optional().
		Nullable()

	platform := g.Object().
		Field("platform", text()).Required().
		Field("notes", optText()).Optional()

	aiUsage := g.Object().
		Field("description", description()).Required().
		Field("optionalDetails", optText()).Optional().
		Nullable()

	chain := g.Object().
		Field("chain", text()).Required().
		Field("notes", optText()).Optional()

	action := g.Object().
		Field("name", text()).Required().
		Field("description", description()).Required().
		Field("supportedChains", g.Array(chain).Nullable()).Optional()

	crypto := g.Object().
		Field("description", description()).Required().
		Field("actions", g.Array(action)).Required().
		Nullable()

	return g.Object().
		Field("project", project).Required().
		Field("features", g.Array(named)).Required().
		Field("tests", g.Object().Field("testScenarios", g.Array(named)).Required()).Required().
		Field("authors", g.Array(author)).Required().
		Field("references", references).Optional().
		Field("platformSupport", g.Array(platform).Nullable()).Optional().
		Field("aiUsage", aiUsage).Optional().
		Field("cryptoIntegration", crypto).Optional().
		Node()
}

var validator = formskema.MustCompile(Node())

// Validator returns the compiled Web4AppData validator.
func Validator() formskema.Validator { return validator }

// Validate checks data against the Web4AppData shape.
func Validate(ctx context.Context, data any, opts ...formskema.ValidateOpt) error {
	return formskema.Validate(ctx, validator, data, opts...)
}

// ValidateJSON decodes a JSON document from src and validates it.
func ValidateJSON(ctx context.Context, src formskema.Source, opts ...formskema.ValidateOpt) error {
	return formskema.ValidateJSON(ctx, validator, src, opts...)
}

// Message renders an issue in the form used by Web4App tooling, e.g.
//
//	Field "project.name" is not correct (length exceeds 255)
func Message(it formskema.Issue) string {
	if it.Path == "" {
		return "Root object is not correct"
	}
	var reason string
	switch it.Code {
	case formskema.CodeRequired:
		reason = "missing required field"
	case formskema.CodeInvalidType:
		reason = fmt.Sprintf("should be %s", article(it.Params["expected"]))
	case formskema.CodeTooLong:
		reason = fmt.Sprintf("length exceeds %v", it.Params["max"])
	default:
		reason = it.Message
	}
	return fmt.Sprintf("Field %q is not correct (%s)", it.Path, reason)
}

func article(kind any) string {
	switch kind {
	case "array", "object":
		return fmt.Sprintf("an %v", kind)
	case nil:
		return "a value"
	}
	return fmt.Sprintf("a %v", kind)
}
