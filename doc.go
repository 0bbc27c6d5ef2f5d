// Package formskema validates untrusted JSON-like documents against
// declarative schemas.
//
// A schema is described by a tree of Node values (usually loaded from a JSON
// or YAML file, see the loader package, or built with the dsl package).
// Compile turns the tree into an immutable Validator which can be reused
// across goroutines:
//
//	v, err := formskema.Compile(node)
//	if err != nil {
//		// *formskema.CompileError
//	}
//	err = formskema.Validate(ctx, v, data)
//	if iss, ok := formskema.AsIssues(err); ok {
//		// iss[0].Path == "questions[1].options"
//	}
//
// Validation stops at the first failure unless ValidateOpt.Mode is
// CollectAll. Fields not declared in an object schema are ignored unless
// the object is closed (additionalProperties: false) or UnknownStrict is
// requested.
//
// Design policy:
// - Keep the public API in the root package; put token handling under internal/.
// - Formats live under format/, loaders under loader/, the CLI under cmd/formskema.
// - Prefer black-box testing against public APIs.
package formskema
