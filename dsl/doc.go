// Package dsl provides a fluent builder for formskema schema trees.
//
// Builders only assemble *formskema.Node values; all checking happens in
// formskema.Compile, so a schema written with the DSL behaves exactly like the
// same schema loaded from JSON or YAML.
//
//	quiz := dsl.Object().
//		Field("title", dsl.String().Max(255)).Required().
//		Field("sections", dsl.Array(section).Min(1)).Required().
//		MustBuild()
//
// Entry points
//   - String(), Number(), Bool(): primitives with their constraints.
//   - Array(items): arrays with Min/Max/Len cardinality.
//   - Object(): Field(name, b).Required()/Optional(), Closed(), Rule(expr, msg).
//   - Build()/MustBuild() compile; Node() returns the declarative tree.
package dsl
