package dsl

import (
	"github.com/reoring/formskema"
)

// ObjectBuilder declares an object node. Fields keep the order in which they
// were added; that order drives validation order.
type ObjectBuilder struct {
	fields   []field
	required []string
	closed   *bool
	nullable bool
	desc     string
	rules    []formskema.Rule
}

type field struct {
	name string
	b    Builder
}

// FieldStep is returned by Field so the field can be marked required.
type FieldStep struct {
	b    *ObjectBuilder
	name string
}

// Object starts an object node. Undeclared fields follow the validation
// options unless Closed or Open is called.
func Object() *ObjectBuilder { return &ObjectBuilder{} }

// Field declares a property. Declaring the same name twice replaces the
// schema but keeps the first position.
func (b *ObjectBuilder) Field(name string, fb Builder) *FieldStep {
	for i := range b.fields {
		if b.fields[i].name == name {
			b.fields[i].b = fb
			return &FieldStep{b: b, name: name}
		}
	}
	b.fields = append(b.fields, field{name: name, b: fb})
	return &FieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *FieldStep) Required() *ObjectBuilder { return f.b.Require(f.name) }

// Optional marks the field as optional (default) and returns the builder.
func (f *FieldStep) Optional() *ObjectBuilder {
	out := f.b.required[:0]
	for _, n := range f.b.required {
		if n != f.name {
			out = append(out, n)
		}
	}
	f.b.required = out
	return f.b
}

func (f *FieldStep) Field(name string, fb Builder) *FieldStep { return f.b.Field(name, fb) }
func (f *FieldStep) Node() *formskema.Node                    { return f.b.Node() }
func (f *FieldStep) Build() (formskema.Validator, error)      { return f.b.Build() }
func (f *FieldStep) MustBuild() formskema.Validator           { return f.b.MustBuild() }

// Require marks one or more fields as required, in the given order.
func (b *ObjectBuilder) Require(names ...string) *ObjectBuilder {
next:
	for _, n := range names {
		for _, have := range b.required {
			if have == n {
				continue next
			}
		}
		b.required = append(b.required, n)
	}
	return b
}

// Closed rejects fields that are not declared, regardless of options.
func (b *ObjectBuilder) Closed() *ObjectBuilder {
	f := false
	b.closed = &f
	return b
}

// Open accepts undeclared fields, regardless of options.
func (b *ObjectBuilder) Open() *ObjectBuilder {
	t := true
	b.closed = &t
	return b
}

// Rule adds a boolean expression over the object's fields, checked after the
// fields themselves validated. An empty message uses a generated one.
func (b *ObjectBuilder) Rule(expr, message string) *ObjectBuilder {
	b.rules = append(b.rules, formskema.Rule{Expr: expr, Message: message})
	return b
}

func (b *ObjectBuilder) Nullable() *ObjectBuilder         { b.nullable = true; return b }
func (b *ObjectBuilder) Describe(s string) *ObjectBuilder { b.desc = s; return b }

// Node returns the declarative tree.
func (b *ObjectBuilder) Node() *formskema.Node {
	n := &formskema.Node{
		Type:        formskema.KindObject,
		Nullable:    b.nullable,
		Description: b.desc,
		Properties:  formskema.NewProperties(),
	}
	for _, f := range b.fields {
		n.Properties.Set(f.name, f.b.Node())
	}
	if len(b.required) > 0 {
		n.Required = append([]string{}, b.required...)
	}
	if b.closed != nil {
		v := *b.closed
		n.AdditionalProperties = &v
	}
	if len(b.rules) > 0 {
		n.Rules = append([]formskema.Rule{}, b.rules...)
	}
	return n
}

// Build compiles the object into a Validator.
func (b *ObjectBuilder) Build() (formskema.Validator, error) { return formskema.Compile(b.Node()) }

// MustBuild is like Build but panics on a malformed schema.
func (b *ObjectBuilder) MustBuild() formskema.Validator { return formskema.MustCompile(b.Node()) }
