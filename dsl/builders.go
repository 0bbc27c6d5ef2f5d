package dsl

import (
	"github.com/reoring/formskema"
	"github.com/reoring/formskema/format"
)

// Builder is anything that can produce a schema node. Each call to Node
// returns a fresh tree, so builders may be reused.
type Builder interface {
	Node() *formskema.Node
}

// StringBuilder declares a string node.
type StringBuilder struct{ n formskema.Node }

// String starts a string node.
func String() *StringBuilder {
	return &StringBuilder{n: formskema.Node{Type: formskema.KindString}}
}

// Min sets the minimum length in characters.
func (b *StringBuilder) Min(n int) *StringBuilder { b.n.MinLength = &n; return b }

// Max sets the maximum length in characters.
func (b *StringBuilder) Max(n int) *StringBuilder { b.n.MaxLength = &n; return b }

// Len requires exactly n characters.
func (b *StringBuilder) Len(n int) *StringBuilder { return b.Min(n).Max(n) }

func (b *StringBuilder) Pattern(re string) *StringBuilder  { b.n.Pattern = re; return b }
func (b *StringBuilder) Format(name string) *StringBuilder { b.n.Format = name; return b }
func (b *StringBuilder) Email() *StringBuilder             { return b.Format(format.Email) }
func (b *StringBuilder) URL() *StringBuilder               { return b.Format(format.URL) }
func (b *StringBuilder) DateTime() *StringBuilder          { return b.Format(format.DateTime) }

// Enum restricts the value to the given literals. Length, pattern and format
// constraints are not evaluated once an enum is set.
func (b *StringBuilder) Enum(values ...string) *StringBuilder {
	b.n.Enum = append([]string{}, values...)
	return b
}

func (b *StringBuilder) Nullable() *StringBuilder         { b.n.Nullable = true; return b }
func (b *StringBuilder) Title(s string) *StringBuilder    { b.n.Title = s; return b }
func (b *StringBuilder) Describe(s string) *StringBuilder { b.n.Description = s; return b }
func (b *StringBuilder) Node() *formskema.Node            { return cloneLeaf(b.n) }

// NumberBuilder declares a number node.
type NumberBuilder struct{ n formskema.Node }

// Number starts a number node.
func Number() *NumberBuilder {
	return &NumberBuilder{n: formskema.Node{Type: formskema.KindNumber}}
}

func (b *NumberBuilder) Min(f float64) *NumberBuilder     { b.n.Minimum = &f; return b }
func (b *NumberBuilder) Max(f float64) *NumberBuilder     { b.n.Maximum = &f; return b }
func (b *NumberBuilder) Nullable() *NumberBuilder         { b.n.Nullable = true; return b }
func (b *NumberBuilder) Describe(s string) *NumberBuilder { b.n.Description = s; return b }
func (b *NumberBuilder) Node() *formskema.Node            { return cloneLeaf(b.n) }

// BoolBuilder declares a boolean node.
type BoolBuilder struct{ n formskema.Node }

// Bool starts a boolean node.
func Bool() *BoolBuilder {
	return &BoolBuilder{n: formskema.Node{Type: formskema.KindBoolean}}
}

func (b *BoolBuilder) Nullable() *BoolBuilder         { b.n.Nullable = true; return b }
func (b *BoolBuilder) Describe(s string) *BoolBuilder { b.n.Description = s; return b }
func (b *BoolBuilder) Node() *formskema.Node          { return cloneLeaf(b.n) }

// ArrayBuilder declares an array node.
type ArrayBuilder struct {
	n     formskema.Node
	items Builder
}

// Array starts an array whose elements all satisfy items.
func Array(items Builder) *ArrayBuilder {
	return &ArrayBuilder{n: formskema.Node{Type: formskema.KindArray}, items: items}
}

func (b *ArrayBuilder) Min(n int) *ArrayBuilder { b.n.MinItems = &n; return b }
func (b *ArrayBuilder) Max(n int) *ArrayBuilder { b.n.MaxItems = &n; return b }

// Len requires exactly n elements.
func (b *ArrayBuilder) Len(n int) *ArrayBuilder         { return b.Min(n).Max(n) }
func (b *ArrayBuilder) Nullable() *ArrayBuilder         { b.n.Nullable = true; return b }
func (b *ArrayBuilder) Describe(s string) *ArrayBuilder { b.n.Description = s; return b }

func (b *ArrayBuilder) Node() *formskema.Node {
	n := cloneLeaf(b.n)
	if b.items != nil {
		n.Items = b.items.Node()
	}
	return n
}

// cloneLeaf copies n so later builder calls do not leak into returned trees.
func cloneLeaf(n formskema.Node) *formskema.Node {
	out := n
	if n.Enum != nil {
		out.Enum = append([]string{}, n.Enum...)
	}
	out.MinLength = cloneInt(n.MinLength)
	out.MaxLength = cloneInt(n.MaxLength)
	out.MinItems = cloneInt(n.MinItems)
	out.MaxItems = cloneInt(n.MaxItems)
	out.Minimum = cloneFloat(n.Minimum)
	out.Maximum = cloneFloat(n.Maximum)
	return &out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
