package formskema

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	eng "github.com/reoring/formskema/internal/engine"
	jsonsrc "github.com/reoring/formskema/source/json"
)

// Kind names the type of a schema node.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindArray, KindObject:
		return true
	}
	return false
}

// Node is the declarative description of one position in a document. Keyword
// names follow JSON Schema so existing schema files decode unchanged.
type Node struct {
	Type        Kind   `json:"type" yaml:"type"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Nullable accepts an explicit null in place of the value.
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// String
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Format    string   `json:"format,omitempty" yaml:"format,omitempty"`
	Enum      []string `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	// Array
	Items    *Node `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int  `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int  `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// Object
	Properties           *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string    `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *bool       `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Rules                []Rule      `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Rule is a boolean expression evaluated against an object's fields once
// they validated cleanly, e.g. {"expr": "end >= start"}. Absent fields
// evaluate to nil and comparing nil fails the rule, so expressions over
// optional fields must guard them: "b == nil || a < b".
type Rule struct {
	Expr    string `json:"expr" yaml:"expr"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Properties is an insertion-ordered map of property schemas. Declaration
// order drives traversal order and therefore which failure is reported first.
type Properties struct {
	keys  []string
	nodes map[string]*Node
}

// NewProperties returns an empty property set.
func NewProperties() *Properties { return &Properties{nodes: map[string]*Node{}} }

// Set adds or replaces a property. Replacing keeps the original position.
func (p *Properties) Set(name string, n *Node) {
	if p.nodes == nil {
		p.nodes = map[string]*Node{}
	}
	if _, ok := p.nodes[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.nodes[name] = n
}

// Get returns the schema of a property.
func (p *Properties) Get(name string) (*Node, bool) {
	if p == nil {
		return nil, false
	}
	n, ok := p.nodes[name]
	return n, ok
}

// Keys returns property names in declaration order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// UnmarshalJSON decodes the property map and records key order by scanning
// the raw object tokens.
func (p *Properties) UnmarshalJSON(b []byte) error {
	keys, err := eng.ObjectKeys(jsonsrc.NewBytes(b))
	if err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	m := map[string]*Node{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*p = Properties{keys: keys, nodes: m}
	return nil
}

// MarshalJSON emits properties in declaration order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(p.nodes[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a mapping node keeping key order.
func (p *Properties) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("properties: line %d: expected a mapping", value.Line)
	}
	out := NewProperties()
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		n := &Node{}
		if err := v.Decode(n); err != nil {
			return err
		}
		out.Set(k.Value, n)
	}
	*p = *out
	return nil
}
