package formskema

import (
	"fmt"
	"regexp"

	"github.com/expr-lang/expr"

	eng "github.com/reoring/formskema/internal/engine"
	"github.com/reoring/formskema/format"
)

// CompileOpt configures Compile.
type CompileOpt struct {
	// Formats resolves the "format" keyword; nil means format.Default.
	Formats *format.Registry
}

// Compile converts a schema tree into a Validator of the same shape. It fails
// at the first malformed node with a *CompileError; no partially usable
// Validator is ever returned.
func Compile(n *Node, opts ...CompileOpt) (Validator, error) {
	var opt CompileOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Formats == nil {
		opt.Formats = format.Default
	}
	c := &compiler{formats: opt.Formats}
	return c.node(n, "")
}

// MustCompile is like Compile but panics on error. It is meant for schemas
// built into the program.
func MustCompile(n *Node, opts ...CompileOpt) Validator {
	v, err := Compile(n, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

type compiler struct {
	formats *format.Registry
}

func compileErr(path string, err error, msg string, a ...any) *CompileError {
	return &CompileError{Path: path, Message: fmt.Sprintf(msg, a...), Err: err}
}

func (c *compiler) node(n *Node, path string) (Validator, error) {
	if n == nil {
		return nil, compileErr(path, ErrNilSchema, "missing schema node")
	}
	if !n.Type.Valid() {
		return nil, compileErr(path, ErrUnsupportedType, "unsupported type %q", string(n.Type))
	}
	if err := checkKeywords(n, path); err != nil {
		return nil, err
	}
	switch n.Type {
	case KindString:
		return c.stringNode(n, path)
	case KindNumber:
		return numberNode(n, path)
	case KindBoolean:
		return &BoolValidator{nullable: n.Nullable}, nil
	case KindArray:
		return c.arrayNode(n, path)
	default:
		return c.objectNode(n, path)
	}
}

// checkKeywords rejects constraints that belong to another kind, so that a
// typo such as maxLength on an array is not silently ignored.
func checkKeywords(n *Node, path string) error {
	type kw struct {
		name string
		set  bool
		kind Kind
	}
	for _, k := range []kw{
		{"minLength", n.MinLength != nil, KindString},
		{"maxLength", n.MaxLength != nil, KindString},
		{"pattern", n.Pattern != "", KindString},
		{"format", n.Format != "", KindString},
		{"enum", n.Enum != nil, KindString},
		{"minimum", n.Minimum != nil, KindNumber},
		{"maximum", n.Maximum != nil, KindNumber},
		{"items", n.Items != nil, KindArray},
		{"minItems", n.MinItems != nil, KindArray},
		{"maxItems", n.MaxItems != nil, KindArray},
		{"properties", n.Properties != nil, KindObject},
		{"required", n.Required != nil, KindObject},
		{"additionalProperties", n.AdditionalProperties != nil, KindObject},
		{"rules", n.Rules != nil, KindObject},
	} {
		if k.set && k.kind != n.Type {
			return compileErr(path, ErrInvalidKeyword, "%s is not allowed on %s", k.name, n.Type)
		}
	}
	return nil
}

func (c *compiler) stringNode(n *Node, path string) (Validator, error) {
	v := &StringValidator{nullable: n.Nullable, minLen: -1, maxLen: -1}
	if n.Enum != nil {
		if len(n.Enum) == 0 {
			return nil, compileErr(path, ErrEmptyEnum, "enum must list at least one value")
		}
		v.enum = append([]string(nil), n.Enum...)
		v.enumSet = make(map[string]struct{}, len(n.Enum))
		for _, e := range n.Enum {
			v.enumSet[e] = struct{}{}
		}
	}
	var err error
	if v.minLen, v.maxLen, err = intBounds(n.MinLength, n.MaxLength, "minLength", "maxLength", path); err != nil {
		return nil, err
	}
	if n.Pattern != "" {
		re, err := regexp.Compile(n.Pattern)
		if err != nil {
			return nil, compileErr(path, ErrInvalidPattern, "pattern %q: %v", n.Pattern, err)
		}
		v.pattern = re
	}
	if n.Format != "" {
		chk, ok := c.formats.Lookup(n.Format)
		if !ok {
			return nil, compileErr(path, ErrUnknownFormat, "unknown format %q", n.Format)
		}
		v.format, v.check = n.Format, chk
	}
	return v, nil
}

func numberNode(n *Node, path string) (Validator, error) {
	if n.Minimum != nil && n.Maximum != nil && *n.Minimum > *n.Maximum {
		return nil, compileErr(path, ErrContradictoryBounds, "minimum %v is greater than maximum %v", *n.Minimum, *n.Maximum)
	}
	v := &NumberValidator{nullable: n.Nullable}
	if n.Minimum != nil {
		m := *n.Minimum
		v.min = &m
	}
	if n.Maximum != nil {
		m := *n.Maximum
		v.max = &m
	}
	return v, nil
}

func (c *compiler) arrayNode(n *Node, path string) (Validator, error) {
	if n.Items == nil {
		return nil, compileErr(path, ErrMissingItems, "array schema must declare items")
	}
	minItems, maxItems, err := intBounds(n.MinItems, n.MaxItems, "minItems", "maxItems", path)
	if err != nil {
		return nil, err
	}
	items, err := c.node(n.Items, eng.JoinField(path, "items"))
	if err != nil {
		return nil, err
	}
	return &ArrayValidator{nullable: n.Nullable, items: items, minItems: minItems, maxItems: maxItems}, nil
}

func (c *compiler) objectNode(n *Node, path string) (Validator, error) {
	v := &ObjectValidator{nullable: n.Nullable, index: map[string]int{}}
	propsPath := eng.JoinField(path, "properties")
	for _, name := range n.Properties.Keys() {
		child, _ := n.Properties.Get(name)
		cv, err := c.node(child, eng.JoinField(propsPath, name))
		if err != nil {
			return nil, err
		}
		v.index[name] = len(v.fields)
		v.fields = append(v.fields, objectField{name: name, validator: cv})
	}
	seen := map[string]struct{}{}
	for _, name := range n.Required {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		v.required = append(v.required, name)
	}
	if n.AdditionalProperties != nil {
		ap := *n.AdditionalProperties
		v.additional = &ap
	}
	for i, r := range n.Rules {
		cr, err := compileRule(r, eng.JoinIndex(eng.JoinField(path, "rules"), i))
		if err != nil {
			return nil, err
		}
		v.rules = append(v.rules, cr)
	}
	return v, nil
}

// intBounds validates an optional inclusive [min, max] pair; unset bounds are
// returned as -1.
func intBounds(lo, hi *int, loName, hiName, path string) (int, int, error) {
	minV, maxV := -1, -1
	if lo != nil {
		if *lo < 0 {
			return 0, 0, compileErr(path, ErrInvalidBound, "%s must not be negative", loName)
		}
		minV = *lo
	}
	if hi != nil {
		if *hi < 0 {
			return 0, 0, compileErr(path, ErrInvalidBound, "%s must not be negative", hiName)
		}
		maxV = *hi
	}
	if minV >= 0 && maxV >= 0 && minV > maxV {
		return 0, 0, compileErr(path, ErrContradictoryBounds, "%s %d is greater than %s %d", loName, minV, hiName, maxV)
	}
	return minV, maxV, nil
}

func compileRule(r Rule, path string) (compiledRule, error) {
	if r.Expr == "" {
		return compiledRule{}, compileErr(path, ErrInvalidRule, "empty rule expression")
	}
	prg, err := expr.Compile(r.Expr, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return compiledRule{}, compileErr(path, ErrInvalidRule, "rule %q: %v", r.Expr, err)
	}
	return compiledRule{src: r.Expr, message: r.Message, program: prg}, nil
}
