package formskema

import (
	"regexp"

	"github.com/expr-lang/expr/vm"

	"github.com/reoring/formskema/format"
)

// Validator is the compiled form of a Node. The concrete types are
// *StringValidator, *NumberValidator, *BoolValidator, *ArrayValidator and
// *ObjectValidator; the set is closed. Validators are immutable and safe for
// concurrent use.
type Validator interface {
	Kind() Kind
	// Nullable reports whether an explicit null is accepted.
	Nullable() bool
	isValidator()
}

// StringValidator checks string values.
type StringValidator struct {
	nullable bool
	minLen   int // -1 when unset
	maxLen   int // -1 when unset
	pattern  *regexp.Regexp
	format   string
	check    format.Checker
	enum     []string
	enumSet  map[string]struct{}
}

// NumberValidator checks numeric values.
type NumberValidator struct {
	nullable bool
	min, max *float64
}

// BoolValidator accepts only JSON booleans.
type BoolValidator struct {
	nullable bool
}

// ArrayValidator checks cardinality and applies one item validator to every
// element.
type ArrayValidator struct {
	nullable bool
	items    Validator
	minItems int // -1 when unset
	maxItems int // -1 when unset
}

// ObjectValidator checks required fields and validates declared properties
// in declaration order.
type ObjectValidator struct {
	nullable bool
	fields   []objectField
	index    map[string]int
	required []string
	// additional mirrors additionalProperties: nil follows ValidateOpt.Unknown.
	additional *bool
	rules      []compiledRule
}

type objectField struct {
	name      string
	validator Validator
}

type compiledRule struct {
	src     string
	message string
	program *vm.Program
}

func (*StringValidator) Kind() Kind { return KindString }
func (*NumberValidator) Kind() Kind { return KindNumber }
func (*BoolValidator) Kind() Kind   { return KindBoolean }
func (*ArrayValidator) Kind() Kind  { return KindArray }
func (*ObjectValidator) Kind() Kind { return KindObject }

func (v *StringValidator) Nullable() bool { return v.nullable }
func (v *NumberValidator) Nullable() bool { return v.nullable }
func (v *BoolValidator) Nullable() bool   { return v.nullable }
func (v *ArrayValidator) Nullable() bool  { return v.nullable }
func (v *ObjectValidator) Nullable() bool { return v.nullable }

func (*StringValidator) isValidator() {}
func (*NumberValidator) isValidator() {}
func (*BoolValidator) isValidator()   {}
func (*ArrayValidator) isValidator()  {}
func (*ObjectValidator) isValidator() {}

// Enum returns the allowed literals, or nil when no enum is set.
func (v *StringValidator) Enum() []string { return append([]string(nil), v.enum...) }

// Format returns the format name, or "" when none is set.
func (v *StringValidator) Format() string { return v.format }

// Items returns the validator applied to every element.
func (v *ArrayValidator) Items() Validator { return v.items }

// Fields returns property names in declaration order.
func (v *ObjectValidator) Fields() []string {
	out := make([]string, len(v.fields))
	for i, f := range v.fields {
		out[i] = f.name
	}
	return out
}

// Field returns the validator of a declared property.
func (v *ObjectValidator) Field(name string) (Validator, bool) {
	i, ok := v.index[name]
	if !ok {
		return nil, false
	}
	return v.fields[i].validator, true
}

// Required returns the required field names in declaration order.
func (v *ObjectValidator) Required() []string { return append([]string(nil), v.required...) }
