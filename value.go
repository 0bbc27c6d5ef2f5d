package formskema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"

	eng "github.com/reoring/formskema/internal/engine"
	jsonsrc "github.com/reoring/formskema/source/json"
)

// Value is a parsed document of unknown shape. The concrete types are
// String, Number, Bool, Null, Array and *Object; the set is closed.
type Value interface {
	// TypeName returns the JSON name of the value's type.
	TypeName() string
	// Interface converts the value back into plain Go values
	// (string, float64, bool, nil, []any, map[string]any).
	Interface() any
	isValue()
}

type (
	String string
	Number float64
	Bool   bool
	Null   struct{}
	Array  []Value
)

// Object is a JSON object that remembers the order of its fields.
type Object struct {
	keys   []string
	fields map[string]Value
}

func (String) TypeName() string  { return "string" }
func (Number) TypeName() string  { return "number" }
func (Bool) TypeName() string    { return "boolean" }
func (Null) TypeName() string    { return "null" }
func (Array) TypeName() string   { return "array" }
func (*Object) TypeName() string { return "object" }

func (String) isValue()  {}
func (Number) isValue()  {}
func (Bool) isValue()    {}
func (Null) isValue()    {}
func (Array) isValue()   {}
func (*Object) isValue() {}

func (s String) Interface() any { return string(s) }
func (n Number) Interface() any { return float64(n) }
func (b Bool) Interface() any   { return bool(b) }
func (Null) Interface() any     { return nil }

func (a Array) Interface() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = v.Interface()
	}
	return out
}

func (o *Object) Interface() any {
	if o == nil {
		return nil
	}
	out := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		out[k] = o.fields[k].Interface()
	}
	return out
}

// NewObject returns an empty object.
func NewObject() *Object { return &Object{fields: map[string]Value{}} }

// Set adds or replaces a field. Replacing keeps the original position.
func (o *Object) Set(key string, v Value) {
	if o.fields == nil {
		o.fields = map[string]Value{}
	}
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Get returns a field by name.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Keys returns field names in input order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of fields.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

var (
	errCyclicValue = errors.New("cyclic value")
	errDeepValue   = errors.New("max depth exceeded")
)

// ValueOf converts a Go value into a Value. It accepts the shapes produced by
// encoding/json (map[string]any, []any, float64, json.Number, string, bool,
// nil), Value itself, and via reflection other maps keyed by strings,
// slices, arrays, integers, floats, structs (through their JSON encoding)
// and pointers to them. Map keys are visited in sorted order because Go maps
// carry no order. A nil *Object converts to Null. Cyclic input, including
// structs that reach themselves through exported fields, fails. Nesting is
// limited to DefaultMaxDepth.
func ValueOf(v any) (Value, error) {
	return valueOf(v, DefaultMaxDepth)
}

// valueOf converts v with the given nesting limit; 0 means no limit.
func valueOf(v any, maxDepth int) (Value, error) {
	c := converter{maxDepth: maxDepth, seen: map[uintptr]struct{}{}}
	return c.convert(reflect.ValueOf(v), 0)
}

type converter struct {
	maxDepth int
	seen     map[uintptr]struct{}
}

func (c *converter) convert(rv reflect.Value, depth int) (Value, error) {
	if c.maxDepth > 0 && depth > c.maxDepth {
		return nil, errDeepValue
	}
	if !rv.IsValid() {
		return Null{}, nil
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null{}, nil
		}
		return c.convert(rv.Elem(), depth)
	}
	if rv.CanInterface() {
		switch t := rv.Interface().(type) {
		case *Object:
			if t == nil {
				return Null{}, nil
			}
			return t, nil
		case Value:
			return t, nil
		case json.Number:
			f, err := strconv.ParseFloat(string(t), 64)
			if err != nil {
				return nil, fmt.Errorf("number %q: %w", string(t), err)
			}
			return Number(f), nil
		}
	}
	switch rv.Kind() {
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("number %v is not representable in JSON", f)
		}
		return Number(f), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return Null{}, nil
		}
		if err := c.enter(rv.Pointer()); err != nil {
			return nil, err
		}
		defer c.leave(rv.Pointer())
		return c.convert(rv.Elem(), depth)
	case reflect.Slice:
		if rv.IsNil() {
			return Null{}, nil
		}
		if rv.Len() > 0 {
			if err := c.enter(rv.Pointer()); err != nil {
				return nil, err
			}
			defer c.leave(rv.Pointer())
		}
		return c.convertList(rv, depth)
	case reflect.Array:
		return c.convertList(rv, depth)
	case reflect.Struct:
		// Structs go through their JSON encoding so that json tags apply.
		if structCycle(rv, map[ptrKey]struct{}{}) {
			return nil, errCyclicValue
		}
		b, err := gojson.Marshal(rv.Interface())
		if err != nil {
			return nil, err
		}
		return eng.Decode[Value](jsonsrc.NewBytes(b), valueBuilder{})
	case reflect.Map:
		if rv.IsNil() {
			return Null{}, nil
		}
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		if err := c.enter(rv.Pointer()); err != nil {
			return nil, err
		}
		defer c.leave(rv.Pointer())
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		o := NewObject()
		for _, k := range keys {
			ev, err := c.convert(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())), depth+1)
			if err != nil {
				return nil, err
			}
			o.Set(k, ev)
		}
		return o, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", rv.Type())
}

func (c *converter) convertList(rv reflect.Value, depth int) (Value, error) {
	out := make(Array, rv.Len())
	for i := range out {
		ev, err := c.convert(rv.Index(i), depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return out, nil
}

func (c *converter) enter(p uintptr) error {
	if _, ok := c.seen[p]; ok {
		return errCyclicValue
	}
	c.seen[p] = struct{}{}
	return nil
}

func (c *converter) leave(p uintptr) { delete(c.seen, p) }

type ptrKey struct {
	p uintptr
	t reflect.Type
}

// structCycle reports whether rv reaches a pointer, map or slice already on
// the current path. Only fields the JSON encoding visits are followed.
func structCycle(rv reflect.Value, path map[ptrKey]struct{}) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if rv.IsNil() || (rv.Kind() == reflect.Slice && rv.Len() == 0) {
			return false
		}
		k := ptrKey{rv.Pointer(), rv.Type()}
		if _, ok := path[k]; ok {
			return true
		}
		path[k] = struct{}{}
		defer delete(path, k)
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return structCycle(rv.Elem(), path)
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || f.Tag.Get("json") == "-" {
				continue
			}
			if structCycle(rv.Field(i), path) {
				return true
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if structCycle(rv.Index(i), path) {
				return true
			}
		}
	case reflect.Map:
		it := rv.MapRange()
		for it.Next() {
			if structCycle(it.Value(), path) {
				return true
			}
		}
	}
	return false
}

// valueBuilder assembles Values from JSON tokens, keeping object key order.
type valueBuilder struct{}

func (valueBuilder) String(s string) Value { return String(s) }
func (valueBuilder) Bool(b bool) Value     { return Bool(b) }
func (valueBuilder) Null() Value           { return Null{} }
func (valueBuilder) Array(items []Value) Value {
	return Array(items)
}

func (valueBuilder) Number(text string) (Value, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("number %q: %w", text, err)
	}
	return Number(f), nil
}

func (valueBuilder) Object(keys []string, vals []Value) Value {
	o := NewObject()
	for i, k := range keys {
		o.Set(k, vals[i])
	}
	return o
}
