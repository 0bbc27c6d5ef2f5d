package formskema

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	eng "github.com/reoring/formskema/internal/engine"
)

// Validate checks data against v. It returns nil when the data is valid and
// Issues otherwise; with the default FailFast mode the Issues hold exactly
// the first failure in depth-first declaration order. data may be a Value or
// any Go value accepted by ValueOf. Validation never modifies data.
func Validate(ctx context.Context, v Validator, data any, opts ...ValidateOpt) error {
	if v == nil {
		return singleIssue(CodeParseError, "", "nil validator")
	}
	val, err := valueOf(data, lastOpt(opts).maxDepth())
	if err != nil {
		code := CodeParseError
		if errors.Is(err, errCyclicValue) || errors.Is(err, errDeepValue) {
			code = CodeMaxDepth
		}
		return Issues{{Code: code, Message: err.Error(), Cause: err}}
	}
	return ValidateValue(ctx, v, val, opts...)
}

// ValidateValue checks an already decoded Value against v.
func ValidateValue(ctx context.Context, v Validator, val Value, opts ...ValidateOpt) error {
	if v == nil {
		return singleIssue(CodeParseError, "", "nil validator")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	opt := lastOpt(opts)
	w := &walker{ctx: ctx, opt: opt, maxDepth: opt.maxDepth()}
	w.walk(v, val, "", 0)
	if w.err != nil {
		return w.err
	}
	if len(w.issues) > 0 {
		return w.issues
	}
	return nil
}

// IsValid reports whether data satisfies v. Use Validate for the details.
func IsValid(ctx context.Context, v Validator, data any, opts ...ValidateOpt) bool {
	return Validate(ctx, v, data, opts...) == nil
}

// ValidateAgainst compiles n and validates data with it. Compile errors are
// returned unchanged (*CompileError). Callers validating many documents
// should Compile once instead.
func ValidateAgainst(ctx context.Context, data any, n *Node, opts ...ValidateOpt) error {
	v, err := Compile(n)
	if err != nil {
		return err
	}
	return Validate(ctx, v, data, opts...)
}

type walker struct {
	ctx      context.Context
	opt      ValidateOpt
	maxDepth int
	issues   Issues
	stop     bool
	err      error
}

// report records an issue and tells the caller whether to stop.
func (w *walker) report(it Issue) bool {
	w.issues = append(w.issues, it)
	if w.opt.Mode == FailFast {
		w.stop = true
	}
	return w.stop
}

func (w *walker) typeMismatch(path string, want Kind, got Value) {
	w.report(Issue{
		Path:    path,
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("expected %s, got %s", want, got.TypeName()),
		Params:  map[string]any{"expected": string(want), "got": got.TypeName()},
	})
}

// enter guards container nesting; depth counts enclosing containers.
func (w *walker) enter(path string, depth int) bool {
	if err := w.ctx.Err(); err != nil {
		w.err, w.stop = err, true
		return false
	}
	if w.maxDepth > 0 && depth >= w.maxDepth {
		w.issues = append(w.issues, Issue{Path: path, Code: CodeMaxDepth, Message: "max depth exceeded", Params: map[string]any{"max": w.maxDepth}})
		w.stop = true
		return false
	}
	return true
}

func (w *walker) walk(v Validator, val Value, path string, depth int) {
	if w.stop {
		return
	}
	if o, ok := val.(*Object); val == nil || (ok && o == nil) {
		val = Null{}
	}
	if _, isNull := val.(Null); isNull && v.Nullable() {
		return
	}
	switch vv := v.(type) {
	case *StringValidator:
		w.walkString(vv, val, path)
	case *NumberValidator:
		w.walkNumber(vv, val, path)
	case *BoolValidator:
		if _, ok := val.(Bool); !ok {
			w.typeMismatch(path, KindBoolean, val)
		}
	case *ArrayValidator:
		w.walkArray(vv, val, path, depth)
	case *ObjectValidator:
		w.walkObject(vv, val, path, depth)
	default:
		w.err, w.stop = fmt.Errorf("formskema: unknown validator %T", v), true
	}
}

func (w *walker) walkString(v *StringValidator, val Value, path string) {
	sv, ok := val.(String)
	if !ok {
		w.typeMismatch(path, KindString, val)
		return
	}
	s := string(sv)
	if v.enumSet != nil {
		if _, ok := v.enumSet[s]; !ok {
			w.report(Issue{
				Path:    path,
				Code:    CodeInvalidEnum,
				Message: "must be one of [" + strings.Join(v.enum, ", ") + "]",
				Params:  map[string]any{"allowed": v.Enum(), "got": s},
			})
		}
		return
	}
	n := utf8.RuneCountInString(s)
	if v.minLen >= 0 && n < v.minLen {
		if w.report(Issue{Path: path, Code: CodeTooShort, Message: fmt.Sprintf("must be at least %d characters, got %d", v.minLen, n), Params: map[string]any{"min": v.minLen, "got": n}}) {
			return
		}
	}
	if v.maxLen >= 0 && n > v.maxLen {
		if w.report(Issue{Path: path, Code: CodeTooLong, Message: fmt.Sprintf("must be at most %d characters, got %d", v.maxLen, n), Params: map[string]any{"max": v.maxLen, "got": n}}) {
			return
		}
	}
	if v.pattern != nil && !v.pattern.MatchString(s) {
		if w.report(Issue{Path: path, Code: CodePattern, Message: fmt.Sprintf("does not match pattern %s", v.pattern), Params: map[string]any{"pattern": v.pattern.String()}}) {
			return
		}
	}
	if v.check != nil && !v.check(s) {
		w.report(Issue{Path: path, Code: CodeInvalidFormat, Message: fmt.Sprintf("is not a valid %s", v.format), Params: map[string]any{"format": v.format}})
	}
}

func (w *walker) walkNumber(v *NumberValidator, val Value, path string) {
	nv, ok := val.(Number)
	if !ok {
		w.typeMismatch(path, KindNumber, val)
		return
	}
	f := float64(nv)
	if v.min != nil && f < *v.min {
		if w.report(Issue{Path: path, Code: CodeTooSmall, Message: fmt.Sprintf("must be >= %v, got %v", *v.min, f), Params: map[string]any{"min": *v.min, "got": f}}) {
			return
		}
	}
	if v.max != nil && f > *v.max {
		w.report(Issue{Path: path, Code: CodeTooBig, Message: fmt.Sprintf("must be <= %v, got %v", *v.max, f), Params: map[string]any{"max": *v.max, "got": f}})
	}
}

func (w *walker) walkArray(v *ArrayValidator, val Value, path string, depth int) {
	arr, ok := val.(Array)
	if !ok {
		w.typeMismatch(path, KindArray, val)
		return
	}
	if !w.enter(path, depth) {
		return
	}
	n := len(arr)
	exact := v.minItems >= 0 && v.minItems == v.maxItems
	if v.minItems >= 0 && n < v.minItems {
		msg := fmt.Sprintf("must contain at least %d items, got %d", v.minItems, n)
		if exact {
			msg = fmt.Sprintf("must contain exactly %d items, got %d", v.minItems, n)
		}
		if w.report(Issue{Path: path, Code: CodeTooShort, Message: msg, Params: map[string]any{"min": v.minItems, "got": n}}) {
			return
		}
	}
	if v.maxItems >= 0 && n > v.maxItems {
		msg := fmt.Sprintf("must contain at most %d items, got %d", v.maxItems, n)
		if exact {
			msg = fmt.Sprintf("must contain exactly %d items, got %d", v.maxItems, n)
		}
		if w.report(Issue{Path: path, Code: CodeTooLong, Message: msg, Params: map[string]any{"max": v.maxItems, "got": n}}) {
			return
		}
	}
	for i, elem := range arr {
		w.walk(v.items, elem, eng.JoinIndex(path, i), depth+1)
		if w.stop {
			return
		}
	}
}

func (w *walker) walkObject(v *ObjectValidator, val Value, path string, depth int) {
	obj, ok := val.(*Object)
	if !ok {
		w.typeMismatch(path, KindObject, val)
		return
	}
	if !w.enter(path, depth) {
		return
	}
	before := len(w.issues)
	for _, name := range v.required {
		if _, present := obj.Get(name); present {
			continue
		}
		if w.report(Issue{Path: eng.JoinField(path, name), Code: CodeRequired, Message: "required field is missing", Params: map[string]any{"field": name}}) {
			return
		}
	}
	for _, f := range v.fields {
		fv, present := obj.Get(f.name)
		if !present {
			continue
		}
		w.walk(f.validator, fv, eng.JoinField(path, f.name), depth+1)
		if w.stop {
			return
		}
	}
	if w.closed(v) {
		for _, k := range obj.keys {
			if _, declared := v.index[k]; declared {
				continue
			}
			if w.report(Issue{Path: eng.JoinField(path, k), Code: CodeUnknownKey, Message: "field is not allowed", Params: map[string]any{"field": k}}) {
				return
			}
		}
	}
	if len(v.rules) > 0 && len(w.issues) == before {
		w.runRules(v, obj, path)
	}
}

func (w *walker) closed(v *ObjectValidator) bool {
	if v.additional != nil {
		return !*v.additional
	}
	return w.opt.Unknown == UnknownStrict
}
