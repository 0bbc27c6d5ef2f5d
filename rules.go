package formskema

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// runRules evaluates object-level rules. The environment is the object's
// fields as plain Go values; undeclared names evaluate to nil.
func (w *walker) runRules(v *ObjectValidator, obj *Object, path string) {
	env, _ := obj.Interface().(map[string]any)
	for _, r := range v.rules {
		out, err := expr.Run(r.program, env)
		if err != nil {
			if w.report(Issue{
				Path:    path,
				Code:    CodeBusinessRule,
				Message: fmt.Sprintf("rule %q failed: %v", r.src, err),
				Cause:   err,
				Rule:    r.src,
			}) {
				return
			}
			continue
		}
		if ok, _ := out.(bool); ok {
			continue
		}
		msg := r.message
		if msg == "" {
			msg = fmt.Sprintf("rule %q is not satisfied", r.src)
		}
		if w.report(Issue{Path: path, Code: CodeBusinessRule, Message: msg, Rule: r.src}) {
			return
		}
	}
}
