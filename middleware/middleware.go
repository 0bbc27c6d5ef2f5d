// Package middleware validates JSON request bodies at HTTP boundaries. The
// net/http adapter lives here; echo and gin adapters are separate modules
// under echo/ and gin/ so the core module does not depend on them.
package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/formskema"
)

// DefaultMaxBytes caps request bodies when ValidateOpt.MaxBytes is zero.
const DefaultMaxBytes = 1 << 20

// ctxKeyValue is a typed context key for the validated body.
type ctxKeyValue struct{}

// ContextWithValue attaches a validated body to the context.
func ContextWithValue(ctx context.Context, v formskema.Value) context.Context {
	return context.WithValue(ctx, ctxKeyValue{}, v)
}

// ValueFromContext retrieves the validated body from context.
func ValueFromContext(ctx context.Context) (formskema.Value, bool) {
	v, ok := ctx.Value(ctxKeyValue{}).(formskema.Value)
	return v, ok
}

// DefaultValidateOpt returns a recommended default for HTTP JSON boundaries.
// - All issues are collected so forms can highlight every field at once
// - Duplicate keys are errors
// - Bodies are capped at DefaultMaxBytes
func DefaultValidateOpt() formskema.ValidateOpt {
	return formskema.ValidateOpt{
		Mode:       formskema.CollectAll,
		MaxBytes:   DefaultMaxBytes,
		Strictness: formskema.Strictness{OnDuplicateKey: formskema.Error},
	}
}

// IssueJSON is the wire form of a formskema.Issue.
type IssueJSON struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
	Rule    string         `json:"rule,omitempty"`
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []formskema.Issue) map[string]any {
	out := make([]IssueJSON, len(issues))
	for i, it := range issues {
		out[i] = IssueJSON{Path: it.Path, Code: it.Code, Message: it.Message, Params: it.Params, Rule: it.Rule}
	}
	return map[string]any{"issues": out}
}

// Check reads one JSON document from body and validates it with v. It returns
// the decoded value and the raw bytes on success. Failures are either Issues
// (the client's fault) or the reader's error.
func Check(ctx context.Context, v formskema.Validator, body io.Reader, opt formskema.ValidateOpt) (formskema.Value, []byte, error) {
	if opt.MaxBytes == 0 {
		opt.MaxBytes = DefaultMaxBytes
	}
	raw, err := io.ReadAll(io.LimitReader(body, opt.MaxBytes+1))
	if err != nil {
		return nil, nil, err
	}
	if int64(len(raw)) > opt.MaxBytes {
		return nil, nil, formskema.Issues{{Code: formskema.CodeTruncated, Message: "request body too large", Params: map[string]any{"max": opt.MaxBytes}}}
	}
	val, err := formskema.DecodeJSON(formskema.JSONBytes(raw), opt)
	if val == nil {
		return nil, nil, err
	}
	warnings, _ := formskema.AsIssues(err)
	err = formskema.ValidateValue(ctx, v, val, opt)
	if iss, ok := formskema.AsIssues(err); ok || len(warnings) > 0 {
		return nil, nil, formskema.AppendIssues(warnings, iss...)
	}
	if err != nil {
		return nil, nil, err
	}
	return val, raw, nil
}

// ValidateJSON validates request bodies with v. On success the decoded value
// is stored in the request context (see ValueFromContext) and the body is
// replaced by a fresh reader over the same bytes, so handlers may decode it
// into their own types. Invalid bodies get 400 with an {"issues": [...]}
// payload. A zero opt means DefaultValidateOpt.
func ValidateJSON(v formskema.Validator, opt formskema.ValidateOpt) func(http.Handler) http.Handler {
	if opt == (formskema.ValidateOpt{}) {
		opt = DefaultValidateOpt()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			val, raw, err := Check(r.Context(), v, r.Body, opt)
			if err != nil {
				if iss, ok := formskema.AsIssues(err); ok {
					WriteJSON(w, http.StatusBadRequest, ErrorPayload(iss))
					return
				}
				WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))
			next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), val)))
		})
	}
}

// WriteJSON encodes body as the response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
