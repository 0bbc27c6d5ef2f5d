package formskema

import (
	"context"
	"errors"

	eng "github.com/reoring/formskema/internal/engine"
)

// ValidateJSON decodes one JSON document from src and validates it against v.
// Decoding applies the enforcement in opt: duplicate keys per
// Strictness.OnDuplicateKey, MaxDepth and MaxBytes. Malformed input yields a
// parse_error issue. Duplicate keys at Warn severity are reported alongside
// validation issues in CollectAll mode; in FailFast mode they stop decoding
// like Error does.
func ValidateJSON(ctx context.Context, v Validator, src Source, opts ...ValidateOpt) error {
	if v == nil {
		return singleIssue(CodeParseError, "", "nil validator")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	opt := lastOpt(opts)
	val, warnings, err := decodeValue(src, opt)
	if err != nil {
		return err
	}
	err = ValidateValue(ctx, v, val, opt)
	if len(warnings) == 0 {
		return err
	}
	iss, ok := AsIssues(err)
	if err != nil && !ok {
		return err
	}
	return AppendIssues(warnings, iss...)
}

// DecodeJSON reads one JSON document from src into a Value, preserving object
// key order. Enforcement failures are returned as Issues.
func DecodeJSON(src Source, opts ...ValidateOpt) (Value, error) {
	val, warnings, err := decodeValue(src, lastOpt(opts))
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		return val, warnings
	}
	return val, nil
}

func decodeValue(src Source, opt ValidateOpt) (Value, Issues, error) {
	if src == nil {
		return nil, nil, singleIssue(CodeParseError, "", "nil source")
	}
	var warnings Issues
	enforced := eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.maxDepth(),
		MaxBytes:    opt.MaxBytes,
		IssueSink: func(si eng.SimpleIssue) {
			warnings = append(warnings, Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		},
		FailFast: opt.Mode == FailFast,
	})
	val, err := eng.Decode[Value](enforced, valueBuilder{})
	if err != nil {
		var ie eng.IssueError
		if errors.As(err, &ie) {
			return nil, nil, Issues{{Path: ie.Path, Code: ie.Code, Message: ie.Message, Cause: err}}
		}
		return nil, nil, Issues{{Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return val, warnings, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}
