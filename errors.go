package formskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	CodeMaxDepth      = "max_depth"
	CodeTruncated     = "truncated"
	CodeBusinessRule  = "business_rule"
)

// Issue represents a single validation failure.
type Issue struct {
	// Path locates the offending value, e.g. sections[0].questions[2].text.
	// The document root is the empty string.
	Path    string
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured details such as {"min": 3, "got": 2} or
	// {"allowed": [...]} for callers that render their own messages.
	Params map[string]any
	Cause  error  // Optional: underlying error.
	Rule   string // Optional: the rule expression that produced this issue.
}

func (it Issue) String() string {
	return fmt.Sprintf("%s: %s (%s)", displayPath(it.Path), it.Message, it.Code)
}

func displayPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. too_short at name
		fmt.Fprintf(b, "%s at %s", it.Code, displayPath(it.Path))
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// First returns the first issue and whether there was one.
func (iss Issues) First() (Issue, bool) {
	if len(iss) == 0 {
		return Issue{}, false
	}
	return iss[0], true
}

// Has reports whether any issue sits at path.
func (iss Issues) Has(path string) bool {
	for _, it := range iss {
		if it.Path == path {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func singleIssue(code, path, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: path, Message: msg})
}

// Compilation errors. A *CompileError wraps exactly one of these.
var (
	ErrNilSchema           = errors.New("nil schema")
	ErrUnsupportedType     = errors.New("unsupported schema type")
	ErrMissingItems        = errors.New("array schema without items")
	ErrEmptyEnum           = errors.New("empty enum")
	ErrContradictoryBounds = errors.New("contradictory bounds")
	ErrInvalidBound        = errors.New("invalid bound")
	ErrInvalidPattern      = errors.New("invalid pattern")
	ErrUnknownFormat       = errors.New("unknown format")
	ErrInvalidKeyword      = errors.New("keyword not applicable to type")
	ErrInvalidRule         = errors.New("invalid rule")
)

// CompileError reports a malformed schema. Path is the location of the
// offending node inside the schema document, e.g. properties.questions.items.
type CompileError struct {
	Path    string
	Message string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("formskema: compile %s: %s", displayPath(e.Path), e.Message)
}

func (e *CompileError) Unwrap() error { return e.Err }
