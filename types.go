package formskema

// UnknownPolicy controls how object fields absent from the schema are handled.
type UnknownPolicy int

const (
	UnknownPassthrough UnknownPolicy = iota // Ignore undeclared fields (open-world).
	UnknownStrict                           // Reject undeclared fields with unknown_key.
)

// ReportMode selects between stopping at the first failure and collecting
// all of them.
type ReportMode int

const (
	FailFast   ReportMode = iota // Stop at the first failure in traversal order.
	CollectAll                   // Visit the whole document and report every failure.
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DefaultMaxDepth bounds document nesting when ValidateOpt.MaxDepth is zero.
const DefaultMaxDepth = 256

// Strictness configures enforcement applied while decoding JSON input.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn (reported when collecting) or Error.
}

// ValidateOpt bundles validation options. The zero value validates
// open-world, fails fast and limits nesting to DefaultMaxDepth.
type ValidateOpt struct {
	Mode    ReportMode
	Unknown UnknownPolicy
	// MaxDepth limits container nesting; 0 means DefaultMaxDepth and a
	// negative value disables the limit.
	MaxDepth int
	// MaxBytes caps the consumed input for JSON sources (0 = unlimited).
	MaxBytes   int64
	Strictness Strictness
}

func (o ValidateOpt) maxDepth() int {
	switch {
	case o.MaxDepth == 0:
		return DefaultMaxDepth
	case o.MaxDepth < 0:
		return 0
	}
	return o.MaxDepth
}

func lastOpt(opts []ValidateOpt) ValidateOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return ValidateOpt{}
}
