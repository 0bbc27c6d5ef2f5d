package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/reoring/formskema"
	"github.com/reoring/formskema/loader"
	"github.com/reoring/formskema/source/gojson"
	"github.com/reoring/formskema/web4app"
)

// docFlags are shared by validate and web4app.
type docFlags struct {
	all      bool
	strict   bool
	maxDepth int
	maxBytes int64
	dup      string
	driver   string
	verbose  bool
	color    string
	asJSON   bool
}

func (f *docFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&f.all, "all", false, "report every issue instead of the first one")
	fs.BoolVar(&f.strict, "strict", false, "reject fields the schema does not declare")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "maximum nesting depth (0 = default, negative = unlimited)")
	fs.Int64Var(&f.maxBytes, "max-bytes", 0, "maximum document size in bytes (0 = unlimited)")
	fs.StringVar(&f.dup, "dup", "error", "duplicate object keys: ignore, warn or error")
	fs.StringVar(&f.driver, "driver", "std", "JSON driver: std or gojson")
	fs.BoolVar(&f.verbose, "v", false, "enable verbose logs")
	fs.StringVar(&f.color, "color", "auto", "colorize output: auto, always or never")
	fs.BoolVar(&f.asJSON, "json", false, "print one JSON result per document")
}

func (f *docFlags) options() (formskema.ValidateOpt, error) {
	opt := formskema.ValidateOpt{MaxDepth: f.maxDepth, MaxBytes: f.maxBytes}
	if f.all {
		opt.Mode = formskema.CollectAll
	}
	if f.strict {
		opt.Unknown = formskema.UnknownStrict
	}
	switch f.dup {
	case "ignore":
		opt.Strictness.OnDuplicateKey = formskema.Ignore
	case "warn":
		opt.Strictness.OnDuplicateKey = formskema.Warn
	case "error":
		opt.Strictness.OnDuplicateKey = formskema.Error
	default:
		return opt, fmt.Errorf("invalid -dup %q", f.dup)
	}
	switch f.driver {
	case "std":
		formskema.UseDefaultJSONDriver()
	case "gojson":
		formskema.SetJSONDriver(gojson.Driver())
	default:
		return opt, fmt.Errorf("invalid -driver %q", f.driver)
	}
	switch f.color {
	case "auto", "always", "never":
	default:
		return opt, fmt.Errorf("invalid -color %q", f.color)
	}
	return opt, nil
}

func validateCmd(e *env, args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var schema string
	var df docFlags
	fs.StringVar(&schema, "schema", "", "schema file (.json, .yaml or .yml)")
	df.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if schema == "" {
		fmt.Fprintln(e.stderr, "formskema validate: -schema is required")
		fs.Usage()
		return exitError
	}
	v, err := loader.CompileFile(schema)
	if err != nil {
		fmt.Fprintf(e.stderr, "formskema validate: %v\n", err)
		return exitError
	}
	return validateDocs(e, "validate", v, &df, fs.Args(), nil)
}

func web4appCmd(e *env, args []string) int {
	fs := flag.NewFlagSet("web4app", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var df docFlags
	df.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	return validateDocs(e, "web4app", web4app.Validator(), &df, fs.Args(), web4app.Message)
}

func validateDocs(e *env, cmd string, v formskema.Validator, df *docFlags, files []string, message func(formskema.Issue) string) int {
	opt, err := df.options()
	if err != nil {
		fmt.Fprintf(e.stderr, "formskema %s: %v\n", cmd, err)
		return exitError
	}
	defer formskema.UseDefaultJSONDriver()

	log := newLogger(e.stderr, df.verbose)
	p := newPrinter(e.stdout, df.color, df.asJSON)
	if message != nil {
		p.message = message
	}
	if len(files) == 0 {
		files = []string{"-"}
	}
	log.Debug("validating", "cmd", cmd, "documents", len(files), "driver", formskema.JSONDriverName(), "mode", modeName(opt.Mode))

	ctx := context.Background()
	status := exitOK
	for _, name := range files {
		err := validateDoc(ctx, e, v, name, opt)
		iss, invalid := formskema.AsIssues(err)
		if err != nil && !invalid {
			log.Error("read failed", "file", name, "err", err)
			status = exitError
			continue
		}
		log.Debug("validated", "file", name, "issues", len(iss))
		p.report(displayName(name), iss)
		if invalid && status == exitOK {
			status = exitInvalid
		}
	}
	return status
}

func validateDoc(ctx context.Context, e *env, v formskema.Validator, name string, opt formskema.ValidateOpt) error {
	var r io.Reader = e.stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return formskema.ValidateJSON(ctx, v, formskema.JSONReader(r), opt)
}

func displayName(name string) string {
	if name == "-" {
		return "<stdin>"
	}
	return name
}

func modeName(m formskema.ReportMode) string {
	if m == formskema.CollectAll {
		return "collect"
	}
	return "fail-fast"
}
