package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-isatty"

	"github.com/reoring/formskema"
	"github.com/reoring/formskema/middleware"
)

// printer renders per-document results either as colored text or as one
// JSON object per line.
type printer struct {
	w       io.Writer
	asJSON  bool
	message func(formskema.Issue) string
	ok      func(string, ...any) string
	bad     func(string, ...any) string
	path    func(string, ...any) string
}

// colorMode is "auto", "always" or "never".
func newPrinter(w io.Writer, colorMode string, asJSON bool) *printer {
	enabled := colorMode == "always"
	if colorMode == "auto" {
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			enabled = true
		}
	}
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}
	return &printer{
		w:       w,
		asJSON:  asJSON,
		message: formskema.Issue.String,
		ok:      mk(color.FgGreen),
		bad:     mk(color.FgRed, color.Bold),
		path:    mk(color.FgYellow),
	}
}

type result struct {
	File   string                 `json:"file"`
	Valid  bool                   `json:"valid"`
	Issues []middleware.IssueJSON `json:"issues,omitempty"`
}

func (p *printer) report(file string, iss formskema.Issues) {
	if p.asJSON {
		r := result{File: file, Valid: len(iss) == 0}
		if len(iss) > 0 {
			r.Issues = middleware.ErrorPayload(iss)["issues"].([]middleware.IssueJSON)
		}
		b, err := json.Marshal(r)
		if err != nil {
			fmt.Fprintf(p.w, "%s: %v\n", file, err)
			return
		}
		fmt.Fprintf(p.w, "%s\n", b)
		return
	}
	if len(iss) == 0 {
		fmt.Fprintf(p.w, "%s: %s\n", file, p.ok("ok"))
		return
	}
	fmt.Fprintf(p.w, "%s: %s\n", file, p.bad("invalid"))
	for _, it := range iss {
		fmt.Fprintf(p.w, "  %s\n", p.message(it))
	}
}
