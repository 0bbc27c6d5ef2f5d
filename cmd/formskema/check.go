package main

import (
	"flag"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/formskema"
	"github.com/reoring/formskema/loader"
)

// checkCmd compiles schemas and reports the first problem of each.
func checkCmd(e *env, args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var printNode bool
	var verbose bool
	fs.BoolVar(&printNode, "print", false, "print the normalized schema as JSON")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(e.stderr, "formskema check: no schema files given")
		return exitError
	}
	log := newLogger(e.stderr, verbose)
	status := exitOK
	for _, path := range fs.Args() {
		n, err := loader.Load(path)
		if err == nil {
			_, err = formskema.Compile(n)
		}
		if err != nil {
			fmt.Fprintf(e.stderr, "%v\n", err)
			status = exitError
			continue
		}
		log.Debug("compiled", "file", path, "type", n.Type, "properties", n.Properties.Len())
		if !printNode {
			fmt.Fprintf(e.stdout, "%s: ok\n", path)
			continue
		}
		b, err := json.MarshalIndent(n, "", "  ")
		if err != nil {
			fmt.Fprintf(e.stderr, "%s: %v\n", path, err)
			status = exitError
			continue
		}
		fmt.Fprintf(e.stdout, "%s\n", b)
	}
	return status
}
