// Command formskema validates JSON documents against formskema schemas.
//
//	formskema validate -schema quiz.json answers/*.json
//	formskema web4app project.json
//	formskema check -print schemas/*.yaml
//
// Exit status is 0 when every document is valid, 1 when at least one is
// invalid, and 2 for usage, I/O or schema errors.
package main

import (
	"fmt"
	"io"
	"os"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitError
	}
	env := &env{stdin: stdin, stdout: stdout, stderr: stderr}
	switch args[0] {
	case "validate":
		return validateCmd(env, args[1:])
	case "web4app":
		return web4appCmd(env, args[1:])
	case "check":
		return checkCmd(env, args[1:])
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "formskema: unknown command %q\n\n", args[0])
		usage(stderr)
		return exitError
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `formskema CLI

Usage:
  formskema validate -schema S [flags] [file ...]
  formskema web4app [flags] [file ...]
  formskema check [-print] schema ...

Files default to standard input ("-" also reads it).
Run "formskema <command> -h" for the flags of a command.`)
}

type env struct {
	stdin          io.Reader
	stdout, stderr io.Writer
}
