package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

const quizSchema = `{"type":"object","required":["title"],"properties":{"title":{"type":"string","minLength":3,"maxLength":20},"tags":{"type":"array","items":{"type":"string"},"maxItems":2}}}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func runCLI(stdin string, args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestValidate_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "quiz.json", quizSchema)
	good := writeFile(t, dir, "good.json", `{"title":"Animal Quiz"}`)
	bad := writeFile(t, dir, "bad.json", `{"title":"ab","tags":["a","b","c"]}`)

	code, out, _ := runCLI("", "validate", "-schema", schema, "-color", "never", good)
	if code != exitOK || !strings.Contains(out, "good.json: ok") {
		t.Fatalf("code=%d out=%q", code, out)
	}

	code, out, _ = runCLI("", "validate", "-schema", schema, "-color", "never", good, bad)
	if code != exitInvalid {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(out, "bad.json: invalid") || !strings.Contains(out, "title: must be at least 3 characters, got 2 (too_short)") {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Contains(out, "tags") {
		t.Fatalf("fail-fast should stop at the first issue: %q", out)
	}

	_, out, _ = runCLI("", "validate", "-schema", schema, "-color", "never", "-all", bad)
	if !strings.Contains(out, "tags: must contain at most 2 items, got 3 (too_long)") {
		t.Fatalf("-all should report every issue: %q", out)
	}
}

func TestValidate_StdinAndJSONOutput(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "quiz.json", quizSchema)

	code, out, _ := runCLI(`{"title":"Quiz","extra":1}`, "validate", "-schema", schema, "-strict", "-json", "-driver", "gojson")
	if code != exitInvalid {
		t.Fatalf("expected exit 1, got %d", code)
	}
	var r result
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &r); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if r.File != "<stdin>" || r.Valid || len(r.Issues) != 1 || r.Issues[0].Code != "unknown_key" || r.Issues[0].Path != "extra" {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestValidate_UsageErrors(t *testing.T) {
	if code, _, _ := runCLI("", "validate"); code != exitError {
		t.Fatalf("missing -schema: exit %d", code)
	}
	dir := t.TempDir()
	schema := writeFile(t, dir, "bad.json", `{"type":"array"}`)
	code, _, errOut := runCLI("", "validate", "-schema", schema)
	if code != exitError || !strings.Contains(errOut, "array schema must declare items") {
		t.Fatalf("code=%d err=%q", code, errOut)
	}
	if code, _, _ := runCLI("", "validate", "-schema", filepath.Join(dir, "missing.json")); code != exitError {
		t.Fatalf("missing schema: exit %d", code)
	}
	if code, _, _ := runCLI("", "nope"); code != exitError {
		t.Fatalf("unknown command: exit %d", code)
	}
	good := writeFile(t, dir, "q.json", quizSchema)
	if code, _, _ := runCLI("", "validate", "-schema", good, "-dup", "maybe"); code != exitError {
		t.Fatalf("bad -dup: exit %d", code)
	}
	if code, _, _ := runCLI("", "validate", "-schema", good, filepath.Join(dir, "nothing.json")); code != exitError {
		t.Fatalf("missing document: exit %d", code)
	}
}

func TestWeb4App(t *testing.T) {
	doc := `{"project":{"version":"1.0.0","description":"d","goals":[]},"features":[],"tests":{"testScenarios":[]},"authors":[]}`
	code, out, _ := runCLI(doc, "web4app", "-color", "never")
	if code != exitInvalid {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(out, `Field "project.name" is not correct (missing required field)`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	yml := writeFile(t, dir, "contact.yaml", "type: object\nproperties:\n  name: {type: string}\n  age: {type: number}\n")
	bad := writeFile(t, dir, "bad.json", `{"type":"string","minLength":4,"maxLength":2}`)

	code, out, _ := runCLI("", "check", "-print", yml)
	if code != exitOK {
		t.Fatalf("exit %d", code)
	}
	if strings.Index(out, `"name"`) > strings.Index(out, `"age"`) {
		t.Fatalf("property order lost: %s", out)
	}

	code, _, errOut := runCLI("", "check", yml, bad)
	if code != exitError || !strings.Contains(errOut, "minLength 4 is greater than maxLength 2") {
		t.Fatalf("code=%d err=%q", code, errOut)
	}
}
