// Package loader reads schema documents from JSON or YAML and compiles them.
// It is the only part of formskema that touches the filesystem.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/formskema"
)

// Format selects the schema syntax.
type Format int

const (
	// FormatAuto sniffs the content: a leading '{' means JSON, anything else
	// is treated as YAML.
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "auto"
}

// ErrEmptySchema is returned for documents without content.
var ErrEmptySchema = errors.New("loader: empty schema document")

// FormatOf picks a format from a file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

// Load reads and decodes the schema at path.
func Load(path string) (*formskema.Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n, err := LoadBytes(b, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// LoadBytes decodes a schema document. Property declaration order is kept for
// both syntaxes.
func LoadBytes(data []byte, f Format) (*formskema.Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptySchema
	}
	if f == FormatAuto {
		f = FormatYAML
		if trimmed[0] == '{' {
			f = FormatJSON
		}
	}
	var n formskema.Node
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return nil, fmt.Errorf("decode json schema: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(trimmed, &n); err != nil {
			return nil, fmt.Errorf("decode yaml schema: %w", err)
		}
	default:
		return nil, fmt.Errorf("loader: unknown format %d", int(f))
	}
	return &n, nil
}

// CompileFile loads and compiles the schema at path.
func CompileFile(path string, opts ...formskema.CompileOpt) (formskema.Validator, error) {
	n, err := Load(path)
	if err != nil {
		return nil, err
	}
	v, err := formskema.Compile(n, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// ValidateFile validates data against the schema stored at schemaPath. It
// compiles the schema on every call; keep the Validator from CompileFile when
// validating repeatedly.
func ValidateFile(ctx context.Context, data any, schemaPath string, opts ...formskema.ValidateOpt) error {
	v, err := CompileFile(schemaPath)
	if err != nil {
		return err
	}
	return formskema.Validate(ctx, v, data, opts...)
}

// LoadDir compiles every .json, .yaml and .yml file directly inside dir and
// returns the validators keyed by file name without extension. The first
// failing file aborts the load.
func LoadDir(dir string, opts ...formskema.CompileOpt) (map[string]formskema.Validator, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := map[string]formskema.Validator{}
	for _, e := range entries {
		if e.IsDir() || FormatOf(e.Name()) == FormatAuto {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if _, dup := out[stem]; dup {
			return nil, fmt.Errorf("loader: %s: schema name %q defined twice", dir, stem)
		}
		v, err := CompileFile(filepath.Join(dir, e.Name()), opts...)
		if err != nil {
			return nil, err
		}
		out[stem] = v
	}
	return out, nil
}

// Names returns the keys of a LoadDir result in sorted order.
func Names(m map[string]formskema.Validator) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
