// Package format holds the string format checkers referenced by the
// "format" schema keyword.
//
// Checkers are pure predicates. Schemas resolve them once at compile time,
// so registering a format after a schema was compiled does not affect it.
package format

import (
	"sort"
	"sync"
)

// Checker reports whether s satisfies a format.
type Checker func(s string) bool

// Names of the built-in formats.
const (
	Email    = "email"
	URL      = "url"
	URI      = "uri"
	DateTime = "date-time"
	Date     = "date"
)

// Registry maps format names to checkers. The zero value is empty and ready
// to use; it is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewRegistry returns a registry holding the built-in formats.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(Email, IsEmail)
	r.Register(URL, IsURL)
	r.Register(URI, IsURL)
	r.Register(DateTime, IsDateTime)
	r.Register(Date, IsDate)
	return r
}

// Register adds or replaces a checker; nil checkers are ignored.
func (r *Registry) Register(name string, c Checker) {
	if c == nil {
		return
	}
	r.mu.Lock()
	if r.checkers == nil {
		r.checkers = map[string]Checker{}
	}
	r.checkers[name] = c
	r.mu.Unlock()
}

// Lookup returns the checker registered under name.
func (r *Registry) Lookup(name string) (Checker, bool) {
	r.mu.RLock()
	c, ok := r.checkers[name]
	r.mu.RUnlock()
	return c, ok
}

// Names lists registered formats in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.checkers))
	for n := range r.checkers {
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Default is the process-wide registry used when a compile does not name one.
var Default = NewRegistry()

// Register adds a checker to Default.
func Register(name string, c Checker) { Default.Register(name, c) }

// Lookup finds a checker in Default.
func Lookup(name string) (Checker, bool) { return Default.Lookup(name) }
