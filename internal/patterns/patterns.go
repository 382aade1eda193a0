// Package patterns holds the closed table of Python/C operation pairs the
// unifier recognizes. The table is embedded at build time and parsed once
// per process; it is never mutated after load, so concurrent readers need
// no synchronization.
package patterns

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var rawTable []byte

// maxSuggestions caps how many similar patterns an error message carries.
const maxSuggestions = 5

// fallbackSuggestions is how many leading table entries are offered when
// nothing similar is found.
const fallbackSuggestions = 3

// Pattern is one registered (Python name, C name) pair together with the
// Rust operation the pair unifies into.
type Pattern struct {
	Name   string `yaml:"name"`
	Python string `yaml:"python"`
	C      string `yaml:"c"`
	Callee string `yaml:"callee"`
	Result string `yaml:"result"`
}

// RustOutput is the human-facing rendering of the target operation, used
// in listings and suggestions.
func (p Pattern) RustOutput() string {
	return p.Callee + "()"
}

func (p Pattern) String() string {
	return fmt.Sprintf("%s() + %s() → %s", p.Python, p.C, p.RustOutput())
}

type table struct {
	Patterns []Pattern `yaml:"patterns"`
}

var (
	loadOnce sync.Once
	loaded   []Pattern
	loadErr  error
)

func load() []Pattern {
	loadOnce.Do(func() {
		var t table
		if err := yaml.Unmarshal(rawTable, &t); err != nil {
			loadErr = fmt.Errorf("pattern table is malformed: %w", err)
			return
		}
		loaded = t.Patterns
	})
	if loadErr != nil {
		// The table ships inside the binary; failing to parse it is a
		// build defect, not a runtime condition.
		panic(loadErr)
	}
	return loaded
}

// All returns every registered pattern in declaration order. The returned
// slice is a copy; the table itself is immutable.
func All() []Pattern {
	src := load()
	out := make([]Pattern, len(src))
	copy(out, src)
	return out
}

// Find looks up the pair by exact string match on both names.
func Find(pythonFn, cFn string) (Pattern, bool) {
	for _, p := range load() {
		if p.Python == pythonFn && p.C == cFn {
			return p, true
		}
	}
	return Pattern{}, false
}

// FindByName looks up a pattern by its registry name.
func FindByName(name string) (Pattern, bool) {
	for _, p := range load() {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}

// FindSimilar returns up to five patterns whose Python or C name overlaps
// the requested names as a substring (in either direction). When nothing
// overlaps it falls back to the first three table entries in declaration
// order; the fallback is deterministic, not ranked by relevance.
func FindSimilar(pythonFn, cFn string) []Pattern {
	var out []Pattern
	seen := make(map[string]bool)

	add := func(p Pattern) {
		if !seen[p.Name] && len(out) < maxSuggestions {
			seen[p.Name] = true
			out = append(out, p)
		}
	}

	for _, p := range load() {
		if nameOverlaps(p.Python, pythonFn) {
			add(p)
		}
	}
	for _, p := range load() {
		if nameOverlaps(p.C, cFn) {
			add(p)
		}
	}

	if len(out) == 0 {
		all := load()
		n := fallbackSuggestions
		if n > len(all) {
			n = len(all)
		}
		for _, p := range all[:n] {
			add(p)
		}
	}
	return out
}

func nameOverlaps(registered, requested string) bool {
	if registered == "" || requested == "" {
		return false
	}
	return strings.Contains(registered, requested) || strings.Contains(requested, registered)
}
