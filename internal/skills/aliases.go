package skills

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrAliasChain is returned when a canonical skill is itself an alias of
// another skill. Chains would make resolution depend on how often it runs.
var ErrAliasChain = errors.New("alias chain")

// defaultAliases maps common variations to standard skill names.
var defaultAliases = map[string]string{
	"python3":            "python",
	"python programming": "python",
	"ms excel":           "excel",
	"microsoft excel":    "excel",
	"data analytics":     "data analysis",
	"ai":                 "artificial intelligence",
	"ml":                 "machine learning",
}

// Aliases resolves raw skill strings to their canonical lowercase form.
// The zero value resolves every skill to itself lowercased.
type Aliases struct {
	m map[string]string
}

// DefaultAliases returns the built-in alias map.
func DefaultAliases() *Aliases {
	return &Aliases{m: maps.Clone(defaultAliases)}
}

// NewAliases returns the built-in aliases merged with extra. Extra entries
// override built-in ones with the same key. Keys and values are lowercased and
// trimmed; entries with an empty side are ignored.
func NewAliases(extra map[string]string) (*Aliases, error) {
	a := DefaultAliases()
	for raw, canonical := range extra {
		raw = strings.ToLower(strings.TrimSpace(raw))
		canonical = strings.ToLower(strings.TrimSpace(canonical))
		if raw == "" || canonical == "" {
			continue
		}
		a.m[raw] = canonical
	}

	for _, raw := range slices.Sorted(maps.Keys(a.m)) {
		canonical := a.m[raw]
		if canonical == raw {
			continue
		}
		if next, ok := a.m[canonical]; ok && next != canonical {
			return nil, fmt.Errorf("%w: %q -> %q -> %q", ErrAliasChain, raw, canonical, next)
		}
	}

	return a, nil
}

// Resolve returns the canonical form of skill. Skills without an alias
// resolve to themselves lowercased.
func (a *Aliases) Resolve(skill string) string {
	lower := strings.ToLower(skill)
	if a == nil {
		return lower
	}
	if canonical, ok := a.m[lower]; ok {
		return canonical
	}
	return lower
}

// Variants returns the sorted raw skills that resolve to canonical, excluding
// canonical itself.
func (a *Aliases) Variants(canonical string) []string {
	if a == nil {
		return nil
	}
	var variants []string
	for raw, c := range a.m {
		if c == canonical && raw != canonical {
			variants = append(variants, raw)
		}
	}
	slices.Sort(variants)
	return variants
}

// Len returns the number of alias entries.
func (a *Aliases) Len() int {
	if a == nil {
		return 0
	}
	return len(a.m)
}

// Map returns a copy of the alias entries.
func (a *Aliases) Map() map[string]string {
	if a == nil {
		return map[string]string{}
	}
	return maps.Clone(a.m)
}
