package skills

import (
	"maps"
	"slices"
	"strings"
)

// Vocabulary is an immutable set of lowercase skill strings.
type Vocabulary struct {
	set map[string]struct{}
}

// HarvestVocabulary splits every field on commas and collects the trimmed,
// lowercased, non-empty entries.
func HarvestVocabulary(fields []string) *Vocabulary {
	v := &Vocabulary{set: make(map[string]struct{})}
	for _, field := range fields {
		for _, entry := range strings.Split(field, ",") {
			skill := strings.ToLower(strings.TrimSpace(entry))
			if skill == "" {
				continue
			}
			v.set[skill] = struct{}{}
		}
	}
	return v
}

// Contains reports whether skill is in the vocabulary. The lookup is
// case-insensitive.
func (v *Vocabulary) Contains(skill string) bool {
	if v == nil {
		return false
	}
	_, ok := v.set[strings.ToLower(strings.TrimSpace(skill))]
	return ok
}

// Len returns the number of distinct skills.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.set)
}

// Skills returns the vocabulary in sorted order.
func (v *Vocabulary) Skills() []string {
	if v == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(v.set))
}
