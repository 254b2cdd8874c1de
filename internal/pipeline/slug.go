package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// nonLowerLetter matches every byte that survives lowercasing but is not a-z.
var nonLowerLetter = regexp.MustCompile(`[^a-z]`)

// SlugRegistry tracks anchor identifiers already handed out in one document.
// The zero value is not usable; create one per document with NewSlugRegistry.
type SlugRegistry struct {
	used map[string]int
}

// NewSlugRegistry returns an empty registry.
func NewSlugRegistry() SlugRegistry {
	return SlugRegistry{used: make(map[string]int)}
}

// CleanSlugKey lowercases text and deletes every character outside a-z.
// Digits, spaces, and punctuation are removed, not replaced.
func CleanSlugKey(text string) string {
	return nonLowerLetter.ReplaceAllString(strings.ToLower(text), "")
}

// MakeSlug returns a unique anchor for heading text.
// The first occurrence of a cleaned key is emitted bare; later occurrences
// get the key's incremented counter appended: x, x1, x2.
func (r SlugRegistry) MakeSlug(text string) string {
	key := CleanSlugKey(text)
	count, seen := r.used[key]
	if !seen {
		r.used[key] = 0
		return key
	}
	count++
	r.used[key] = count
	return key + strconv.Itoa(count)
}
