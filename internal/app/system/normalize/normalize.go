// Package normalize canonicalizes user-supplied strings before they are
// stored or compared.
package normalize

import "strings"

// Email trims and lowercases an address. Addresses are unique case-insensitively.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding space and collapses inner runs of whitespace.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Role trims and lowercases a role identifier.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Privacy lowercases a group privacy value; empty becomes "public".
func Privacy(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "public"
	}
	return s
}

// Tags trims, lowercases, and de-duplicates tags, dropping empties.
// The result is never nil.
func Tags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
