package recipe

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxTags caps how many tags a recipe may carry.
const MaxTags = 10

// NormalizeTag trims surrounding whitespace and applies NFC normalization so
// visually identical tags compare equal.
func NormalizeTag(tag string) string {
	return norm.NFC.String(strings.TrimSpace(tag))
}

// NormalizeTags normalizes every tag, drops blanks and removes duplicates
// keeping the first occurrence. Display order is preserved. The result is nil
// when no tags remain.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, raw := range tags {
		tag := NormalizeTag(raw)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// AddTag appends tag unless it is blank, already present, or the list is
// full. It reports whether the tag was added.
func AddTag(tags []string, tag string) ([]string, bool) {
	tag = NormalizeTag(tag)
	if tag == "" || len(tags) >= MaxTags {
		return tags, false
	}
	for _, t := range tags {
		if t == tag {
			return tags, false
		}
	}
	return append(cloneStrings(tags), tag), true
}

// RemoveTag returns tags without tag.
func RemoveTag(tags []string, tag string) []string {
	var out []string
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}
