package query

import "github.com/roach88/recipebox/internal/recipe"

// AllTags returns every distinct tag in the collection in first-seen order.
func AllTags(recipes []recipe.Recipe) []string {
	seen := map[string]struct{}{}
	tags := []string{}
	for _, r := range recipes {
		for _, tag := range r.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

// TagCounts returns how many recipes carry each tag.
func TagCounts(recipes []recipe.Recipe) map[string]int {
	counts := map[string]int{}
	for _, r := range recipes {
		for _, tag := range r.Tags {
			counts[tag]++
		}
	}
	return counts
}
