package text

import (
	"strings"
)

// ExactReplacer replaces literal occurrences of a search string
type ExactReplacer struct{}

// NewExactReplacer creates a new ExactReplacer
func NewExactReplacer() *ExactReplacer {
	return &ExactReplacer{}
}

// Replace swaps every occurrence of search in content for replace, verbatim.
// It returns the new content and the number of occurrences replaced. An
// empty search string never matches.
func (r *ExactReplacer) Replace(content, search, replace string) (string, int) {
	if search == "" {
		return content, 0
	}

	count := strings.Count(content, search)
	if count == 0 {
		return content, 0
	}

	return strings.ReplaceAll(content, search, replace), count
}
