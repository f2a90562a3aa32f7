package domain

import "strings"

// ExtractTags splits a raw title on whitespace and pulls out every
// token that starts with '#' and has at least one character after it.
// Tags keep their first-appearance order and may repeat. The remaining
// words are rejoined with single spaces to form the clean title, which
// is empty when the input was tags only.
func ExtractTags(raw string) (clean string, tags []string) {
	var words []string
	for _, tok := range strings.Fields(raw) {
		if strings.HasPrefix(tok, "#") && len(tok) > 1 {
			tags = append(tags, tok[1:])
			continue
		}
		words = append(words, tok)
	}
	return strings.Join(words, " "), tags
}
