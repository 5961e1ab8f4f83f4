package download

import "strings"

// classifyRule maps substrings of raw engine errors to a user-facing
// message.
type classifyRule struct {
	substrings []string
	message    string
}

// Free-text matching against upstream wording is fragile, so the rules
// live in one ordered table, separate from the orchestrator, where they
// can be unit-tested and replaced. First match wins.
var classifyRules = []classifyRule{
	{[]string{"private", "unavailable"}, "Video is private, restricted, or unavailable"},
	{[]string{"not found", "404"}, "Video not found or has been deleted"},
	{[]string{"network", "connection"}, "Network error: Please check your internet connection"},
	{[]string{"cancelled"}, "Download cancelled by user"},
}

// ClassifyError translates a raw extraction error into a user-facing
// message. Unrecognized text passes through unchanged.
func ClassifyError(raw string) string {
	lower := strings.ToLower(raw)
	for _, rule := range classifyRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.message
			}
		}
	}
	return raw
}
