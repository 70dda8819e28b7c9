package domain

import "strings"

// CountWords counts whitespace-separated words, matching what the input
// counter in the client shows.
func CountWords(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	return len(strings.Fields(trimmed))
}

// ValidateRewriteText enforces the submission limits: non-empty, at most
// maxChars bytes and wordLimit words.
func ValidateRewriteText(text string, wordLimit, maxChars int) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyText
	}
	if maxChars > 0 && len(trimmed) > maxChars {
		return ErrTextTooLong
	}
	if wordLimit > 0 && CountWords(trimmed) > wordLimit {
		return ErrTextTooLong
	}
	return nil
}
