package services

import "strings"

// IsRelevant reports whether any keyword occurs in the title, ignoring case.
func IsRelevant(title string, keywords []string) bool {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return false
	}
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" && strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}
