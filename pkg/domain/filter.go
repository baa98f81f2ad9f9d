package domain

import "strings"

// Filter holds the user-controlled selection applied to the article view
type Filter struct {
	Category       string `json:"category,omitempty"`
	Region         string `json:"region,omitempty"`
	Sentiment      string `json:"sentiment,omitempty"`
	Language       string `json:"language,omitempty"`
	Search         string `json:"search,omitempty"`
	GovernmentOnly bool   `json:"government_only,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	Offset         int    `json:"offset,omitempty"`
}

// Match reports whether the article passes the filter.
// Empty fields match anything, search is a case-insensitive substring of title or content.
func (f Filter) Match(a Article) bool {
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.Region != "" && a.Region != f.Region {
		return false
	}
	if f.Sentiment != "" && a.SentimentLabel != f.Sentiment {
		return false
	}
	if f.Language != "" && a.Language != f.Language {
		return false
	}
	if f.GovernmentOnly && (a.GovernmentRelated == nil || !*a.GovernmentRelated) {
		return false
	}
	if f.Search != "" && !MatchSearch(a, f.Search) {
		return false
	}
	return true
}

// MatchSearch checks the search term against title and content
func MatchSearch(a Article, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(a.Title), term) || strings.Contains(strings.ToLower(a.Content), term)
}
