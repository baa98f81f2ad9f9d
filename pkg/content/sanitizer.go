// Package content cleans article text coming from the push stream and the polled API
package content

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/newspulse/pkg/domain"
)

// Sanitizer strips markup from article text fields.
// Both channels carry text produced by upstream scrapers and translators, which sometimes leaves tags in it.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer makes a sanitizer with a strict (text only) policy
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text removes all tags, unescapes entities and collapses whitespace
func (s *Sanitizer) Text(str string) string {
	if str == "" {
		return ""
	}
	clean := html.UnescapeString(s.policy.Sanitize(str))
	return strings.Join(strings.Fields(clean), " ")
}

// Article returns a copy of the article with cleaned text fields.
// Identity fields (title, source, publish date) are cleaned the same way on both channels,
// so the identity key stays comparable.
func (s *Sanitizer) Article(a domain.Article) domain.Article {
	a.Title = s.Text(a.Title)
	a.Source = s.Text(a.Source)
	a.Content = s.Text(a.Content)
	a.TranslatedContent = s.Text(a.TranslatedContent)
	a.Summary = s.Text(a.Summary)
	a.Author = s.Text(a.Author)
	if len(a.Keywords) > 0 {
		kws := make([]string, 0, len(a.Keywords))
		for _, kw := range a.Keywords {
			if kw = s.Text(kw); kw != "" {
				kws = append(kws, kw)
			}
		}
		a.Keywords = kws
	}
	return a
}

// Articles cleans a list of articles in place and returns it
func (s *Sanitizer) Articles(list []domain.Article) []domain.Article {
	for i := range list {
		list[i] = s.Article(list[i])
	}
	return list
}
