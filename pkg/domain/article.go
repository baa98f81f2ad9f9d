package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Article represents a news article delivered either by the push stream or by the polled API
type Article struct {
	Title             string   `json:"title"`
	Content           string   `json:"content"`
	Source            string   `json:"source"`
	SourceURL         string   `json:"source_url,omitempty"`
	Language          string   `json:"language"`
	TranslatedContent string   `json:"translated_content,omitempty"`
	Author            string   `json:"author,omitempty"`
	PublishDate       string   `json:"publish_date,omitempty"`
	CollectedDate     string   `json:"collected_date,omitempty"`
	Region            string   `json:"region,omitempty"`
	Category          string   `json:"category,omitempty"`
	SentimentLabel    string   `json:"sentiment_label,omitempty"`
	SentimentScore    *float64 `json:"sentiment_score,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	Keywords          []string `json:"keywords,omitempty"`

	// enrichment flags set by the upstream AI pipeline
	GovernmentRelated    *bool    `json:"is_government_related,omitempty"`
	GovernmentConfidence *float64 `json:"government_confidence,omitempty"`
	AIProcessed          bool     `json:"ai_processed,omitempty"`
	AIConfidence         *float64 `json:"ai_confidence_score,omitempty"`
}

// IdentityKey identifies an article across the push and polled channels.
// Neither channel carries a shared numeric id, so the composite is all we have.
type IdentityKey struct {
	Title       string
	Source      string
	PublishDate string
}

// Key returns the identity key of the article
func (a Article) Key() IdentityKey {
	return IdentityKey{Title: a.Title, Source: a.Source, PublishDate: a.PublishDate}
}

// String returns the key in the title-source-date form used in logs
func (k IdentityKey) String() string {
	return fmt.Sprintf("%s-%s-%s", k.Title, k.Source, k.PublishDate)
}

// articleWire is the union of the push and the REST article shapes
type articleWire struct {
	Title                string          `json:"title"`
	Content              string          `json:"content"`
	Source               string          `json:"source"`
	SourceURL            string          `json:"source_url"`
	URL                  string          `json:"url"`
	Language             string          `json:"language"`
	TranslatedContent    string          `json:"translated_content"`
	Author               string          `json:"author"`
	PublishDate          string          `json:"publish_date"`
	CollectedDate        string          `json:"collected_date"`
	Region               string          `json:"region"`
	Category             string          `json:"category"`
	SentimentLabel       string          `json:"sentiment_label"`
	SentimentScore       *float64        `json:"sentiment_score"`
	Sentiment            json.RawMessage `json:"sentiment"`
	Summary              string          `json:"summary"`
	Keywords             json.RawMessage `json:"keywords"`
	GovernmentRelated    *bool           `json:"is_government_related"`
	GovernmentConfidence *float64        `json:"government_confidence"`
	AIProcessed          bool            `json:"ai_processed"`
	AIConfidence         *float64        `json:"ai_confidence_score"`
}

// pushSentiment is the nested sentiment object sent by the stream
type pushSentiment struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// UnmarshalJSON accepts both wire shapes. The stream sends url, nested sentiment and keyword arrays,
// the REST API sends source_url, flat sentiment fields and comma separated keywords.
func (a *Article) UnmarshalJSON(data []byte) error {
	var w articleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*a = Article{
		Title:                w.Title,
		Content:              w.Content,
		Source:               w.Source,
		SourceURL:            w.SourceURL,
		Language:             w.Language,
		TranslatedContent:    w.TranslatedContent,
		Author:               w.Author,
		PublishDate:          w.PublishDate,
		CollectedDate:        w.CollectedDate,
		Region:               w.Region,
		Category:             w.Category,
		SentimentLabel:       w.SentimentLabel,
		SentimentScore:       w.SentimentScore,
		Summary:              w.Summary,
		GovernmentRelated:    w.GovernmentRelated,
		GovernmentConfidence: w.GovernmentConfidence,
		AIProcessed:          w.AIProcessed,
		AIConfidence:         w.AIConfidence,
	}
	if a.SourceURL == "" {
		a.SourceURL = w.URL
	}

	if len(w.Sentiment) > 0 && string(w.Sentiment) != "null" {
		var ps pushSentiment
		if err := json.Unmarshal(w.Sentiment, &ps); err == nil {
			if a.SentimentLabel == "" {
				a.SentimentLabel = ps.Sentiment
			}
			if a.SentimentScore == nil {
				score := ps.Confidence
				a.SentimentScore = &score
			}
		} else {
			// some producers send the label as a plain string
			var label string
			if err := json.Unmarshal(w.Sentiment, &label); err == nil && a.SentimentLabel == "" {
				a.SentimentLabel = label
			}
		}
	}

	keywords, err := parseKeywords(w.Keywords)
	if err != nil {
		return fmt.Errorf("parse keywords: %w", err)
	}
	a.Keywords = keywords
	return nil
}

// parseKeywords handles both a JSON array and a comma separated string
func parseKeywords(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil, err
	}

	var res []string
	for _, kw := range strings.Split(str, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			res = append(res, kw)
		}
	}
	return res, nil
}
