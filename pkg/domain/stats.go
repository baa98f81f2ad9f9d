package domain

import "encoding/json"

// DashboardStats is the aggregate block computed by the statistics endpoint.
// The query logic lives upstream, the monitor only relays it.
type DashboardStats struct {
	TotalArticles         int                   `json:"total_articles"`
	TotalSources          int                   `json:"total_sources"`
	TotalLanguages        int                   `json:"total_languages"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	RecentAlerts          []Alert               `json:"recent_alerts"`
	TrendingTopics        []string              `json:"trending_topics"`
	RegionalCoverage      []RegionCoverage      `json:"regional_coverage"`
}

// SentimentDistribution counts articles per sentiment label
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// RegionCoverage is the article count and mean sentiment for a region
type RegionCoverage struct {
	Region    string  `json:"region"`
	Count     int     `json:"count"`
	Sentiment float64 `json:"sentiment"`
}

// Alert is an unread alert raised upstream
type Alert struct {
	ID        int64  `json:"id,omitempty"`
	AlertType string `json:"alert_type"`
	Severity  string `json:"severity"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ArticleID int64  `json:"article_id,omitempty"`
	IsRead    Flag   `json:"is_read"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Flag is a boolean that also accepts the 0/1 integers returned by SQLite-backed endpoints
type Flag bool

// UnmarshalJSON decodes true/false, 0/1 and null
func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var n *float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = Flag(n != nil && *n != 0)
	return nil
}
