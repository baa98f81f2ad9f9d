package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Match(t *testing.T) {
	yes, no := true, false
	a := Article{Title: "Monsoon Update", Content: "Rain in Kerala", Source: "NDTV", Category: "weather",
		Region: "Kerala", SentimentLabel: "neutral", Language: "en", GovernmentRelated: &yes}

	tbl := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"category", Filter{Category: "weather"}, true},
		{"other category", Filter{Category: "sports"}, false},
		{"region", Filter{Region: "Kerala"}, true},
		{"other region", Filter{Region: "Delhi"}, false},
		{"sentiment", Filter{Sentiment: "negative"}, false},
		{"language", Filter{Language: "en"}, true},
		{"other language", Filter{Language: "ta"}, false},
		{"government", Filter{GovernmentOnly: true}, true},
		{"search title", Filter{Search: "monsoon"}, true},
		{"search content", Filter{Search: "KERALA"}, true},
		{"search miss", Filter{Search: "cricket"}, false},
		{"combined", Filter{Category: "weather", Region: "Kerala", Search: "rain"}, true},
		{"paging ignored", Filter{Limit: 1, Offset: 100}, true},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(a))
		})
	}

	a.GovernmentRelated = &no
	assert.False(t, Filter{GovernmentOnly: true}.Match(a))
	a.GovernmentRelated = nil
	assert.False(t, Filter{GovernmentOnly: true}.Match(a))
}

func TestFilter_Comparable(t *testing.T) {
	assert.True(t, Filter{Category: "a"} == Filter{Category: "a"})
	assert.NotEqual(t, Filter{Category: "a"}, Filter{Category: "a", Limit: 1})
}
