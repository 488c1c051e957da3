package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		text string
		want Sentiment
	}{
		// score comparison
		{"I am worried about my pain", SentimentAnxious},
		{"I feel much better and relieved", SentimentReassured},
		{"I have pain in my back", SentimentAnxious},
		{"I'm okay", SentimentReassured},
		{"I hope I recover", SentimentReassured},
		{"I AM SCARED", SentimentAnxious},
		{"Painting helps me", SentimentAnxious},

		// hope with any anxiety keyword overrides the scores
		{"I hope the pain goes away", SentimentAnxious},
		{"Hope it gets better, hope it improves, hope I recover, but the future is unclear", SentimentAnxious},

		// tied scores fall through to the narrow indicators
		{"I'm worried but feeling better", SentimentAnxious},
		{"A concern about stress, but things are fine", SentimentAnxious},
		{"The stress is gone and I feel good", SentimentReassured},

		// nothing matched
		{"What will happen to me?", SentimentNeutral},
		{"I think so", SentimentNeutral},
		{"", SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			require.Equal(t, tt.want, AnalyzeSentiment(tt.text))
		})
	}
}

func TestAnalyzeSentiment_Deterministic(t *testing.T) {
	text := "I am unsure but hopeful about recovery"
	first := AnalyzeSentiment(text)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, AnalyzeSentiment(text))
	}
}

func TestCountPresent_DistinctKeywords(t *testing.T) {
	require.Equal(t, 1, countPresent("pain pain pain", anxietyKeywords[:]))
	require.Equal(t, 2, countPresent("i am ok, okay", reassuranceKeywords[:]))
	require.Equal(t, 0, countPresent("", anxietyKeywords[:]))
}
