package analysis

import "strings"

// AnalyzeSentiment classifies the emotional tone of one utterance.
//
// Rules are evaluated in order and the first match wins:
//  1. "hope" together with any anxiety keyword is Anxious.
//  2. More anxiety keywords than reassurance keywords is Anxious.
//  3. More reassurance keywords than anxiety keywords is Reassured.
//  4. On a tie, a narrow anxiety indicator is Anxious,
//  5. then a narrow reassurance indicator is Reassured.
//  6. Otherwise Neutral.
func AnalyzeSentiment(text string) Sentiment {
	lower := strings.ToLower(text)

	anxiety := countPresent(lower, anxietyKeywords[:])
	reassurance := countPresent(lower, reassuranceKeywords[:])

	switch {
	case strings.Contains(lower, "hope") && anxiety > 0:
		return SentimentAnxious
	case anxiety > reassurance:
		return SentimentAnxious
	case reassurance > anxiety:
		return SentimentReassured
	case containsAny(lower, anxietyIndicators[:]):
		return SentimentAnxious
	case containsAny(lower, reassuranceIndicators[:]):
		return SentimentReassured
	default:
		return SentimentNeutral
	}
}
