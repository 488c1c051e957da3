package analysis

import "strings"

// Keyword tables. All matching is plain substring search on lower-cased
// text, so "painting" matches "pain".
var (
	anxietyKeywords = [...]string{
		"worried", "concerned", "anxious", "nervous", "fear", "afraid",
		"scared", "stress", "distress", "pain", "hurt", "unsure", "future",
	}

	reassuranceKeywords = [...]string{
		"relief", "better", "improving", "good", "great", "positive", "recover",
		"recovery", "progress", "fine", "okay", "ok", "hope", "encouraged",
	}

	symptomKeywords = [...]string{
		"pain", "ache", "sore", "discomfort", "stiff", "tender",
		"hurt", "sensation", "feeling", "headache", "migraine", "nausea",
	}

	bodyPartKeywords = [...]string{
		"back", "neck", "head", "arm", "leg", "knee", "shoulder",
		"wrist", "ankle", "hip", "spine", "muscle", "joint",
	}

	// Narrow indicator lists used after the score comparison ties.
	anxietyIndicators     = [...]string{"worried", "concern", "fear", "afraid"}
	reassuranceIndicators = [...]string{"better", "good", "fine", "relief"}

	outlookWords     = [...]string{"will", "hope", "get", "better"}
	concernWords     = [...]string{"worried", "concerned", "anxious"}
	inquiryWords     = [...]string{"?", "what", "when", "how", "why", "tell"}
	improvementWords = [...]string{"better", "improving", "good", "fine", "recovered"}
)

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// countPresent counts distinct keywords that occur at least once in text.
func countPresent(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
