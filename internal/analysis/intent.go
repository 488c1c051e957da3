package analysis

import "strings"

type intentRule struct {
	intent Intent
	match  func(lower string) bool
}

// intentRules is ordered by precedence. The fallback is not listed here.
var intentRules = [...]intentRule{
	{
		intent: IntentReportingSymptoms,
		match: func(lower string) bool {
			return containsAny(lower, symptomKeywords[:]) && containsAny(lower, bodyPartKeywords[:])
		},
	},
	{
		intent: IntentSeekingReassurance,
		match: func(lower string) bool {
			return containsAny(lower, outlookWords[:]) && containsAny(lower, anxietyKeywords[:])
		},
	},
	{
		intent: IntentExpressingConcern,
		match: func(lower string) bool {
			return containsAny(lower, concernWords[:])
		},
	},
	{
		intent: IntentRequestingInformation,
		match: func(lower string) bool {
			return containsAny(lower, inquiryWords[:])
		},
	},
	{
		intent: IntentAcknowledgingImprovement,
		match: func(lower string) bool {
			return containsAny(lower, improvementWords[:])
		},
	},
}

// DetectIntent classifies the purpose of one utterance. Symptom reporting
// is the fallback when no rule matches.
func DetectIntent(text string) Intent {
	lower := strings.ToLower(text)
	for _, rule := range intentRules {
		if rule.match(lower) {
			return rule.intent
		}
	}
	return IntentReportingSymptoms
}
