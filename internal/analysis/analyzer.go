package analysis

// AnalyzeUtterance runs both classifiers over a single utterance.
func AnalyzeUtterance(text string) UtteranceAnalysis {
	return UtteranceAnalysis{
		Utterance: text,
		Analysis: Labels{
			Sentiment: AnalyzeSentiment(text),
			Intent:    DetectIntent(text),
		},
	}
}

// AnalyzeConversation extracts the patient dialogue from transcript,
// classifies every utterance and derives the overall verdict by majority
// vote. It is defined for any input, including the empty string.
func AnalyzeConversation(transcript string) ConversationAnalysis {
	dialogue := ExtractPatientDialogue(transcript)

	utterances := make([]UtteranceAnalysis, 0, len(dialogue))
	sentiments := make([]Sentiment, 0, len(dialogue))
	intents := make([]Intent, 0, len(dialogue))
	for _, text := range dialogue {
		ua := AnalyzeUtterance(text)
		utterances = append(utterances, ua)
		sentiments = append(sentiments, ua.Analysis.Sentiment)
		intents = append(intents, ua.Analysis.Intent)
	}

	return ConversationAnalysis{
		Overall: Labels{
			Sentiment: mostFrequent(sentiments, DefaultSentiment),
			Intent:    mostFrequent(intents, DefaultIntent),
		},
		Utterances: utterances,
	}
}

// mostFrequent returns the label with the highest count. Among equal
// counts the label seen first in seq wins. An empty seq yields fallback.
func mostFrequent[L comparable](seq []L, fallback L) L {
	counts := make(map[L]int, len(seq))
	order := make([]L, 0, len(seq))
	for _, label := range seq {
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	best, bestCount := fallback, 0
	for _, label := range order {
		if counts[label] > bestCount {
			best, bestCount = label, counts[label]
		}
	}
	return best
}
