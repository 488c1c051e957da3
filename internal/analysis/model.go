package analysis

// Sentiment is the emotional tone of a patient utterance.
type Sentiment string

const (
	SentimentAnxious   Sentiment = "Anxious"
	SentimentNeutral   Sentiment = "Neutral"
	SentimentReassured Sentiment = "Reassured"
)

// Intent is the communicative purpose of a patient utterance.
type Intent string

const (
	IntentSeekingReassurance       Intent = "Seeking reassurance"
	IntentReportingSymptoms        Intent = "Reporting symptoms"
	IntentExpressingConcern        Intent = "Expressing concern"
	IntentRequestingInformation    Intent = "Requesting information"
	IntentAcknowledgingImprovement Intent = "Acknowledging improvement"
)

// Defaults used when a transcript carries no patient lines.
const (
	DefaultSentiment = SentimentNeutral
	DefaultIntent    = IntentReportingSymptoms
)

// Sentiments returns the closed set of sentiment labels.
func Sentiments() []Sentiment {
	return []Sentiment{SentimentAnxious, SentimentNeutral, SentimentReassured}
}

// Intents returns the closed set of intent labels.
func Intents() []Intent {
	return []Intent{
		IntentSeekingReassurance,
		IntentReportingSymptoms,
		IntentExpressingConcern,
		IntentRequestingInformation,
		IntentAcknowledgingImprovement,
	}
}

// Labels is the (sentiment, intent) pair attached to an utterance or a
// whole conversation. JSON keys follow the front-end contract.
type Labels struct {
	Sentiment Sentiment `json:"Sentiment"`
	Intent    Intent    `json:"Intent"`
}

// UtteranceAnalysis pairs one patient utterance with its labels.
type UtteranceAnalysis struct {
	Utterance string `json:"Utterance"`
	Analysis  Labels `json:"Analysis"`
}

// ConversationAnalysis is the transcript-level verdict.
type ConversationAnalysis struct {
	Overall    Labels              `json:"Overall_Analysis"`
	Utterances []UtteranceAnalysis `json:"Utterance_Analyses"`
}
