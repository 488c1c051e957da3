package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"I have pain in my back", IntentReportingSymptoms},
		{"My head aches", IntentReportingSymptoms},
		{"The headache is gone, what now?", IntentReportingSymptoms},
		{"Will I get better? I'm scared", IntentSeekingReassurance},
		{"I'm getting nervous", IntentSeekingReassurance},
		{"I'm worried about the results", IntentExpressingConcern},
		{"I am anxious", IntentExpressingConcern},
		{"What will happen to me?", IntentRequestingInformation},
		{"Can you tell me about the scan", IntentRequestingInformation},
		{"Will my anxiety get better?", IntentRequestingInformation},
		{"I feel much better now", IntentAcknowledgingImprovement},
		{"It has been improving", IntentAcknowledgingImprovement},
		{"I went to work", IntentReportingSymptoms},
		{"", IntentReportingSymptoms},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			require.Equal(t, tt.want, DetectIntent(tt.text))
		})
	}
}

func TestDetectIntent_SymptomNeedsBodyPart(t *testing.T) {
	// "pain" alone does not report a symptom; with "will" it seeks reassurance
	require.Equal(t, IntentSeekingReassurance, DetectIntent("Will the pain stop"))
	require.Equal(t, IntentReportingSymptoms, DetectIntent("Will the pain in my neck stop"))
}

func TestIntentRules_Order(t *testing.T) {
	want := []Intent{
		IntentReportingSymptoms,
		IntentSeekingReassurance,
		IntentExpressingConcern,
		IntentRequestingInformation,
		IntentAcknowledgingImprovement,
	}
	got := make([]Intent, 0, len(intentRules))
	for _, r := range intentRules {
		got = append(got, r.intent)
	}
	require.Equal(t, want, got)
}
