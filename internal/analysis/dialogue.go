package analysis

import "strings"

// PatientLabel marks a patient line in a transcript.
const PatientLabel = "Patient:"

// ExtractPatientDialogue returns the patient utterances of a transcript in
// source order. Lines whose trimmed form does not start with PatientLabel
// are ignored; a bare label yields an empty utterance.
func ExtractPatientDialogue(transcript string) []string {
	lines := strings.Split(strings.TrimSpace(transcript), "\n")

	utterances := make([]string, 0, len(lines))
	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), PatientLabel) {
			continue
		}
		utterances = append(utterances, strings.TrimSpace(strings.ReplaceAll(line, PatientLabel, "")))
	}
	return utterances
}
