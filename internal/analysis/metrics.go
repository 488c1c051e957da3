package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts classification outcomes. A nil *Metrics records nothing.
type Metrics struct {
	utterances    *prometheus.CounterVec
	conversations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		utterances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "msa",
			Name:      "utterances_classified_total",
			Help:      "Patient utterances classified, by sentiment and intent.",
		}, []string{"sentiment", "intent"}),
		conversations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "msa",
			Name:      "conversations_analyzed_total",
			Help:      "Transcripts analyzed, by overall sentiment and intent.",
		}, []string{"sentiment", "intent"}),
	}
	reg.MustRegister(m.utterances, m.conversations)
	return m
}

func (m *Metrics) observe(a ConversationAnalysis) {
	if m == nil {
		return
	}
	for _, u := range a.Utterances {
		m.utterances.WithLabelValues(string(u.Analysis.Sentiment), string(u.Analysis.Intent)).Inc()
	}
	m.conversations.WithLabelValues(string(a.Overall.Sentiment), string(a.Overall.Intent)).Inc()
}
