package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrFeatureDisabled is returned when an optional integration is not configured.
	ErrFeatureDisabled = errors.New("feature disabled")
	// ErrUpstream wraps failures of external services (speech, telegram).
	ErrUpstream = errors.New("upstream service failed")
)

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioData []byte) (string, error)
}

// ReportService renders and delivers analysis reports.
// We define it here to decouple from the report implementation.
type ReportService interface {
	Render(ctx context.Context, id uuid.UUID, a ConversationAnalysis) ([]byte, error)
	Share(ctx context.Context, id uuid.UUID, a ConversationAnalysis) error
}

// Report is a rendered PDF and the attachment name it is served under.
type Report struct {
	ID       uuid.UUID
	FileName string
	PDF      []byte
}

// Service is the analysis use case exposed to transports.
type Service interface {
	Analyze(ctx context.Context, transcript string) ConversationAnalysis
	AnalyzeAudio(ctx context.Context, audioData []byte) (string, ConversationAnalysis, error)
	RenderReport(ctx context.Context, transcript string) (*Report, error)
	ShareReport(ctx context.Context, transcript string) (uuid.UUID, error)
}

type service struct {
	log         *zap.Logger
	metrics     *Metrics
	transcriber Transcriber
	reportSvc   ReportService
}

// NewService wires the analyzer with its optional collaborators. A nil
// transcriber or report service disables the matching operations.
func NewService(log *zap.Logger, metrics *Metrics, stt Transcriber, report ReportService) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		log:         log,
		metrics:     metrics,
		transcriber: stt,
		reportSvc:   report,
	}
}

func (s *service) Analyze(ctx context.Context, transcript string) ConversationAnalysis {
	result := AnalyzeConversation(transcript)
	s.metrics.observe(result)

	s.log.Debug("transcript analyzed",
		zap.String("request_id", middleware.GetReqID(ctx)),
		zap.Int("utterances", len(result.Utterances)),
		zap.String("sentiment", string(result.Overall.Sentiment)),
		zap.String("intent", string(result.Overall.Intent)),
	)
	return result
}

func (s *service) AnalyzeAudio(ctx context.Context, audioData []byte) (string, ConversationAnalysis, error) {
	if s.transcriber == nil {
		return "", ConversationAnalysis{}, fmt.Errorf("transcription: %w", ErrFeatureDisabled)
	}

	text, err := s.transcriber.Transcribe(ctx, audioData)
	if err != nil {
		return "", ConversationAnalysis{}, fmt.Errorf("%w: transcription: %w", ErrUpstream, err)
	}

	return text, s.Analyze(ctx, NormalizeSpokenTranscript(text)), nil
}

func (s *service) RenderReport(ctx context.Context, transcript string) (*Report, error) {
	if s.reportSvc == nil {
		return nil, fmt.Errorf("reports: %w", ErrFeatureDisabled)
	}

	id := uuid.New()
	result := s.Analyze(ctx, transcript)
	pdf, err := s.reportSvc.Render(ctx, id, result)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	return &Report{ID: id, FileName: ReportFileName(id), PDF: pdf}, nil
}

func (s *service) ShareReport(ctx context.Context, transcript string) (uuid.UUID, error) {
	if s.reportSvc == nil {
		return uuid.Nil, fmt.Errorf("reports: %w", ErrFeatureDisabled)
	}

	id := uuid.New()
	result := s.Analyze(ctx, transcript)
	if err := s.reportSvc.Share(ctx, id, result); err != nil {
		s.log.Warn("report delivery failed",
			zap.String("request_id", middleware.GetReqID(ctx)),
			zap.Stringer("report_id", id),
			zap.Error(err),
		)
		return uuid.Nil, fmt.Errorf("share report: %w", err)
	}

	s.log.Info("report shared",
		zap.String("request_id", middleware.GetReqID(ctx)),
		zap.Stringer("report_id", id),
	)
	return id, nil
}

// ReportFileName is the attachment name used for a report.
func ReportFileName(id uuid.UUID) string {
	return fmt.Sprintf("report_%s.pdf", id.String())
}

// NormalizeSpokenTranscript prepares speech-to-text output for analysis.
// Text that already carries patient labels is returned as is; otherwise
// every non-blank line is attributed to the patient.
func NormalizeSpokenTranscript(text string) string {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), PatientLabel) {
			return text
		}
	}

	var b strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(PatientLabel)
		b.WriteByte(' ')
		b.WriteString(line)
	}
	return b.String()
}
