package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/signintech/gopdf"
	"go.uber.org/zap"

	"medical-sentiment/internal/analysis"
)

var (
	// ErrFontUnavailable means none of the configured TTF fonts could be loaded.
	ErrFontUnavailable = errors.New("no usable report font")
	// ErrNotifierDisabled means no doctor chat is configured for delivery.
	ErrNotifierDisabled = fmt.Errorf("telegram notifier not configured: %w", analysis.ErrFeatureDisabled)
)

// DefaultFontPaths are common DejaVuSans locations on Linux distributions.
var DefaultFontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

const (
	fontFamily = "DejaVu"
	textWidth  = 500
	pageBottom = 780
)

type TelegramClient interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendDocument(ctx context.Context, chatID int64, fileData []byte, fileName string) error
}

type Service struct {
	log          *zap.Logger
	fontPaths    []string
	tgClient     TelegramClient
	doctorChatID int64
	now          func() time.Time
}

// NewService builds the report service. tg may be nil, in which case
// reports can be rendered but not shared.
func NewService(log *zap.Logger, fontPaths []string, tg TelegramClient, doctorChatID int64) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if len(fontPaths) == 0 {
		fontPaths = DefaultFontPaths
	}
	return &Service{
		log:          log,
		fontPaths:    fontPaths,
		tgClient:     tg,
		doctorChatID: doctorChatID,
		now:          time.Now,
	}
}

func (s *Service) Render(ctx context.Context, id uuid.UUID, a analysis.ConversationAnalysis) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := s.loadFont(&pdf); err != nil {
		return nil, err
	}

	if err := pdf.SetFont(fontFamily, "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Patient Sentiment & Intent Report")
	pdf.Br(30)

	if err := pdf.SetFont(fontFamily, "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", s.now().Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Report ID: %s", id))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Overall sentiment: %s", a.Overall.Sentiment))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Overall intent: %s", a.Overall.Intent))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Patient utterances: %d", len(a.Utterances)))
	pdf.Br(25)

	if err := pdf.SetFont(fontFamily, "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Utterances:")
	pdf.Br(15)

	if err := pdf.SetFont(fontFamily, "", 11); err != nil {
		return nil, err
	}
	if len(a.Utterances) == 0 {
		pdf.Cell(nil, "- No patient utterances found.")
		pdf.Br(15)
	}
	for i, u := range a.Utterances {
		text := u.Utterance
		if text == "" {
			text = "(empty)"
		}
		for _, l := range wrap(&pdf, fmt.Sprintf("%d. %s", i+1, text)) {
			newPageIfFull(&pdf)
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
		newPageIfFull(&pdf)
		pdf.Cell(nil, fmt.Sprintf("   Sentiment: %s | Intent: %s", u.Analysis.Sentiment, u.Analysis.Intent))
		pdf.Br(17)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Share renders the report and sends it with a short summary to the
// doctor chat.
func (s *Service) Share(ctx context.Context, id uuid.UUID, a analysis.ConversationAnalysis) error {
	if s.tgClient == nil || s.doctorChatID == 0 {
		return ErrNotifierDisabled
	}

	pdf, err := s.Render(ctx, id, a)
	if err != nil {
		return err
	}

	if err := s.tgClient.SendMessage(ctx, s.doctorChatID, Summary(id, a)); err != nil {
		return fmt.Errorf("%w: %w", analysis.ErrUpstream, err)
	}

	s.log.Debug("sending report document", zap.Stringer("report_id", id), zap.Int64("chat_id", s.doctorChatID))
	if err := s.tgClient.SendDocument(ctx, s.doctorChatID, pdf, analysis.ReportFileName(id)); err != nil {
		return fmt.Errorf("%w: %w", analysis.ErrUpstream, err)
	}
	return nil
}

// Summary is the plain-text message accompanying a shared report.
func Summary(id uuid.UUID, a analysis.ConversationAnalysis) string {
	return fmt.Sprintf("Patient analysis %s: sentiment %s, intent %s (%d utterances)",
		id, a.Overall.Sentiment, a.Overall.Intent, len(a.Utterances))
}

func (s *Service) loadFont(pdf *gopdf.GoPdf) error {
	var lastErr error
	for _, path := range s.fontPaths {
		err := pdf.AddTTFFont(fontFamily, path)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	s.log.Error("report font not found", zap.Strings("paths", s.fontPaths), zap.Error(lastErr))
	return fmt.Errorf("%w: last error: %v", ErrFontUnavailable, lastErr)
}

func wrap(pdf *gopdf.GoPdf, text string) []string {
	lines, err := pdf.SplitText(text, textWidth)
	if err != nil || len(lines) == 0 {
		return []string{text}
	}
	return lines
}

func newPageIfFull(pdf *gopdf.GoPdf) {
	if pdf.GetY() > pageBottom {
		pdf.AddPage()
	}
}
