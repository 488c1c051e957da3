package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// MaxTranscriptLength is the longest transcript, in characters, accepted
// over HTTP. Keep in sync with the AnalyzeRequest tag.
const MaxTranscriptLength = 100000

// Limits caps request body sizes in bytes. Zero disables a cap.
type Limits struct {
	Request int64
	Audio   int64
}

// Handler serves the analysis endpoints.
type Handler struct {
	svc      Service
	log      *zap.Logger
	limits   Limits
	validate *validator.Validate
}

func NewHandler(svc Service, log *zap.Logger, limits Limits) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log, limits: limits, validate: validator.New()}
}

// AnalyzeRequest is the JSON body of every transcript endpoint. A missing
// transcript is analyzed as empty.
type AnalyzeRequest struct {
	Transcript string `json:"transcript" validate:"max=100000"`
}

// AudioAnalysisResponse carries the transcribed text next to its analysis.
type AudioAnalysisResponse struct {
	Text string `json:"text"`
	ConversationAnalysis
}

// ShareResponse identifies a report delivered to the doctor chat.
type ShareResponse struct {
	ReportID string `json:"report_id"`
}

// limitBody caps r.Body at limit and rejects requests that announce a
// larger body up front.
func limitBody(w http.ResponseWriter, r *http.Request, limit int64) bool {
	if limit <= 0 {
		return true
	}
	if r.ContentLength > limit {
		http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return true
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (AnalyzeRequest, bool) {
	var req AnalyzeRequest
	if !limitBody(w, r, h.limits.Request) {
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isTooLarge(err) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return req, false
		}
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, fmt.Sprintf("Transcript exceeds %d characters", MaxTranscriptLength), http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.svc.Analyze(r.Context(), req.Transcript))
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	report, err := h.svc.RenderReport(r.Context(), req.Transcript)
	if err != nil {
		h.fail(w, "Report generation failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(report.PDF)
}

func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	id, err := h.svc.ShareReport(r.Context(), req.Transcript)
	if err != nil {
		h.fail(w, "Report delivery failed", err)
		return
	}

	writeJSON(w, http.StatusOK, ShareResponse{ReportID: id.String()})
}

func (h *Handler) AnalyzeAudio(w http.ResponseWriter, r *http.Request) {
	if !limitBody(w, r, h.limits.Audio) {
		return
	}
	maxMemory := h.limits.Audio
	if maxMemory <= 0 {
		maxMemory = 10 << 20
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		if isTooLarge(err) {
			http.Error(w, "Audio file too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "Error retrieving audio file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		http.Error(w, "Failed to read audio file", http.StatusInternalServerError)
		return
	}

	text, result, err := h.svc.AnalyzeAudio(r.Context(), buf.Bytes())
	if err != nil {
		h.fail(w, "Transcription failed", err)
		return
	}

	writeJSON(w, http.StatusOK, AudioAnalysisResponse{Text: text, ConversationAnalysis: result})
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrFeatureDisabled):
		status = http.StatusServiceUnavailable
	case errors.Is(err, ErrUpstream):
		status = http.StatusBadGateway
	}
	// err may quote upstream responses; it goes to the log only
	h.log.Error(msg, zap.Int("status", status), zap.Error(err))
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/analyze", h.Analyze)
	r.Post("/analyze/report", h.Report)
	r.Post("/analyze/share", h.Share)
	r.Post("/analyze/audio", h.AnalyzeAudio)
}
