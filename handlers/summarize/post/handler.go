package post

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"reportserver/models"
	"reportserver/prompt"

	"github.com/a-h/respond"
)

const (
	msgInvalidPDF       = "Please upload a valid PDF file."
	msgMissingAPIKey    = "Missing GOOGLE_API_KEY in server."
	msgNoExtractedText  = "Could not extract text from PDF. It may be a scanned image (try OCR)."
	msgSummarizeFailure = "Failed to generate summary."
)

// Extractor converts PDF bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// Summarizer produces a summary from a composed prompt.
type Summarizer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New creates the summarize handler. summarizer is nil when no API credential
// is configured; requests then fail with a configuration error.
func New(log *slog.Logger, extractor Extractor, summarizer Summarizer, instructions string, maxBodyBytes int64) Handler {
	return Handler{
		log:          log,
		extractor:    extractor,
		summarizer:   summarizer,
		instructions: instructions,
		maxBodyBytes: maxBodyBytes,
	}
}

type Handler struct {
	log          *slog.Logger
	extractor    Extractor
	summarizer   Summarizer
	instructions string
	maxBodyBytes int64
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.log.Info("summarize request received", slog.String("remote", r.RemoteAddr))

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, "failed to decode body", err, msgInvalidPDF, http.StatusBadRequest)
		return
	}
	if req.FileData == "" || req.FileType != models.PDFMediaType {
		h.error(w, "invalid upload", nil, msgInvalidPDF, http.StatusBadRequest)
		return
	}

	if h.summarizer == nil {
		h.error(w, "no API key configured", nil, msgMissingAPIKey, http.StatusInternalServerError)
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil || len(data) == 0 {
		h.error(w, "failed to decode base64 file data", err, msgInvalidPDF, http.StatusBadRequest)
		return
	}

	text, err := h.extractor.Extract(r.Context(), data)
	if err != nil {
		h.error(w, "failed to extract text", err, err.Error(), http.StatusBadRequest)
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		h.error(w, "no extractable text", nil, msgNoExtractedText, http.StatusBadRequest)
		return
	}

	summary, err := h.summarizer.Generate(r.Context(), prompt.Compose(h.instructions, text))
	if err != nil {
		h.error(w, "failed to generate summary", err, err.Error(), http.StatusInternalServerError)
		return
	}
	if summary == "" {
		h.error(w, "empty summary", nil, msgSummarizeFailure, http.StatusInternalServerError)
		return
	}

	respond.WithJSON(w, models.SummarizeResponse{Summary: summary}, http.StatusOK)
}

func (h Handler) error(w http.ResponseWriter, logMsg string, err error, userMsg string, status int) {
	h.log.Error(logMsg, slog.Any("error", err), slog.Int("status", status))
	respond.WithJSON(w, models.ErrorResponse{Error: userMsg}, status)
}
