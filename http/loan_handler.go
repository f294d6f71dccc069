package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"loan-calculator/domain"
	"loan-calculator/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	maxBodyBytes = 1 << 20

	// Shown for every rejected input so parsing details never reach users.
	invalidInputMessage = "invalid loan parameters"
)

type LoanHandler struct {
	service *service.LoanService
	logger  *slog.Logger
}

func NewLoanHandler(service *service.LoanService, logger *slog.Logger) *LoanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoanHandler{service: service, logger: logger}
}

type pageData struct {
	Input     domain.LoanInput
	Submitted bool
	Failed    bool
	Quote     domain.Quote
}

// Index renders the calculator form.
func (h *LoanHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, "page", http.StatusOK, pageData{})
}

// Submit handles the form post. htmx requests get the result fragment only;
// plain form posts get the whole page back.
func (h *LoanHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.renderResult(w, r, pageData{Submitted: true, Failed: true}, http.StatusBadRequest)
		return
	}

	input := domain.LoanInput{
		Principal: r.PostForm.Get("emprunt"),
		Rate:      r.PostForm.Get("rate"),
		Years:     r.PostForm.Get("years"),
	}
	data := pageData{Input: input, Submitted: true}

	quote, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		if !domain.IsInputError(err) {
			h.logger.ErrorContext(r.Context(), "loan calculation failed", "error", err)
		}
		data.Failed = true
		h.renderResult(w, r, data, http.StatusOK)
		return
	}

	data.Quote = quote
	h.renderResult(w, r, data, http.StatusOK)
}

// CalculateLoan is the JSON endpoint. Numbers may be sent as JSON numbers or
// numeric strings.
func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req struct {
		Principal json.Number `json:"principal"`
		Rate      json.Number `json:"rate"`
		Years     json.Number `json:"years"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.logger.DebugContext(r.Context(), "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.service.Calculate(r.Context(), domain.LoanInput{
		Principal: req.Principal.String(),
		Rate:      req.Rate.String(),
		Years:     req.Years.String(),
	})
	if err != nil {
		if domain.IsInputError(err) {
			writeError(w, http.StatusBadRequest, invalidInputMessage)
			return
		}
		h.logger.ErrorContext(r.Context(), "loan calculation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

func (h *LoanHandler) renderResult(w http.ResponseWriter, r *http.Request, data pageData, status int) {
	if r.Header.Get("HX-Request") == "true" {
		h.render(w, "result", status, data)
		return
	}
	h.render(w, "page", status, data)
}

// render executes into a buffer first so a template error never leaves a
// half-written page.
func (h *LoanHandler) render(w http.ResponseWriter, name string, status int, data pageData) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed writing response", "error", err)
	}
}

// writeJSON encodes to a buffer before touching the header, as a failed
// encode must still be reportable as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errorType(status),
		},
	})
}

func errorType(status int) string {
	if status >= http.StatusInternalServerError {
		return "server_error"
	}
	return "invalid_request_error"
}
