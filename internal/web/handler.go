// Package web serves the server-rendered form for generating descriptions.
// It is thin glue over service.DescriptionService.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/phrazzld/prodwriter/internal/api"
	"github.com/phrazzld/prodwriter/internal/api/shared"
	"github.com/phrazzld/prodwriter/internal/domain"
	"github.com/phrazzld/prodwriter/internal/redact"
	"github.com/phrazzld/prodwriter/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// maxFormBytes bounds POSTed form bodies.
const maxFormBytes = 64 << 10

// FormValues echoes the submitted text inputs back into the form.
type FormValues struct {
	Title    string
	Details  string
	Keywords string
}

// Choice is one option in a checkbox group or select.
type Choice struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	Form        FormValues
	Audiences   []Choice
	Tones       []Choice
	Lengths     []Choice
	Description *domain.Description
	HTML        template.HTML
	Error       string
}

// Handler renders the form page and handles its submissions.
type Handler struct {
	service service.DescriptionService
	logger  *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(svc service.DescriptionService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: svc,
		logger:  logger.With("component", "web_handler"),
	}
}

// Index handles GET /.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, newPageData(FormValues{}, nil, domain.ToneFormal, domain.LengthMedium))
}

// Submit handles POST /.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		data := newPageData(FormValues{}, nil, domain.ToneFormal, domain.LengthMedium)
		data.Error = "The form could not be read. Please try again."
		h.render(w, r, http.StatusBadRequest, data)
		return
	}

	form := FormValues{
		Title:    r.PostForm.Get("title"),
		Details:  r.PostForm.Get("details"),
		Keywords: r.PostForm.Get("keywords"),
	}
	audience := r.PostForm["audience"]
	tone := domain.ParseTone(r.PostForm.Get("tone"))
	length := domain.ParseLength(r.PostForm.Get("length"))

	data := newPageData(form, audience, tone, length)

	spec := domain.ProductSpec{
		Title:    form.Title,
		Details:  domain.ParseList(form.Details),
		Audience: domain.NormalizeAudience(audience),
		Tone:     tone,
		Length:   length,
		Keywords: domain.ParseList(form.Keywords),
	}

	desc, err := h.service.Generate(r.Context(), spec)
	if err != nil {
		status := api.MapErrorToStatusCode(err)
		h.logger.Log(r.Context(), logLevelFor(status), "form submission failed",
			"trace_id", shared.GetTraceID(r.Context()),
			"status_code", status,
			"error", redact.Error(err))
		data.Error = api.GetSafeErrorMessage(err)
		h.render(w, r, status, data)
		return
	}

	data.Description = desc
	data.HTML = template.HTML(desc.HTML) // produced by render.Markdown
	h.render(w, r, http.StatusOK, data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func newPageData(form FormValues, audience []string, tone domain.Tone, length domain.Length) pageData {
	selected := make(map[domain.Audience]bool, len(audience))
	for _, a := range domain.NormalizeAudience(audience) {
		selected[a] = true
	}

	data := pageData{Form: form}
	for _, a := range domain.Audiences {
		data.Audiences = append(data.Audiences, Choice{Value: string(a), Label: string(a), Selected: selected[a]})
	}
	for _, t := range domain.Tones {
		data.Tones = append(data.Tones, Choice{Value: string(t), Label: string(t), Selected: t == tone})
	}
	for _, l := range domain.Lengths {
		data.Lengths = append(data.Lengths, Choice{Value: l.Label(), Label: l.Label(), Selected: l == length})
	}
	return data
}

func logLevelFor(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelInfo
}
