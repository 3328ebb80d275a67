package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/prodwriter/internal/api/shared"
	"github.com/phrazzld/prodwriter/internal/service"
)

// DescriptionHandler serves the JSON description API.
type DescriptionHandler struct {
	service service.DescriptionService
	logger  *slog.Logger
}

// NewDescriptionHandler creates a DescriptionHandler.
func NewDescriptionHandler(svc service.DescriptionService, logger *slog.Logger) *DescriptionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DescriptionHandler{
		service: svc,
		logger:  logger.With("component", "description_handler"),
	}
}

// CreateDescription handles POST /api/descriptions.
func (h *DescriptionHandler) CreateDescription(w http.ResponseWriter, r *http.Request) {
	var req DescriptionRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	desc, err := h.service.Generate(r.Context(), req.ToProductSpec())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "description served",
		"trace_id", shared.GetTraceID(r.Context()),
		"description_id", desc.ID,
		"empty", desc.Empty())

	shared.RespondWithJSON(w, r, http.StatusOK, descriptionToResponse(desc))
}

// GetOptions handles GET /api/options.
func (h *DescriptionHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, newOptionsResponse())
}

func (h *DescriptionHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
