package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nilgpt/nilgpt/backend/internal/model/persona"
	"github.com/nilgpt/nilgpt/backend/pkg/utils"
)

// Handler serves the persona catalogue.
type Handler struct {
	personas *persona.MemoryStore
}

// New creates the persona handler.
func New(personas *persona.MemoryStore) *Handler {
	return &Handler{personas: personas}
}

// RegisterRoutes registers persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
	r.Get("/personas/{personaID}", h.handleGetPersona)
}

// handleListPersonas lists the catalogue; ?entry=nilia includes Nilia-only personas.
func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("entry") == "nilia" {
		utils.RespondJSON(w, http.StatusOK, h.personas.List())
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.personas.Public())
}

// handleGetPersona returns one persona with its system prompt.
func (h *Handler) handleGetPersona(w http.ResponseWriter, r *http.Request) {
	p, ok := h.personas.FindByID(chi.URLParam(r, "personaID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "persona not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, struct {
		persona.Persona
		SystemPrompt string `json:"systemPrompt"`
	}{p, persona.SystemPrompt(p)})
}
