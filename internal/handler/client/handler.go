package client

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nilgpt/nilgpt/backend/internal/clientstate"
	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/logging"
	"github.com/nilgpt/nilgpt/backend/internal/middleware"
	"github.com/nilgpt/nilgpt/backend/pkg/utils"
)

// Handler serves the client state routes.
type Handler struct {
	store *clientstate.Store
}

// New creates the client state handler.
func New(store *clientstate.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers client state routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/client", func(r chi.Router) {
		r.Get("/state", h.handleGetState)
		r.Delete("/state", h.handleTeardown)
		r.Post("/landing", h.handleLanding)
		r.Put("/theme", h.handleSetTheme)
		r.Put("/palette", h.handleSetPalette)
		r.Put("/persona", h.handleSelectPersona)
	})
}

// ClientID returns the request's client id, issuing one when absent. The id
// is echoed in the response header.
func ClientID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(middleware.ClientIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	w.Header().Set(middleware.ClientIDHeader, id)
	return id
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Init(r.Context(), ClientID(w, r))
	h.respond(w, r, st, err)
}

func (h *Handler) handleTeardown(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Teardown(r.Context(), ClientID(w, r)); err != nil {
		h.respond(w, r, clientstate.State{}, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLanding(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Entry string `json:"entry"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	st, err := h.store.EnterLanding(r.Context(), ClientID(w, r), payload.Entry, r.URL.Query())
	h.respond(w, r, st, err)
}

type valuePayload struct {
	Value string `json:"value"`
}

func (h *Handler) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var payload valuePayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	st, err := h.store.SetTheme(r.Context(), ClientID(w, r), payload.Value)
	h.respond(w, r, st, err)
}

func (h *Handler) handleSetPalette(w http.ResponseWriter, r *http.Request) {
	var payload valuePayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	st, err := h.store.SetPalette(r.Context(), ClientID(w, r), payload.Value)
	h.respond(w, r, st, err)
}

func (h *Handler) handleSelectPersona(w http.ResponseWriter, r *http.Request) {
	var payload valuePayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	st, err := h.store.SelectPersona(r.Context(), ClientID(w, r), payload.Value)
	h.respond(w, r, st, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, st clientstate.State, err error) {
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusOK, st)
	case errors.Is(err, errs.ErrInvalidInput):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		logging.FromContext(r.Context()).Error("client state storage failed", slog.Any("err", err))
		utils.RespondError(w, errs.ToHTTP(err), "client state unavailable")
	}
}
