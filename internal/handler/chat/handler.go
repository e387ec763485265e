package chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/logging"
	"github.com/nilgpt/nilgpt/backend/internal/middleware"
	"github.com/nilgpt/nilgpt/backend/internal/model/chat"
	chatService "github.com/nilgpt/nilgpt/backend/internal/service/chat"
	"github.com/nilgpt/nilgpt/backend/pkg/utils"
)

// Handler serves chat and message record routes.
type Handler struct {
	chatSvc  *chatService.Service
	validate *validator.Validate
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc, validate: validator.New()}
}

// RegisterRoutes registers chat routes. Every route requires a session.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(requireAccount)
		r.Post("/chats", h.handleCreateChat)
		r.Patch("/chats/{chatID}", h.handleRenameChat)
		r.Post("/messages", h.handleSaveMessage)
	})
}

func requireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.AccountFromContext(r.Context()); !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type createChatRequest struct {
	Persona string `json:"persona" validate:"required"`
	Title   string `json:"title" validate:"required,max=200"`
}

func (h *Handler) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	var payload createChatRequest
	if !h.decode(w, r, &payload) {
		return
	}

	acct, _ := middleware.AccountFromContext(r.Context())
	c, err := h.chatSvc.CreateChat(r.Context(), acct, payload.Persona, payload.Title)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, c)
}

type renameChatRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

func (h *Handler) handleRenameChat(w http.ResponseWriter, r *http.Request) {
	var payload renameChatRequest
	if !h.decode(w, r, &payload) {
		return
	}

	acct, _ := middleware.AccountFromContext(r.Context())
	if err := h.chatSvc.RenameChat(r.Context(), acct, chi.URLParam(r, "chatID"), payload.Title); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Updated record successfully"})
}

type saveMessageRequest struct {
	ChatID  string `json:"chat_id" validate:"required,uuid"`
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
	Order   int    `json:"order" validate:"gte=0"`
}

func (h *Handler) handleSaveMessage(w http.ResponseWriter, r *http.Request) {
	var payload saveMessageRequest
	if !h.decode(w, r, &payload) {
		return
	}

	acct, _ := middleware.AccountFromContext(r.Context())
	msg, err := h.chatSvc.SaveMessage(r.Context(), acct, chat.Message{
		ChatID:  payload.ChatID,
		Role:    chat.Role(payload.Role),
		Content: payload.Content,
		Order:   payload.Order,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, msg)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.DecodeJSON(r, dst); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errs.ErrInvalidInput) {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	logging.FromContext(r.Context()).Error("chat record write failed", slog.Any("err", err))
	utils.RespondError(w, errs.ToHTTP(err), "failed to store record")
}
