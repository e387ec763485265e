package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nilgpt/nilgpt/backend/internal/logging"
	"github.com/nilgpt/nilgpt/backend/internal/middleware"
	accountModel "github.com/nilgpt/nilgpt/backend/internal/model/account"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
	accountService "github.com/nilgpt/nilgpt/backend/internal/service/account"
	"github.com/nilgpt/nilgpt/backend/pkg/utils"
)

// Deleter is the account deletion orchestrator.
type Deleter interface {
	DeleteAccount(ctx context.Context, acct identity.Account) (accountModel.Deletion, error)
}

// Handler serves account lifecycle routes.
type Handler struct {
	accounts Deleter
	validate *validator.Validate
}

// New creates the account handler.
func New(accounts Deleter) *Handler {
	return &Handler{accounts: accounts, validate: validator.New()}
}

// RegisterRoutes registers account routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Delete("/deleteAccount", h.handleDeleteAccount)
}

type deleteRequest struct {
	UserID string `json:"user_id" validate:"omitempty,max=255"`
}

type deleteResponse struct {
	Success      bool                          `json:"success"`
	Message      string                        `json:"message,omitempty"`
	Error        string                        `json:"error,omitempty"`
	Provider     identity.Provider             `json:"provider,omitempty"`
	NilDBResults *accountModel.DeletionResults `json:"nilDBResults,omitempty"`
}

func (h *Handler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("deleteAccount panicked", slog.Any("panic", rec))
			utils.RespondJSON(w, http.StatusInternalServerError, deleteResponse{Error: "Failed to process deleteAccount request"})
		}
	}()

	var body deleteRequest
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, deleteResponse{Error: "Invalid request body"})
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, deleteResponse{Error: "Invalid user ID format"})
		return
	}

	acct, status, msg := resolveCaller(r.Context(), body.UserID)
	if acct == nil {
		utils.RespondJSON(w, status, deleteResponse{Error: msg})
		return
	}

	out, err := h.accounts.DeleteAccount(r.Context(), acct)
	if err != nil {
		var cfgErr *accountService.ConfigError
		var provErr *accountService.ProviderError
		switch {
		case errors.As(err, &cfgErr):
			log.Error("deleteAccount configuration error", slog.String("err", cfgErr.Message))
			utils.RespondJSON(w, http.StatusInternalServerError, deleteResponse{Error: cfgErr.Message})
		case errors.As(err, &provErr):
			utils.RespondJSON(w, provErr.Status, deleteResponse{
				Error:        provErr.Error(),
				Provider:     out.Provider,
				NilDBResults: &out.Results,
			})
		default:
			log.Error("deleteAccount failed", slog.Any("err", err))
			utils.RespondJSON(w, http.StatusInternalServerError, deleteResponse{Error: "Failed to process deleteAccount request"})
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, deleteResponse{
		Success:      true,
		Message:      fmt.Sprintf("User deleted from %s and nilDB successfully", out.Provider.Title()),
		Provider:     out.Provider,
		NilDBResults: &out.Results,
	})
}

// resolveCaller picks the account to delete. The session identity wins; a
// body id must match it unless the request carries the admin key.
func resolveCaller(ctx context.Context, bodyID string) (identity.Account, int, string) {
	sessionAcct, authenticated := middleware.AccountFromContext(ctx)

	if bodyID == "" {
		if !authenticated {
			return nil, http.StatusUnauthorized, "Authentication required"
		}
		return sessionAcct, 0, ""
	}

	requested, err := identity.Parse(bodyID)
	if err != nil {
		return nil, http.StatusBadRequest, "Invalid user ID format"
	}

	switch {
	case middleware.IsAdmin(ctx):
		return requested, 0, ""
	case !authenticated:
		return nil, http.StatusUnauthorized, "Authentication required"
	case sessionAcct.Provider() != requested.Provider() || sessionAcct.UserID() != requested.UserID():
		return nil, http.StatusForbidden, "Cannot delete another user's account"
	default:
		return sessionAcct, 0, ""
	}
}
