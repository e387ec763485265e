package user

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/logging"
	"github.com/nilgpt/nilgpt/backend/internal/middleware"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
	"github.com/nilgpt/nilgpt/backend/internal/model/utm"
	userService "github.com/nilgpt/nilgpt/backend/internal/service/user"
	"github.com/nilgpt/nilgpt/backend/pkg/utils"
)

// Users is the first-access user record service.
type Users interface {
	EnsureUser(ctx context.Context, acct identity.Account, params utm.Params) (userService.Result, error)
}

// ProfileRestorer re-applies client state stored on the user profile.
type ProfileRestorer interface {
	RestoreNilia(ctx context.Context, clientID string, profile utm.Params) (reload bool, err error)
}

// Handler serves /api/createUser.
type Handler struct {
	users    Users
	restorer ProfileRestorer
}

// New creates the user handler. restorer may be nil.
func New(users Users, restorer ProfileRestorer) *Handler {
	return &Handler{users: users, restorer: restorer}
}

// RegisterRoutes registers user routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/createUser", h.handleCreateUser)
}

type createRequest struct {
	UTM   map[string]string `json:"utm"`
	Nilia bool              `json:"nilia"`
}

type createResponse struct {
	Success    bool           `json:"success"`
	UserExists bool           `json:"userExists"`
	User       map[string]any `json:"user,omitempty"`
	Reload     bool           `json:"reload,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromContext(ctx)

	acct, ok := middleware.AccountFromContext(ctx)
	if !ok {
		utils.RespondJSON(w, http.StatusUnauthorized, createResponse{Error: "Authentication required"})
		return
	}

	var body createRequest
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, createResponse{Error: "Invalid request body"})
		return
	}
	params := utm.Sanitize(body.UTM)
	if body.Nilia {
		params[utm.Content] = utm.NiliaContent
	}

	res, err := h.users.EnsureUser(ctx, acct, params)
	if err != nil {
		log.Error("create user failed", slog.Any("err", err))
		msg := "Failed to create user"
		if errors.Is(err, errs.ErrConfig) {
			msg = err.Error()
		}
		utils.RespondJSON(w, errs.ToHTTP(err), createResponse{Error: msg})
		return
	}

	if !res.Exists {
		utils.RespondJSON(w, http.StatusCreated, createResponse{Success: true})
		return
	}

	out := createResponse{Success: true, UserExists: true, User: res.User}
	if clientID := r.Header.Get(middleware.ClientIDHeader); h.restorer != nil && clientID != "" {
		reload, err := h.restorer.RestoreNilia(ctx, clientID, userService.ProfileUTM(res.User))
		if err != nil {
			log.Warn("restore client state from profile failed", slog.Any("err", err))
		}
		out.Reload = reload
	}
	utils.RespondJSON(w, http.StatusOK, out)
}
