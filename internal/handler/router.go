package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nilgpt/nilgpt/backend/internal/clientstate"
	"github.com/nilgpt/nilgpt/backend/internal/handler/account"
	"github.com/nilgpt/nilgpt/backend/internal/handler/chat"
	"github.com/nilgpt/nilgpt/backend/internal/handler/client"
	"github.com/nilgpt/nilgpt/backend/internal/handler/persona"
	"github.com/nilgpt/nilgpt/backend/internal/handler/user"
	"github.com/nilgpt/nilgpt/backend/internal/middleware"
	personaModel "github.com/nilgpt/nilgpt/backend/internal/model/persona"
	chatService "github.com/nilgpt/nilgpt/backend/internal/service/chat"
	"github.com/nilgpt/nilgpt/backend/internal/session"
	"github.com/nilgpt/nilgpt/backend/pkg/utils"
)

// Deps are the services the router exposes. Nil services leave their
// routes unregistered, except Accounts which answers a configuration error.
type Deps struct {
	Personas    *personaModel.MemoryStore
	Accounts    account.Deleter
	Users       user.Users
	Chats       *chatService.Service
	ClientState *clientstate.Store
	Verifier    session.Verifier
	AdminAPIKey string
	Origins     []string
	Version     string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestContext)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(d.Origins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": d.Version})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Authenticate(d.Verifier, d.AdminAPIKey))

		if d.Personas != nil {
			persona.New(d.Personas).RegisterRoutes(api)
		}

		if d.Accounts != nil {
			account.New(d.Accounts).RegisterRoutes(api)
		} else {
			api.Delete("/deleteAccount", func(w http.ResponseWriter, r *http.Request) {
				utils.RespondJSON(w, http.StatusInternalServerError, map[string]any{
					"success": false,
					"error":   "nilDB configuration missing",
				})
			})
		}

		if d.Users != nil {
			var restorer user.ProfileRestorer
			if d.ClientState != nil {
				restorer = d.ClientState
			}
			user.New(d.Users, restorer).RegisterRoutes(api)
		}

		if d.Chats != nil {
			chat.New(d.Chats).RegisterRoutes(api)
		}

		if d.ClientState != nil {
			client.New(d.ClientState).RegisterRoutes(api)
		}
	})

	return r
}
