package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nilgpt/nilgpt/backend/internal/authprovider"
	"github.com/nilgpt/nilgpt/backend/internal/clientstate"
	"github.com/nilgpt/nilgpt/backend/internal/config"
	"github.com/nilgpt/nilgpt/backend/internal/handler"
	"github.com/nilgpt/nilgpt/backend/internal/logging"
	"github.com/nilgpt/nilgpt/backend/internal/metrics"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
	"github.com/nilgpt/nilgpt/backend/internal/model/persona"
	"github.com/nilgpt/nilgpt/backend/internal/model/utm"
	"github.com/nilgpt/nilgpt/backend/internal/nildb"
	accountService "github.com/nilgpt/nilgpt/backend/internal/service/account"
	chatService "github.com/nilgpt/nilgpt/backend/internal/service/chat"
	userService "github.com/nilgpt/nilgpt/backend/internal/service/user"
	"github.com/nilgpt/nilgpt/backend/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("err", err))
		os.Exit(1)
	}

	log := logging.Init(logging.Config{
		Version:   cfg.Logging.Version,
		Env:       logging.ParseEnv(cfg.Logging.Env),
		Backend:   logging.Backend(cfg.Logging.Backend),
		Debug:     cfg.Logging.Debug,
		AddSource: cfg.Logging.AddSource,
	})
	if envErr != nil {
		log.Warn("no .env file loaded, continuing with system environment variables only", slog.Any("err", envErr))
	}
	metrics.Register()

	personaStore := persona.NewMemoryStore(persona.Seed())
	mapping := loadUTMMapping(log, cfg.Web, personaStore)

	deps := handler.Deps{
		Personas:    personaStore,
		ClientState: newClientState(ctx, log, cfg.ClientState, mapping, personaStore),
		Verifier:    newVerifier(log, cfg),
		AdminAPIKey: cfg.Account.AdminAPIKey,
		Origins:     cfg.Web.Origins(),
		Version:     cfg.Logging.Version,
	}

	if cfg.NilDB.Enabled() {
		client, err := nildb.New(nildb.Options{
			NodeURLs: cfg.NilDB.Nodes(),
			Token:    cfg.NilDB.APIToken,
			Timeout:  cfg.NilDB.Timeout,
		})
		if err != nil {
			log.Error("failed to initialise nilDB client", slog.Any("err", err))
			os.Exit(1)
		}
		records := nildb.NewRecords(client, nil)

		deps.Accounts = accountService.NewService(records, newProviders(log, cfg), accountService.Config{
			Salt: cfg.Account.Salt,
			Collections: accountService.Collections{
				Users:    cfg.NilDB.UserCollectionID,
				Chats:    cfg.NilDB.ChatsCollectionID,
				Messages: cfg.NilDB.MessagesCollectionID,
			},
		})
		deps.Users = userService.NewService(records, cfg.NilDB.UserCollectionID, cfg.Account.Salt)
		deps.Chats = chatService.NewService(records, personaStore, chatService.Collections{
			Chats:    cfg.NilDB.ChatsCollectionID,
			Messages: cfg.NilDB.MessagesCollectionID,
		})
		log.Info("nilDB client initialised", slog.Int("nodes", client.NodeCount()))
	} else {
		log.Warn("NILDB_NODE_URLS not set, record and deletion routes disabled")
	}

	startServer(ctx, log, cfg.Server, handler.NewRouter(deps))
}

// newProviders returns the identity providers with admin credentials.
func newProviders(log *slog.Logger, cfg *config.Config) map[identity.Provider]accountService.ProviderDeleter {
	providers := make(map[identity.Provider]accountService.ProviderDeleter, 2)
	if cfg.Supabase.AdminEnabled() {
		providers[identity.ProviderSupabase] = authprovider.NewSupabase(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, nil)
	} else {
		log.Warn("Supabase admin credentials not set, Supabase account deletion disabled")
	}
	if cfg.Privy.AdminEnabled() {
		providers[identity.ProviderPrivy] = authprovider.NewPrivy(cfg.Privy.APIURL, cfg.Privy.AppID, cfg.Privy.AppSecret, nil)
	} else {
		log.Warn("Privy app credentials not set, Privy account deletion disabled")
	}
	return providers
}

func newVerifier(log *slog.Logger, cfg *config.Config) session.Verifier {
	var chain session.Chain
	if cfg.Supabase.JWTSecret != "" {
		chain = append(chain, session.NewSupabaseVerifier(cfg.Supabase.JWTSecret))
	}
	if cfg.Privy.VerificationKey != "" && cfg.Privy.AppID != "" {
		v, err := session.NewPrivyVerifier(cfg.Privy.VerificationKey, cfg.Privy.AppID)
		if err != nil {
			log.Error("invalid PRIVY_VERIFICATION_KEY, Privy sessions disabled", slog.Any("err", err))
		} else {
			chain = append(chain, v)
		}
	}
	if len(chain) == 0 {
		log.Warn("no session verification keys configured, all requests are anonymous")
		return nil
	}
	return chain
}

func loadUTMMapping(log *slog.Logger, cfg config.WebConfig, personas *persona.MemoryStore) *utm.Mapping {
	if cfg.UTMPersonaMapPath == "" {
		return utm.DefaultMapping()
	}
	known := func(id string) bool {
		_, ok := personas.FindByID(id)
		return ok
	}

	m, err := utm.LoadMapping(cfg.UTMPersonaMapPath)
	if err == nil {
		err = m.Validate(known)
	}
	if err != nil {
		log.Error("failed to load UTM persona mapping, using defaults", slog.String("path", cfg.UTMPersonaMapPath), slog.Any("err", err))
		return utm.DefaultMapping()
	}
	return m
}

func newClientState(ctx context.Context, log *slog.Logger, cfg config.ClientStateConfig, mapping *utm.Mapping, personas *persona.MemoryStore) *clientstate.Store {
	sessionTier := clientstate.NewMemoryStorage(cfg.SessionTTL)
	var local clientstate.Storage = clientstate.NewMemoryStorage(0)

	if cfg.RedisAddr != "" {
		cli, err := clientstate.NewRedisClient(clientstate.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err = cli.Ping(pingCtx).Err()
			cancel()
		}
		if err != nil {
			log.Warn("redis unavailable, keeping client preferences in memory", slog.String("addr", cfg.RedisAddr), slog.Any("err", err))
		} else {
			local = clientstate.NewRedisStorage(cli, "nilgpt:client:local", 0)
			log.Info("client preferences stored in redis", slog.String("addr", cfg.RedisAddr))
		}
	}

	go sweep(ctx, sessionTier, cfg.SessionTTL)
	return clientstate.NewStore(sessionTier, local, mapping, personas)
}

// sweep drops expired session state until ctx ends.
func sweep(ctx context.Context, s *clientstate.MemoryStorage, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logging.L().Debug("expired client sessions dropped", slog.Int("count", n))
			}
		}
	}
}

func startServer(ctx context.Context, log *slog.Logger, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: serverCfg.ReadHeaderTimeout,
		IdleTimeout:       serverCfg.IdleTimeout,
	}

	log.Info("nilGPT backend listening", slog.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv, serverCfg.ShutdownTimeout); err != nil {
		log.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
}

func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
