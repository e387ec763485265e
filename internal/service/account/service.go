package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nilgpt/nilgpt/backend/internal/authprovider"
	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/logging"
	"github.com/nilgpt/nilgpt/backend/internal/metrics"
	accountModel "github.com/nilgpt/nilgpt/backend/internal/model/account"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
	"github.com/nilgpt/nilgpt/backend/internal/nildb"
)

//go:generate mockgen -destination=../../mocks/mock_account.go -package=mocks github.com/nilgpt/nilgpt/backend/internal/service/account DataStore,ProviderDeleter

// DataStore is the keyed delete operation of the encrypted data store.
type DataStore interface {
	DeleteData(ctx context.Context, collection string, filter nildb.Filter) (nildb.DeleteResult, error)
}

// ProviderDeleter removes the account from its identity provider.
type ProviderDeleter interface {
	DeleteUser(ctx context.Context, userID string) error
}

// Collections names the nilDB collections holding account data.
type Collections struct {
	Users    string
	Chats    string
	Messages string
}

// Config holds the values checked before any external call.
type Config struct {
	// Salt is the namespace for Privy record keys.
	Salt        string
	Collections Collections
}

// ConfigError reports missing configuration detected before any external call.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string { return e.Message }
func (e *ConfigError) Unwrap() error { return e.Err }

// ProviderError is a failed identity provider delete. The nilDB results
// gathered beforehand travel with it.
type ProviderError struct {
	Provider identity.Provider
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("Failed to delete user from %s: %s", e.Provider.Title(), providerMessage(e.Err))
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Service deletes an account's data from nilDB and its identity provider.
type Service struct {
	store     DataStore
	providers map[identity.Provider]ProviderDeleter
	cfg       Config
}

// NewService wires the orchestrator. A provider absent from providers is
// treated as unconfigured.
func NewService(store DataStore, providers map[identity.Provider]ProviderDeleter, cfg Config) *Service {
	configured := make(map[identity.Provider]ProviderDeleter, len(providers))
	for p, d := range providers {
		if d != nil {
			configured[p] = d
		}
	}
	return &Service{store: store, providers: configured, cfg: cfg}
}

// DeleteAccount removes every record of acct; see Deletion for the outcome.
//
// Configuration is validated first. The three collection deletes are each
// attempted once and independently; the provider delete runs last, whatever
// their outcome. A provider failure is returned as *ProviderError alongside
// the populated Deletion.
func (s *Service) DeleteAccount(ctx context.Context, acct identity.Account) (accountModel.Deletion, error) {
	out := accountModel.Deletion{Provider: acct.Provider(), UserID: acct.UserID()}

	namespace, err := identity.ParseNamespace(s.cfg.Salt)
	if err != nil {
		msg := "SALT environment variable must be a UUID"
		if errors.Is(err, identity.ErrMissingNamespace) {
			msg = "SALT environment variable is not set"
		}
		return out, &ConfigError{Message: msg, Err: err}
	}

	deleter, ok := s.providers[acct.Provider()]
	if !ok {
		return out, &ConfigError{
			Message: fmt.Sprintf("%s configuration missing", acct.Provider().Title()),
			Err:     errs.ErrConfig,
		}
	}

	log := logging.FromContext(ctx).With(slog.String("provider", string(acct.Provider())))
	recordKey := acct.RecordKey(namespace)

	steps := []struct {
		name       string
		collection string
		filter     nildb.Filter
		result     *accountModel.StepResult
	}{
		{"user", s.cfg.Collections.Users, nildb.Filter{"_id": recordKey}, &out.Results.User},
		{"chats", s.cfg.Collections.Chats, nildb.Filter{"creator": acct.UserID()}, &out.Results.Chats},
		{"messages", s.cfg.Collections.Messages, nildb.Filter{"creator": acct.UserID()}, &out.Results.Messages},
	}

	for _, step := range steps {
		err := s.deleteStep(ctx, step.collection, step.filter)
		metrics.DeletionSteps.WithLabelValues(step.name, metrics.Outcome(err)).Inc()
		if err != nil {
			step.result.Failed(err)
			log.Error("failed to delete account data from nilDB", slog.String("collection", step.name), slog.Any("err", err))
			continue
		}
		step.result.Succeeded()
	}

	err = deleter.DeleteUser(ctx, acct.UserID())
	metrics.ProviderDeletes.WithLabelValues(string(acct.Provider()), metrics.Outcome(err)).Inc()
	if err != nil {
		log.Error("identity provider delete user failed", slog.Any("err", err))
		return out, &ProviderError{Provider: acct.Provider(), Status: providerStatus(err), Err: err}
	}

	log.Info("account deleted",
		slog.Bool("user_record", out.Results.User.Deleted),
		slog.Bool("chats", out.Results.Chats.Deleted),
		slog.Bool("messages", out.Results.Messages.Deleted),
	)
	return out, nil
}

// deleteStep converts panics and empty deletions into step failures.
func (s *Service) deleteStep(ctx context.Context, collection string, filter nildb.Filter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delete panicked: %v", r)
		}
	}()

	if collection == "" {
		return nildb.ErrCollectionRequired
	}

	res, err := s.store.DeleteData(ctx, collection, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return nildb.ErrNothingDeleted
	}
	return nil
}

func providerStatus(err error) int {
	var pe *authprovider.Error
	if errors.As(err, &pe) {
		return pe.HTTPStatus()
	}
	return http.StatusInternalServerError
}

func providerMessage(err error) string {
	var pe *authprovider.Error
	switch {
	case errors.As(err, &pe):
		return pe.Message
	case err == nil:
		return "Unknown error"
	default:
		return err.Error()
	}
}
