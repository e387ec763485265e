package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/logging"
	"github.com/nilgpt/nilgpt/backend/internal/metrics"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
	"github.com/nilgpt/nilgpt/backend/internal/model/utm"
	"github.com/nilgpt/nilgpt/backend/internal/nildb"
)

//go:generate mockgen -destination=../../mocks/mock_user.go -package=mocks -mock_names=RecordStore=MockUserRecordStore github.com/nilgpt/nilgpt/backend/internal/service/user RecordStore

// RecordStore reads and writes user records.
type RecordStore interface {
	Find(ctx context.Context, collection string, filter nildb.Filter) ([]nildb.Document, error)
	Write(ctx context.Context, collection string, doc nildb.Document) error
}

// Result of EnsureUser. User is set only for existing records.
type Result struct {
	Exists bool
	User   nildb.Document
}

// Service creates the per-account user record on first access.
type Service struct {
	records    RecordStore
	collection string
	salt       string
	now        func() time.Time
}

func NewService(records RecordStore, collection, salt string) *Service {
	return &Service{records: records, collection: collection, salt: salt, now: time.Now}
}

// EnsureUser returns the existing user record of acct or writes a new one.
// params are stored only on creation.
func (s *Service) EnsureUser(ctx context.Context, acct identity.Account, params utm.Params) (Result, error) {
	namespace, err := identity.ParseNamespace(s.salt)
	if err != nil {
		return Result{}, err
	}
	if s.collection == "" {
		return Result{}, fmt.Errorf("user collection: %w", errs.ErrConfig)
	}

	log := logging.FromContext(ctx)
	key := acct.RecordKey(namespace)

	found, err := s.records.Find(ctx, s.collection, nildb.Filter{"_id": key})
	if err != nil {
		metrics.UsersCreated.WithLabelValues(metrics.OutcomeFailed).Inc()
		return Result{}, fmt.Errorf("find user record: %w", err)
	}
	if len(found) > 0 {
		metrics.UsersCreated.WithLabelValues("existing").Inc()
		return Result{Exists: true, User: found[0]}, nil
	}

	doc := nildb.Document{
		"_id":        key,
		"provider":   string(acct.Provider()),
		"created_at": s.now().UTC().Format(time.RFC3339),
	}
	if !params.Empty() {
		doc["utm"] = map[string]string(params)
	}

	if err := s.records.Write(ctx, s.collection, doc); err != nil {
		metrics.UsersCreated.WithLabelValues(metrics.OutcomeFailed).Inc()
		return Result{}, fmt.Errorf("write user record: %w", err)
	}
	metrics.UsersCreated.WithLabelValues("created").Inc()
	log.Info("user record created", slog.String("provider", string(acct.Provider())), slog.Bool("utm", !params.Empty()))
	return Result{}, nil
}

// ProfileUTM extracts the stored UTM parameters of a user record.
func ProfileUTM(doc nildb.Document) utm.Params {
	raw := map[string]string{}
	switch v := doc["utm"].(type) {
	case map[string]any:
		for k, val := range v {
			if s, ok := val.(string); ok {
				raw[k] = s
			}
		}
	case map[string]string:
		raw = v
	}
	return utm.Sanitize(raw)
}
