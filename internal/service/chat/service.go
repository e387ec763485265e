package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/logging"
	"github.com/nilgpt/nilgpt/backend/internal/metrics"
	"github.com/nilgpt/nilgpt/backend/internal/model/chat"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
	"github.com/nilgpt/nilgpt/backend/internal/model/persona"
	"github.com/nilgpt/nilgpt/backend/internal/nildb"
)

//go:generate mockgen -destination=../../mocks/mock_chat.go -package=mocks -mock_names=RecordStore=MockChatRecordStore github.com/nilgpt/nilgpt/backend/internal/service/chat RecordStore

var (
	ErrPersonaRequired = fmt.Errorf("persona id is required: %w", errs.ErrInvalidInput)
	ErrPersonaUnknown  = fmt.Errorf("persona not found: %w", errs.ErrInvalidInput)
	ErrTitleRequired   = fmt.Errorf("title is required: %w", errs.ErrInvalidInput)
	ErrChatIDInvalid   = fmt.Errorf("chat id must be a UUID: %w", errs.ErrInvalidInput)
	ErrRoleInvalid     = fmt.Errorf("role must be user, assistant or system: %w", errs.ErrInvalidInput)
	ErrContentRequired = fmt.Errorf("content is required: %w", errs.ErrInvalidInput)
)

// RecordStore writes chat and message records.
type RecordStore interface {
	Write(ctx context.Context, collection string, doc nildb.Document) error
	Update(ctx context.Context, collection string, filter nildb.Filter, fields nildb.Document, operator string) error
}

// PersonaCatalogue resolves persona ids.
type PersonaCatalogue interface {
	FindByID(id string) (persona.Persona, bool)
}

// Collections names the record collections.
type Collections struct {
	Chats    string
	Messages string
}

// Service stores conversations in nilDB. Every record carries the raw
// provider user id as creator, the key account deletion filters on.
type Service struct {
	records     RecordStore
	personas    PersonaCatalogue
	collections Collections
	now         func() time.Time
}

func NewService(records RecordStore, personas PersonaCatalogue, collections Collections) *Service {
	return &Service{records: records, personas: personas, collections: collections, now: time.Now}
}

// CreateChat provisions a chat bound to a persona.
func (s *Service) CreateChat(ctx context.Context, acct identity.Account, personaID, title string) (chat.Chat, error) {
	if personaID == "" {
		return chat.Chat{}, ErrPersonaRequired
	}
	if _, ok := s.personas.FindByID(personaID); !ok {
		return chat.Chat{}, ErrPersonaUnknown
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return chat.Chat{}, ErrTitleRequired
	}

	c := chat.Chat{
		ID:        uuid.NewString(),
		Creator:   acct.UserID(),
		Persona:   personaID,
		Title:     title,
		CreatedAt: s.now().UTC(),
	}

	err := s.records.Write(ctx, s.collections.Chats, c.Document())
	metrics.RecordWrites.WithLabelValues("chat", metrics.Outcome(err)).Inc()
	if err != nil {
		return chat.Chat{}, fmt.Errorf("write chat: %w", err)
	}
	logging.FromContext(ctx).Debug("chat created", slog.String("chat_id", c.ID), slog.String("persona", personaID))
	return c, nil
}

// RenameChat replaces the title of a chat owned by acct.
func (s *Service) RenameChat(ctx context.Context, acct identity.Account, chatID, title string) error {
	if _, err := uuid.Parse(chatID); err != nil {
		return ErrChatIDInvalid
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}

	err := s.records.Update(ctx, s.collections.Chats,
		nildb.Filter{"_id": chatID, "creator": acct.UserID()},
		nildb.Document{"title": nildb.Allot(title)},
		"$set",
	)
	metrics.RecordWrites.WithLabelValues("chat_title", metrics.Outcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("update chat title: %w", err)
	}
	return nil
}

// SaveMessage appends a message to a chat. ID and CreatedAt are assigned here.
func (s *Service) SaveMessage(ctx context.Context, acct identity.Account, message chat.Message) (chat.Message, error) {
	if _, err := uuid.Parse(message.ChatID); err != nil {
		return chat.Message{}, ErrChatIDInvalid
	}
	if !message.Role.Valid() {
		return chat.Message{}, ErrRoleInvalid
	}
	if message.Content == "" {
		return chat.Message{}, ErrContentRequired
	}
	if message.Order < 0 {
		return chat.Message{}, errors.Join(errs.ErrInvalidInput, errors.New("order must not be negative"))
	}

	message.ID = uuid.NewString()
	message.Creator = acct.UserID()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = s.now().UTC()
	}

	err := s.records.Write(ctx, s.collections.Messages, message.Document())
	metrics.RecordWrites.WithLabelValues("message", metrics.Outcome(err)).Inc()
	if err != nil {
		return chat.Message{}, fmt.Errorf("write message: %w", err)
	}
	return message, nil
}
