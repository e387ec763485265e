package chat

import (
	"time"

	"github.com/nilgpt/nilgpt/backend/internal/nildb"
)

// Role is the author of a message turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Message is one turn of a chat. Content is stored secret shared.
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	Creator   string    `json:"creator"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is the nilDB form of the message.
func (m Message) Document() nildb.Document {
	return nildb.Document{
		"_id":        m.ID,
		"chat_id":    m.ChatID,
		"creator":    m.Creator,
		"role":       string(m.Role),
		"content":    nildb.Allot(m.Content),
		"order":      m.Order,
		"created_at": m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
