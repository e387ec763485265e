package chat

import (
	"time"

	"github.com/nilgpt/nilgpt/backend/internal/nildb"
)

// Chat is a conversation record. Title is stored secret shared.
type Chat struct {
	ID        string    `json:"id"`
	Creator   string    `json:"creator"`
	Persona   string    `json:"persona"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is the nilDB form of the chat.
func (c Chat) Document() nildb.Document {
	return nildb.Document{
		"_id":        c.ID,
		"creator":    c.Creator,
		"persona":    c.Persona,
		"title":      nildb.Allot(c.Title),
		"created_at": c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
