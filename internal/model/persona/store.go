package persona

import "github.com/samber/lo"

// Store exposes persona retrieval for HTTP handlers.
type Store interface {
	List() []Persona
	FindByID(id string) (Persona, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Persona
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied personas.
func NewMemoryStore(items []Persona) *MemoryStore {
	return &MemoryStore{items: append([]Persona(nil), items...)}
}

// List returns the catalogue in seed order.
func (s *MemoryStore) List() []Persona {
	return append([]Persona(nil), s.items...)
}

// Public returns the personas shown outside the Nilia entry point.
func (s *MemoryStore) Public() []Persona {
	return lo.Reject(s.items, func(p Persona, _ int) bool { return p.NiliaOnly })
}

// FindByID looks up a persona by identifier.
func (s *MemoryStore) FindByID(id string) (Persona, bool) {
	return lo.Find(s.items, func(p Persona) bool { return p.ID == id })
}
