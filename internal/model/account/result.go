package account

import "github.com/nilgpt/nilgpt/backend/internal/model/identity"

// StepResult is the outcome of one best-effort nilDB deletion.
type StepResult struct {
	Deleted bool    `json:"deleted"`
	Error   *string `json:"error"`
}

// Succeeded marks the step as deleted.
func (r *StepResult) Succeeded() {
	r.Deleted = true
	r.Error = nil
}

// Failed records err against the step.
func (r *StepResult) Failed(err error) {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	r.Deleted = false
	r.Error = &msg
}

// DeletionResults collects the per-collection outcomes.
type DeletionResults struct {
	User     StepResult `json:"user"`
	Chats    StepResult `json:"chats"`
	Messages StepResult `json:"messages"`
}

// AllDeleted reports whether every collection step succeeded.
func (r DeletionResults) AllDeleted() bool {
	return r.User.Deleted && r.Chats.Deleted && r.Messages.Deleted
}

// Deletion is the aggregate outcome of an account deletion.
type Deletion struct {
	Provider identity.Provider
	UserID   string
	Results  DeletionResults
}
