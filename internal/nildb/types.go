// Package nildb talks to the nodes of a nilDB cluster.
package nildb

import (
	"errors"
	"fmt"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
)

// Filter selects documents within a collection.
type Filter map[string]any

// Document is an opaque record stored in a collection.
type Document map[string]any

// DeleteResult is the acknowledgement reported by a node for a delete.
type DeleteResult struct {
	DeletedCount int  `json:"deletedCount"`
	Acknowledged bool `json:"acknowledged"`
}

var (
	ErrCollectionRequired = fmt.Errorf("collection id is required: %w", errs.ErrConfig)
	ErrFilterRequired     = fmt.Errorf("filter is required and cannot be empty: %w", errs.ErrInvalidInput)
	ErrNoNodes            = fmt.Errorf("no nilDB nodes configured: %w", errs.ErrConfig)
	ErrNothingDeleted     = errors.New("no matching records")
)

// NodeError is a non-2xx answer from a node.
type NodeError struct {
	Node   string
	Status int
	Body   string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("nilDB node %s responded %d: %s", e.Node, e.Status, e.Body)
}

func (e *NodeError) Unwrap() error { return errs.ErrUpstream }
