package nildb

import (
	"context"
	"fmt"
)

// Records routes documents to the plain or the blindfolded write path
// depending on whether they carry %allot markers.
type Records struct {
	client *Client
	sharer Sharer
}

// NewRecords wraps client. A nil sharer defaults to XORSharer.
func NewRecords(client *Client, sharer Sharer) *Records {
	if sharer == nil {
		sharer = XORSharer{}
	}
	return &Records{client: client, sharer: sharer}
}

// Write stores a single document.
func (r *Records) Write(ctx context.Context, collection string, doc Document) error {
	if collection == "" {
		return ErrCollectionRequired
	}
	if !ContainsAllot(doc) {
		return r.client.CreateData(ctx, collection, []Document{doc})
	}

	shares, err := r.sharer.Share(doc, r.client.NodeCount())
	if err != nil {
		return fmt.Errorf("blindfold document: %w", err)
	}
	perNode := make([][]Document, len(shares))
	for i, share := range shares {
		perNode[i] = []Document{share}
	}
	return r.client.CreateShares(ctx, collection, perNode)
}

// Update applies operator (default "$set") with fields to matching documents.
func (r *Records) Update(ctx context.Context, collection string, filter Filter, fields Document, operator string) error {
	if collection == "" {
		return ErrCollectionRequired
	}
	if operator == "" {
		operator = "$set"
	}
	if !ContainsAllot(fields) {
		return r.client.UpdateData(ctx, collection, filter, Document{operator: fields})
	}

	shares, err := r.sharer.Share(fields, r.client.NodeCount())
	if err != nil {
		return fmt.Errorf("blindfold update: %w", err)
	}
	perNode := make([]Document, len(shares))
	for i, share := range shares {
		perNode[i] = Document{operator: share}
	}
	return r.client.UpdateShares(ctx, collection, filter, perNode)
}

// Find returns matching documents.
func (r *Records) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	return r.client.FindData(ctx, collection, filter)
}

// DeleteData removes matching documents.
func (r *Records) DeleteData(ctx context.Context, collection string, filter Filter) (DeleteResult, error) {
	return r.client.DeleteData(ctx, collection, filter)
}
