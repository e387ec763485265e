package nildb

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Options configures a Client.
type Options struct {
	NodeURLs   []string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client sends every operation to all nodes of the cluster.
type Client struct {
	nodes []*node
}

// New builds a client for the given nodes.
func New(opts Options) (*Client, error) {
	urls := lo.Compact(lo.Map(opts.NodeURLs, func(u string, _ int) string {
		return strings.TrimRight(strings.TrimSpace(u), "/")
	}))
	if len(urls) == 0 {
		return nil, ErrNoNodes
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	nodes := lo.Map(urls, func(u string, _ int) *node {
		return &node{baseURL: u, token: opts.Token, client: httpClient}
	})
	return &Client{nodes: nodes}, nil
}

// NodeCount is the number of configured nodes.
func (c *Client) NodeCount() int { return len(c.nodes) }

// each runs fn against every node concurrently. A failing node does not
// cancel the others.
func (c *Client) each(ctx context.Context, fn func(ctx context.Context, i int, n *node) error) error {
	var g errgroup.Group
	for i, n := range c.nodes {
		g.Go(func() error { return fn(ctx, i, n) })
	}
	return g.Wait()
}

// CreateData writes the same documents to every node.
func (c *Client) CreateData(ctx context.Context, collection string, docs []Document) error {
	if collection == "" {
		return ErrCollectionRequired
	}
	return c.each(ctx, func(ctx context.Context, _ int, n *node) error {
		return n.post(ctx, "create", map[string]any{"collection": collection, "data": docs}, nil)
	})
}

// CreateShares writes perNode[i] to node i.
func (c *Client) CreateShares(ctx context.Context, collection string, perNode [][]Document) error {
	if collection == "" {
		return ErrCollectionRequired
	}
	if len(perNode) != len(c.nodes) {
		return fmt.Errorf("got %d share sets for %d nodes", len(perNode), len(c.nodes))
	}
	return c.each(ctx, func(ctx context.Context, i int, n *node) error {
		return n.post(ctx, "create", map[string]any{"collection": collection, "data": perNode[i]}, nil)
	})
}

// UpdateData applies the same update document on every node.
func (c *Client) UpdateData(ctx context.Context, collection string, filter Filter, update Document) error {
	if collection == "" {
		return ErrCollectionRequired
	}
	return c.each(ctx, func(ctx context.Context, _ int, n *node) error {
		return n.post(ctx, "update", map[string]any{"collection": collection, "filter": filter, "update": update}, nil)
	})
}

// UpdateShares applies perNode[i] as the update document on node i.
func (c *Client) UpdateShares(ctx context.Context, collection string, filter Filter, perNode []Document) error {
	if collection == "" {
		return ErrCollectionRequired
	}
	if len(perNode) != len(c.nodes) {
		return fmt.Errorf("got %d share updates for %d nodes", len(perNode), len(c.nodes))
	}
	return c.each(ctx, func(ctx context.Context, i int, n *node) error {
		return n.post(ctx, "update", map[string]any{"collection": collection, "filter": filter, "update": perNode[i]}, nil)
	})
}

// DeleteData removes matching documents on every node and reports the
// acknowledgement of the first configured node.
func (c *Client) DeleteData(ctx context.Context, collection string, filter Filter) (DeleteResult, error) {
	if collection == "" {
		return DeleteResult{}, ErrCollectionRequired
	}
	if len(filter) == 0 {
		return DeleteResult{}, ErrFilterRequired
	}

	results := make([]DeleteResult, len(c.nodes))
	err := c.each(ctx, func(ctx context.Context, i int, n *node) error {
		return n.post(ctx, "delete", map[string]any{"collection": collection, "filter": filter}, &results[i])
	})
	if err != nil {
		return DeleteResult{}, err
	}
	return results[0], nil
}

// FindData returns the documents matched by the first configured node.
func (c *Client) FindData(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}
	if filter == nil {
		filter = Filter{}
	}

	results := make([][]Document, len(c.nodes))
	err := c.each(ctx, func(ctx context.Context, i int, n *node) error {
		return n.post(ctx, "find", map[string]any{"collection": collection, "filter": filter}, &results[i])
	})
	if err != nil {
		return nil, err
	}
	return results[0], nil
}
