// Package authprovider deletes users from the external identity providers.
package authprovider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
)

// Deleter removes a user account from an identity provider.
type Deleter interface {
	DeleteUser(ctx context.Context, userID string) error
}

// Error is a failed provider call. Status is 0 when no response was received.
type Error struct {
	Provider identity.Provider
	Status   int
	Message  string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s responded %d: %s", e.Provider, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return errs.ErrUpstream }

// HTTPStatus is the status reported to callers for this failure.
func (e *Error) HTTPStatus() int {
	if e.Status >= 400 && e.Status <= 599 {
		return e.Status
	}
	return http.StatusInternalServerError
}

func defaultHTTPClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// do sends req and converts non-2xx answers into *Error. statusMessage picks
// the message reported for a failed response.
func do(client *http.Client, provider identity.Provider, req *http.Request, statusMessage func(resp *http.Response, body string) string) error {
	resp, err := client.Do(req)
	if err != nil {
		return &Error{Provider: provider, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &Error{
		Provider: provider,
		Status:   resp.StatusCode,
		Message:  statusMessage(resp, strings.TrimSpace(string(raw))),
	}
}
