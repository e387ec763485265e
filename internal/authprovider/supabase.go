package authprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
)

// Supabase deletes users through the GoTrue admin API.
type Supabase struct {
	baseURL        string
	serviceRoleKey string
	client         *http.Client
}

// NewSupabase builds an admin client for the project at baseURL.
func NewSupabase(baseURL, serviceRoleKey string, client *http.Client) *Supabase {
	return &Supabase{
		baseURL:        strings.TrimRight(baseURL, "/"),
		serviceRoleKey: serviceRoleKey,
		client:         defaultHTTPClient(client),
	}
}

// DeleteUser removes the auth user with the given UUID.
func (s *Supabase) DeleteUser(ctx context.Context, userID string) error {
	endpoint := fmt.Sprintf("%s/auth/v1/admin/users/%s", s.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return &Error{Provider: identity.ProviderSupabase, Message: err.Error()}
	}
	req.Header.Set("apikey", s.serviceRoleKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceRoleKey)

	return do(s.client, identity.ProviderSupabase, req, supabaseMessage)
}

// supabaseMessage extracts the GoTrue error text, falling back to the status.
func supabaseMessage(resp *http.Response, body string) string {
	var payload struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Error   string `json:"error_description"`
	}
	if json.Unmarshal([]byte(body), &payload) == nil {
		for _, m := range []string{payload.Msg, payload.Message, payload.Error} {
			if m != "" {
				return m
			}
		}
	}
	return http.StatusText(resp.StatusCode)
}
