package authprovider

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
)

const DefaultPrivyAPIURL = "https://api.privy.io"

// Privy deletes users through the Privy REST API.
type Privy struct {
	apiURL string
	appID  string
	secret string
	client *http.Client
}

// NewPrivy builds a client for the given app credentials.
func NewPrivy(apiURL, appID, appSecret string, client *http.Client) *Privy {
	if apiURL == "" {
		apiURL = DefaultPrivyAPIURL
	}
	return &Privy{
		apiURL: strings.TrimRight(apiURL, "/"),
		appID:  appID,
		secret: appSecret,
		client: defaultHTTPClient(client),
	}
}

// DeleteUser removes the user with the given did:privy: identifier.
func (p *Privy) DeleteUser(ctx context.Context, did string) error {
	endpoint := fmt.Sprintf("%s/v1/users/%s", p.apiURL, url.PathEscape(did))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return &Error{Provider: identity.ProviderPrivy, Message: err.Error()}
	}

	basic := base64.StdEncoding.EncodeToString([]byte(p.appID + ":" + p.secret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("privy-app-id", p.appID)

	return do(p.client, identity.ProviderPrivy, req, func(resp *http.Response, _ string) string {
		return http.StatusText(resp.StatusCode)
	})
}
