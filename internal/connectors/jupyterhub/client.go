// Package jupyterhub fetches the identity of the user running a dashboard
// session from the JupyterHub dashboards API.
package jupyterhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cajal/microns-kit/internal/core/domain"
)

// userInfoPath is the hub endpoint exposing the current user.
const userInfoPath = "/hub/dashboards-api/hub-info/user"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// User is the hub's record of the current user.
type User struct {
	Name   string   `json:"name"`
	Admin  bool     `json:"admin"`
	Groups []string `json:"groups"`
}

// FetchUser returns the user behind the given hub session. The token is the
// JupyterHub API token of the session; it may be empty on deployments that
// authenticate by cookie.
func FetchUser(ctx context.Context, hubURL, token string) (*User, error) {
	if hubURL == "" {
		return nil, fmt.Errorf("%w: hub URL is required", domain.ErrInvalidInput)
	}

	url := strings.TrimSuffix(hubURL, "/") + userInfoPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	client := &http.Client{Timeout: DefaultTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request failed with status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	if user.Name == "" {
		return nil, fmt.Errorf("%w: hub returned no user", domain.ErrNotFound)
	}
	return &user, nil
}
