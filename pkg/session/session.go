// Package session provides bearer-token sessions for Faculty service clients.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies bearer tokens for authenticating service requests.
type TokenSource interface {
	// Token returns a token valid for use now.
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a source that always yields the given token.
func StaticTokenSource(token string) TokenSource {
	return staticSource(token)
}

type staticSource string

func (s staticSource) Token(_ context.Context) (string, error) {
	return string(s), nil
}

// expiryLeeway is how long before a token's exp claim it is considered
// stale and refreshed.
const expiryLeeway = 30 * time.Second

// Config holds credentials and the auth service endpoint for a
// client-credentials session.
type Config struct {
	// TokenURL is the auth service's token endpoint.
	TokenURL string

	// ClientID and ClientSecret identify the caller.
	ClientID     string
	ClientSecret string

	// HTTPClient overrides the client used for token requests.
	HTTPClient *http.Client
}

// ClientCredentialsSource exchanges client credentials for bearer tokens
// and caches them until shortly before expiry.
type ClientCredentialsSource struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewClientCredentialsSource creates a token source from credentials.
func NewClientCredentialsSource(cfg Config) (*ClientCredentialsSource, error) {
	if cfg.TokenURL == "" {
		return nil, fmt.Errorf("token URL is required")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("client credentials are required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &ClientCredentialsSource{
		cfg:        cfg,
		httpClient: httpClient,
		now:        time.Now,
	}, nil
}

// Token returns the cached token, refreshing it if it is missing or
// within the expiry leeway.
func (s *ClientCredentialsSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Add(expiryLeeway).Before(s.expires) {
		return s.token, nil
	}

	token, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}

	s.token = token
	s.expires = tokenExpiry(token)
	return s.token, nil
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *ClientCredentialsSource) fetch(ctx context.Context) (string, error) {
	body, err := json.Marshal(tokenRequest{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		GrantType:    "client_credentials",
	})
	if err != nil {
		return "", fmt.Errorf("encoding token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var decoded tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if decoded.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty token")
	}

	return decoded.AccessToken, nil
}

// tokenExpiry reads the exp claim from the token without verifying its
// signature. The services verify tokens; the client only needs the claim
// to schedule refreshes. Tokens without a readable exp claim are treated
// as already expired so every call refreshes.
func tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
