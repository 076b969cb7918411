package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "client",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func tokenServer(t *testing.T, tokens ...string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "my-client", req.ClientID)
		assert.Equal(t, "my-secret", req.ClientSecret)
		assert.Equal(t, "client_credentials", req.GrantType)

		require.Less(t, calls, len(tokens), "unexpected extra token request")
		_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: tokens[calls]})
		calls++
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newTestSource(t *testing.T, server *httptest.Server) *ClientCredentialsSource {
	t.Helper()
	source, err := NewClientCredentialsSource(Config{
		TokenURL:     server.URL,
		ClientID:     "my-client",
		ClientSecret: "my-secret",
	})
	require.NoError(t, err)
	return source
}

func TestStaticTokenSource(t *testing.T) {
	token, err := StaticTokenSource("fixed").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed", token)
}

func TestNewClientCredentialsSource_Validation(t *testing.T) {
	_, err := NewClientCredentialsSource(Config{ClientID: "id", ClientSecret: "s"})
	assert.Error(t, err)

	_, err = NewClientCredentialsSource(Config{TokenURL: "http://localhost"})
	assert.Error(t, err)
}

func TestClientCredentialsSource_CachesFreshToken(t *testing.T) {
	fresh := signedToken(t, time.Now().Add(time.Hour))
	server, calls := tokenServer(t, fresh)
	source := newTestSource(t, server)

	for i := 0; i < 3; i++ {
		token, err := source.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fresh, token)
	}
	assert.Equal(t, 1, *calls, "fresh token should be fetched once")
}

func TestClientCredentialsSource_RefreshesExpiredToken(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Minute))
	fresh := signedToken(t, time.Now().Add(time.Hour))
	server, calls := tokenServer(t, expired, fresh)
	source := newTestSource(t, server)

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expired, token)

	token, err = source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, token)
	assert.Equal(t, 2, *calls)
}

func TestClientCredentialsSource_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	source := newTestSource(t, server)
	_, err := source.Token(context.Background())
	assert.ErrorContains(t, err, "status 401")
}

func TestTokenExpiry(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	assert.Equal(t, expiresAt.Unix(), tokenExpiry(signedToken(t, expiresAt)).Unix())

	assert.True(t, tokenExpiry("not-a-jwt").IsZero())
}
