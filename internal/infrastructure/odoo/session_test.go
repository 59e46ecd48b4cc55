package odoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name:    "valid config",
			config:  &Config{URL: "http://odoo.local/", Database: "prod", Login: "sync", Password: "secret"},
			wantErr: nil,
		},
		{
			name:    "missing URL",
			config:  &Config{Database: "prod", Login: "sync", Password: "secret"},
			wantErr: ErrConfigMissingURL,
		},
		{
			name:    "missing database",
			config:  &Config{URL: "http://odoo.local", Login: "sync", Password: "secret"},
			wantErr: ErrConfigMissingDatabase,
		},
		{
			name:    "missing login",
			config:  &Config{URL: "http://odoo.local", Database: "prod", Password: "secret"},
			wantErr: ErrConfigMissingLogin,
		},
		{
			name:    "missing password",
			config:  &Config{URL: "http://odoo.local", Database: "prod", Login: "sync"},
			wantErr: ErrConfigMissingPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://odoo.local", tt.config.URL, "trailing slash trimmed")
			assert.Equal(t, 30*time.Second, tt.config.Timeout, "default timeout applied")
		})
	}
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

type rpcCall struct {
	Path   string
	Model  string
	Method string
	Cookie string
	Params json.RawMessage
}

// fakeOdoo is an httptest-backed Odoo endpoint recording every RPC call.
type fakeOdoo struct {
	t *testing.T

	authBodySessionID string
	authCookie        string
	authUID           string // raw JSON, e.g. "7" or "false"

	callResult json.RawMessage
	callError  *rpcErrorBody

	calls []rpcCall
}

func (f *fakeOdoo) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var envelope struct {
			Params json.RawMessage `json:"params"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&envelope))

		call := rpcCall{Path: r.URL.Path, Params: envelope.Params}
		if c, err := r.Cookie("session_id"); err == nil {
			call.Cookie = c.Value
		}

		switch r.URL.Path {
		case "/web/session/authenticate":
			f.calls = append(f.calls, call)
			if f.authCookie != "" {
				http.SetCookie(w, &http.Cookie{Name: "session_id", Value: f.authCookie})
			}
			uid := f.authUID
			if uid == "" {
				uid = "7"
			}
			result := `{"session_id":"` + f.authBodySessionID + `","uid":` + uid + `}`
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + result + `}`))
		case "/web/dataset/call_kw":
			var params callKwParams
			require.NoError(f.t, json.Unmarshal(envelope.Params, &params))
			call.Model = params.Model
			call.Method = params.Method
			f.calls = append(f.calls, call)

			if f.callError != nil {
				errBody, _ := json.Marshal(f.callError)
				_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":` + string(errBody) + `}`))
				return
			}
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + string(f.callResult) + `}`))
		default:
			f.t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestSession(t *testing.T, fake *fakeOdoo) *Session {
	t.Helper()
	fake.t = t
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)
	return NewSession(&Config{
		URL:      server.URL,
		Database: "prod",
		Login:    "sync",
		Password: "secret",
	})
}

// ---------------------------------------------------------------------------
// Authenticate Tests
// ---------------------------------------------------------------------------

func TestSession_Authenticate_SessionFromBody(t *testing.T) {
	session := newTestSession(t, &fakeOdoo{authBodySessionID: "body-token"})

	require.NoError(t, session.Authenticate(context.Background()))
	assert.True(t, session.Authenticated())
	assert.Equal(t, "body-token", session.sessionID)
}

func TestSession_Authenticate_CookieTakesPrecedence(t *testing.T) {
	fake := &fakeOdoo{
		authBodySessionID: "body-token",
		authCookie:        "cookie-token",
		callResult:        json.RawMessage(`[]`),
	}
	session := newTestSession(t, fake)

	require.NoError(t, session.Authenticate(context.Background()))
	assert.Equal(t, "cookie-token", session.sessionID)

	// The cookie credential must ride on subsequent calls.
	_, _, err := session.SearchFirst(context.Background(), "res.partner", []domainsync.Filter{domainsync.Eq("email", "a@b.com")})
	require.NoError(t, err)
	require.Len(t, fake.calls, 2)
	assert.Equal(t, "cookie-token", fake.calls[1].Cookie)
}

func TestSession_Authenticate_CookieOnlyDeployment(t *testing.T) {
	// Some deployments omit session_id from the body entirely.
	session := newTestSession(t, &fakeOdoo{authCookie: "cookie-token"})

	require.NoError(t, session.Authenticate(context.Background()))
	assert.Equal(t, "cookie-token", session.sessionID)
}

func TestSession_Authenticate_RejectedCredentials(t *testing.T) {
	session := newTestSession(t, &fakeOdoo{authBodySessionID: "token", authUID: "false"})

	err := session.Authenticate(context.Background())
	assert.ErrorIs(t, err, domainsync.ErrInvalidCredentials)
	assert.False(t, session.Authenticated())
}

func TestSession_Authenticate_MissingConfig(t *testing.T) {
	session := NewSession(&Config{URL: "http://odoo.local", Database: "prod", Login: "sync"})

	err := session.Authenticate(context.Background())
	assert.ErrorIs(t, err, ErrConfigMissingPassword)
}

func TestSession_Authenticate_ServerUnreachable(t *testing.T) {
	session := NewSession(&Config{
		URL:      "http://127.0.0.1:1",
		Database: "prod",
		Login:    "sync",
		Password: "secret",
		Timeout:  time.Second,
	})

	err := session.Authenticate(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainsync.ErrInvalidCredentials)
}

// ---------------------------------------------------------------------------
// Call / SearchFirst / Create Tests
// ---------------------------------------------------------------------------

func TestSession_Call_RequiresAuthentication(t *testing.T) {
	session := newTestSession(t, &fakeOdoo{})

	_, err := session.Call(context.Background(), "res.partner", "create", nil, nil)
	assert.ErrorIs(t, err, domainsync.ErrNotAuthenticated)

	_, _, err = session.SearchFirst(context.Background(), "res.partner", nil)
	assert.ErrorIs(t, err, domainsync.ErrNotAuthenticated)

	_, err = session.Create(context.Background(), "res.partner", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, domainsync.ErrNotAuthenticated)
}

func TestSession_SearchFirst(t *testing.T) {
	tests := []struct {
		name      string
		result    string
		wantID    int64
		wantFound bool
	}{
		{"match", `[{"id":42}]`, 42, true},
		{"no match", `[]`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeOdoo{authBodySessionID: "token", callResult: json.RawMessage(tt.result)}
			session := newTestSession(t, fake)
			require.NoError(t, session.Authenticate(context.Background()))

			id, found, err := session.SearchFirst(context.Background(), "sale.order",
				[]domainsync.Filter{domainsync.Eq("origin", "WC-501")})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantFound, found)

			// search_read with fields=[id], limit=1
			call := fake.calls[len(fake.calls)-1]
			assert.Equal(t, "sale.order", call.Model)
			assert.Equal(t, "search_read", call.Method)
			assert.Contains(t, string(call.Params), `"limit":1`)
			assert.Contains(t, string(call.Params), `["id"]`)
			assert.Contains(t, string(call.Params), `["origin","=","WC-501"]`)
		})
	}
}

func TestSession_Create(t *testing.T) {
	fake := &fakeOdoo{authBodySessionID: "token", callResult: json.RawMessage(`77`)}
	session := newTestSession(t, fake)
	require.NoError(t, session.Authenticate(context.Background()))

	id, err := session.Create(context.Background(), "res.partner", map[string]any{"name": "Guest"})
	require.NoError(t, err)
	assert.Equal(t, int64(77), id)

	call := fake.calls[len(fake.calls)-1]
	assert.Equal(t, "res.partner", call.Model)
	assert.Equal(t, "create", call.Method)
}

func TestSession_Call_RemoteError(t *testing.T) {
	fake := &fakeOdoo{
		authBodySessionID: "token",
		callError: &rpcErrorBody{
			Code:    200,
			Message: "Odoo Server Error",
			Data:    rpcErrorData{Name: "odoo.exceptions.ValidationError", Message: "missing field"},
		},
	}
	session := newTestSession(t, fake)
	require.NoError(t, session.Authenticate(context.Background()))

	_, err := session.Create(context.Background(), "product.product", map[string]any{})
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "odoo.exceptions.ValidationError", remoteErr.Name)
	assert.Equal(t, "missing field", remoteErr.Message)
}
