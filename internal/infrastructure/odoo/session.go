package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	domainsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/domain/sync"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/infrastructure/telemetry"
)

const (
	// maxResponseSize limits response bodies to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB

	authenticatePath = "/web/session/authenticate"
	callKwPath       = "/web/dataset/call_kw"

	sessionCookieName = "session_id"
)

// Session is a stateful client for Odoo's session-authenticated JSON-RPC
// endpoint. The session credential is acquired once per run by
// Authenticate and attached to every subsequent call; it is never
// refreshed mid-run. A Session is owned by a single run and must not be
// shared across concurrent runs.
type Session struct {
	config     *Config
	httpClient *http.Client

	sessionID string
	requestID atomic.Int64
}

// NewSession creates a session client for the given configuration. The
// configuration is validated on Authenticate so that missing settings
// surface as a run-fatal precondition instead of a startup crash.
func NewSession(config *Config) *Session {
	return &Session{
		config:     config,
		httpClient: &http.Client{},
	}
}

// Authenticated reports whether a session credential is held.
func (s *Session) Authenticated() bool {
	return s.sessionID != ""
}

// Authenticate performs the Odoo login handshake and captures the
// session credential. Some deployments omit session_id from the response
// body and only send the cookie, so the cookie takes precedence.
// An explicit credential rejection returns ErrInvalidCredentials and
// must not be retried.
func (s *Session) Authenticate(ctx context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	s.httpClient.Timeout = s.config.Timeout

	params := map[string]any{
		"db":       s.config.Database,
		"login":    s.config.Login,
		"password": s.config.Password,
	}

	result, cookie, err := s.doRequest(ctx, authenticatePath, params)
	if err != nil {
		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) && remoteErr.IsAccessDenied() {
			return fmt.Errorf("%w: %s", domainsync.ErrInvalidCredentials, remoteErr.Message)
		}
		return fmt.Errorf("odoo: authentication failed: %w", err)
	}

	var auth authResult
	if err := json.Unmarshal(result, &auth); err != nil {
		return fmt.Errorf("odoo: failed to parse authentication response: %w", err)
	}
	if !uidPresent(auth.UID) {
		return domainsync.ErrInvalidCredentials
	}

	s.sessionID = auth.SessionID
	if cookie != "" {
		s.sessionID = cookie
	}
	if s.sessionID == "" {
		return fmt.Errorf("odoo: authentication succeeded but no session credential was returned")
	}
	return nil
}

// Call issues a single remote procedure invocation against a model using
// the stored session credential. A remote-reported application error is
// returned as *RemoteError, meaning the operation did not happen.
func (s *Session) Call(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	if !s.Authenticated() {
		return nil, domainsync.ErrNotAuthenticated
	}
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}

	params := callKwParams{
		Model:  model,
		Method: method,
		Args:   args,
		Kwargs: kwargs,
	}

	result, _, err := s.doRequest(ctx, callKwPath, params)
	status := "ok"
	if err != nil {
		status = "error"
	}
	telemetry.RemoteCalls.WithLabelValues(model, method, status).Inc()
	return result, err
}

// SearchFirst is a convenience wrapper over Call using search_read. The
// core only ever needs existence-and-id, so fields are limited to the
// identifier and the result is capped at one record. No match is not an
// error.
func (s *Session) SearchFirst(ctx context.Context, model string, filters []domainsync.Filter) (int64, bool, error) {
	domain := make([]any, 0, len(filters))
	for _, f := range filters {
		domain = append(domain, []any{f.Field, f.Op, f.Value})
	}

	result, err := s.Call(ctx, model, "search_read", []any{domain}, map[string]any{
		"fields": []string{"id"},
		"limit":  1,
	})
	if err != nil {
		return 0, false, err
	}

	var records []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(result, &records); err != nil {
		return 0, false, fmt.Errorf("odoo: failed to parse search_read response: %w", err)
	}
	if len(records) == 0 {
		return 0, false, nil
	}
	return records[0].ID, true, nil
}

// Create is a convenience wrapper over Call using the remote create
// method. It returns the new record's id.
func (s *Session) Create(ctx context.Context, model string, values map[string]any) (int64, error) {
	result, err := s.Call(ctx, model, "create", []any{values}, nil)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := json.Unmarshal(result, &id); err != nil {
		return 0, fmt.Errorf("odoo: failed to parse create response: %w", err)
	}
	if id == 0 {
		return 0, domainsync.ErrCreateFailed
	}
	return id, nil
}

// doRequest posts one JSON-RPC envelope and returns the raw result plus
// any session cookie set by the transport layer.
func (s *Session) doRequest(ctx context.Context, path string, params any) (json.RawMessage, string, error) {
	envelope := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  params,
		ID:      s.requestID.Add(1),
	}

	bodyBytes, err := json.Marshal(envelope)
	if err != nil {
		return nil, "", fmt.Errorf("odoo: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.URL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("odoo: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: s.sessionID})
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("odoo: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, "", fmt.Errorf("odoo: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("odoo: HTTP %d", resp.StatusCode)
	}

	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			cookie = c.Value
		}
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, "", fmt.Errorf("odoo: failed to parse response: %w", err)
	}
	if rpcResp.Error != nil {
		message := rpcResp.Error.Data.Message
		if message == "" {
			message = rpcResp.Error.Message
		}
		return nil, cookie, &RemoteError{
			Code:    rpcResp.Error.Code,
			Name:    rpcResp.Error.Data.Name,
			Message: message,
		}
	}

	return rpcResp.Result, cookie, nil
}

// IsAccessDenied reports whether the remote error is Odoo's explicit
// credential rejection.
func (e *RemoteError) IsAccessDenied() bool {
	return e.Name == "odoo.exceptions.AccessDenied" || e.Message == "Access Denied"
}

// Ensure Session implements the domain ports
var _ domainsync.ERPClient = (*Session)(nil)
var _ domainsync.ERPSession = (*Session)(nil)
