package odoo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rpcRequest is the JSON-RPC 2.0 envelope Odoo expects on every call.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int64  `json:"id"`
}

// rpcResponse is the JSON-RPC 2.0 envelope Odoo answers with.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcErrorBody   `json:"error"`
}

// rpcErrorBody is the error member of a failed JSON-RPC response.
type rpcErrorBody struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    rpcErrorData `json:"data"`
}

// rpcErrorData carries Odoo's server-side exception details.
type rpcErrorData struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Debug   string `json:"debug"`
}

// authResult is the result member of /web/session/authenticate. Odoo
// encodes a rejected login as uid=false, so UID stays raw JSON.
type authResult struct {
	SessionID string          `json:"session_id"`
	UID       json.RawMessage `json:"uid"`
	Username  string          `json:"username"`
}

// uidPresent reports whether the authenticate result carries a real user
// id. Odoo encodes rejection as false, older versions as null or 0.
func uidPresent(raw json.RawMessage) bool {
	s := string(bytes.TrimSpace(raw))
	return s != "" && s != "false" && s != "null" && s != "0"
}

// callKwParams is the params member of a /web/dataset/call_kw request.
type callKwParams struct {
	Model  string         `json:"model"`
	Method string         `json:"method"`
	Args   []any          `json:"args"`
	Kwargs map[string]any `json:"kwargs"`
}

// RemoteError is an application error reported by the Odoo server. It
// means the remote operation did not happen; callers classify it as a
// non-fatal "failed remote" outcome rather than aborting the run.
type RemoteError struct {
	Code    int
	Name    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("odoo: remote error %d (%s): %s", e.Code, e.Name, e.Message)
	}
	return fmt.Sprintf("odoo: remote error %d: %s", e.Code, e.Message)
}
