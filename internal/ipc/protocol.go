package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus     CommandType = "GET_STATUS"
	CommandListTargets   CommandType = "LIST_TARGETS"
	CommandListToplevels CommandType = "LIST_TOPLEVELS"
	CommandBeginDrag     CommandType = "BEGIN_DRAG"
	CommandDrop          CommandType = "DROP"
	CommandCancelDrag    CommandType = "CANCEL_DRAG"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS. The MIME types are
// the daemon's own and differ from those of any other process.
type StatusData struct {
	DaemonRunning bool   `json:"daemon_running"`
	PID           int    `json:"pid"`
	WorkspaceMime string `json:"workspace_mime"`
	ToplevelMime  string `json:"toplevel_mime"`
	DragActive    bool   `json:"drag_active"`
	DragSession   string `json:"drag_session,omitempty"`
	DragKind      string `json:"drag_kind,omitempty"`
	TargetCount   int    `json:"target_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// TargetInfo describes one registered drop target.
type TargetInfo struct {
	Key           uint64 `json:"key"`
	Kind          string `json:"kind"`
	WorkspaceID   uint32 `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name,omitempty"`
	OutputID      uint32 `json:"output_id"`
	OutputName    string `json:"output_name,omitempty"`
}

// TargetsData represents the data returned by LIST_TARGETS
type TargetsData struct {
	Targets []TargetInfo `json:"targets"`
}

// ToplevelInfo describes one toplevel window that can be dragged.
type ToplevelInfo struct {
	ID    uint32 `json:"id"`
	Title string `json:"title,omitempty"`
	AppID string `json:"app_id,omitempty"`
}

// ToplevelsData represents the data returned by LIST_TOPLEVELS
type ToplevelsData struct {
	Toplevels []ToplevelInfo `json:"toplevels"`
}

// BeginDragPayload represents the payload for BEGIN_DRAG. OutputID 0 means
// the output under the pointer.
type BeginDragPayload struct {
	Kind     string `json:"kind"` // "toplevel" or "workspace"
	HandleID uint32 `json:"handle_id"`
	OutputID uint32 `json:"output_id,omitempty"`
}

// BeginDragData is returned by BEGIN_DRAG.
type BeginDragData struct {
	SessionID string   `json:"session_id"`
	Kind      string   `json:"kind"`
	OutputID  uint32   `json:"output_id"`
	MimeTypes []string `json:"mime_types"`
}

// DropPayload represents the payload for DROP.
type DropPayload struct {
	Key      uint64 `json:"key"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data,omitempty"`
}

// DropData is returned by DROP.
type DropData struct {
	SessionID string `json:"session_id"`
	Outcome   string `json:"outcome"`
	Reason    string `json:"reason,omitempty"`
	Key       uint64 `json:"key"`
}

// CancelDragData is returned by CANCEL_DRAG.
type CancelDragData struct {
	Cancelled bool `json:"cancelled"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
