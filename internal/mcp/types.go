package mcp

// MimeTypesInput is the input for the mime_types tool.
type MimeTypesInput struct{}

// MimeTypesOutput is the output for the mime_types tool.
type MimeTypesOutput struct {
	LocalPID            int    `json:"local_pid"`
	LocalWorkspaceMime  string `json:"local_workspace_mime"`
	LocalToplevelMime   string `json:"local_toplevel_mime"`
	DaemonPID           int    `json:"daemon_pid,omitempty"`
	DaemonWorkspaceMime string `json:"daemon_workspace_mime,omitempty"`
	DaemonToplevelMime  string `json:"daemon_toplevel_mime,omitempty"`
	DaemonError         string `json:"daemon_error,omitempty"`
}

// DropTargetKeyInput is the input for the drop_target_key tool.
type DropTargetKeyInput struct {
	WorkspaceID uint32 `json:"workspace_id" jsonschema:"Protocol object id of the workspace (EWMH desktop index)"`
	OutputID    uint32 `json:"output_id,omitempty" jsonschema:"Protocol object id of the output; does not change the key"`
}

// DropTargetKeyOutput is the output for the drop_target_key tool.
type DropTargetKeyOutput struct {
	Key          uint64 `json:"key"`
	Discriminant uint8  `json:"discriminant"`
	ObjectID     uint32 `json:"object_id"`
}

// ListDropTargetsInput is the input for the list_drop_targets tool.
type ListDropTargetsInput struct{}

// DropTargetInfo describes one drop target registered in the daemon.
type DropTargetInfo struct {
	Key       uint64 `json:"key"`
	Kind      string `json:"kind"`
	Workspace string `json:"workspace"`
	Output    string `json:"output"`
}

// ListDropTargetsOutput is the output for the list_drop_targets tool.
type ListDropTargetsOutput struct {
	Targets []DropTargetInfo `json:"targets"`
}

// ListToplevelsInput is the input for the list_toplevels tool.
type ListToplevelsInput struct{}

// ToplevelInfo describes one draggable window.
type ToplevelInfo struct {
	ID    uint32 `json:"id"`
	Title string `json:"title,omitempty"`
	AppID string `json:"app_id,omitempty"`
}

// ListToplevelsOutput is the output for the list_toplevels tool.
type ListToplevelsOutput struct {
	Toplevels []ToplevelInfo `json:"toplevels"`
}

// MoveToplevelInput is the input for the move_toplevel tool.
type MoveToplevelInput struct {
	ToplevelID uint32 `json:"toplevel_id" jsonschema:"X11 window id of the toplevel to drag"`
	Key        uint64 `json:"key" jsonschema:"Drop target key from list_drop_targets"`
}

// MoveToplevelOutput is the output for the move_toplevel tool.
type MoveToplevelOutput struct {
	SessionID string `json:"session_id"`
	Outcome   string `json:"outcome"`
	Reason    string `json:"reason,omitempty"`
}
