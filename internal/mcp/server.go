package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dragshell/internal/ipc"
)

const (
	ServerName    = "dragshell"
	ServerVersion = "0.1.0"
)

// Daemon is the subset of the IPC client the tools use.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	ListTargets() (*ipc.TargetsData, error)
	ListToplevels() (*ipc.ToplevelsData, error)
	BeginDrag(payload ipc.BeginDragPayload) (*ipc.BeginDragData, error)
	Drop(payload ipc.DropPayload) (*ipc.DropData, error)
	CancelDrag() (bool, error)
}

// Server is the MCP server exposing drag identity tools.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
	logger    *slog.Logger
}

// NewServer creates a new MCP server talking to the daemon through d.
func NewServer(d Daemon, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		daemon: d,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "mime_types",
		Description: "Show the drag MIME types of this process and of the dragshell daemon. Tags embed the process id, so a drag is only accepted by the process that started it.",
	}, s.handleMimeTypes)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "drop_target_key",
		Description: "Compute the 64-bit drop target key of a workspace sidebar entry. The output does not take part in the key.",
	}, s.handleDropTargetKey)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_drop_targets",
		Description: "List the drop targets currently registered in the daemon with their keys.",
	}, s.handleListDropTargets)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_toplevels",
		Description: "List the toplevel windows the daemon can drag, with their window ids.",
	}, s.handleListToplevels)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_toplevel",
		Description: "Drag a toplevel window onto a drop target key in the daemon, moving it to that workspace.",
	}, s.handleMoveToplevel)
}
