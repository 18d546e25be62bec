package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/dragshell/internal/dnd"
	"github.com/1broseidon/dragshell/internal/platform"
	"github.com/1broseidon/dragshell/internal/runtimepath"
	"github.com/1broseidon/dragshell/internal/session"
)

// PointerLocator is implemented by backends that know which output the
// pointer is on.
type PointerLocator interface {
	PointerOutput() (platform.Output, error)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	backend      platform.Backend
	tracker      *session.Tracker
	targets      *session.Targets
	logger       *slog.Logger
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server. socketOverride replaces the default
// socket path when non-empty.
func NewServer(socketOverride string, backend platform.Backend, tracker *session.Tracker, targets *session.Targets, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath(socketOverride)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		backend:    backend,
		tracker:    tracker,
		targets:    targets,
		logger:     logger,
		startTime:  time.Now(),
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListTargets:
		return s.handleListTargets()
	case CommandListToplevels:
		return s.handleListToplevels()
	case CommandBeginDrag:
		return s.handleBeginDrag(req.Payload)
	case CommandDrop:
		return s.handleDrop(req.Payload)
	case CommandCancelDrag:
		return s.handleCancelDrag()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		DaemonRunning: true,
		PID:           os.Getpid(),
		WorkspaceMime: dnd.WorkspaceMime(),
		ToplevelMime:  dnd.ToplevelMime(),
		TargetCount:   s.targets.Len(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	}
	if cur, ok := s.tracker.Current(); ok {
		status.DragActive = true
		status.DragSession = cur.ID.String()
		status.DragKind = cur.Surface.Kind().String()
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleListTargets() *Response {
	entries := s.targets.List()
	data := TargetsData{Targets: make([]TargetInfo, 0, len(entries))}
	for _, e := range entries {
		data.Targets = append(data.Targets, targetInfo(e))
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleListToplevels() *Response {
	toplevels, err := s.backend.Toplevels()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list toplevels: %v", err))
	}
	data := ToplevelsData{Toplevels: make([]ToplevelInfo, 0, len(toplevels))}
	for _, t := range toplevels {
		data.Toplevels = append(data.Toplevels, ToplevelInfo{ID: t.ID, Title: t.Title, AppID: t.AppID})
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func targetInfo(e session.Entry) TargetInfo {
	info := TargetInfo{
		Key:  uint64(e.Key),
		Kind: e.Target.Discriminant().String(),
	}
	switch t := e.Target.(type) {
	case dnd.WorkspaceSidebarEntry:
		info.WorkspaceID = t.Workspace.ID
		info.WorkspaceName = t.Workspace.Name
		info.OutputID = t.Output.ID
		info.OutputName = t.Output.Name
	}
	return info
}

func (s *Server) handleBeginDrag(payload json.RawMessage) *Response {
	var req BeginDragPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}

	output, err := s.resolveOutput(req.OutputID)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to resolve output: %v", err))
	}

	var surface dnd.DragSurface
	switch req.Kind {
	case dnd.KindToplevel.String():
		handle, err := platform.FindToplevel(s.backend, req.HandleID)
		if err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to resolve toplevel: %v", err))
		}
		surface = dnd.ToplevelSurface{Handle: handle, Output: output}
	case dnd.KindWorkspace.String():
		handle, err := platform.FindWorkspace(s.backend, req.HandleID)
		if err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to resolve workspace: %v", err))
		}
		surface = dnd.WorkspaceSurface{Handle: handle, Output: output}
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown drag kind %q", req.Kind))
	}

	sess, err := s.tracker.Begin(surface)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to begin drag: %v", err))
	}

	resp, _ := NewOKResponse(BeginDragData{
		SessionID: sess.ID.String(),
		Kind:      surface.Kind().String(),
		OutputID:  output.ID,
		MimeTypes: sess.Payload.AvailableMimeTypes(),
	})
	return resp
}

func (s *Server) resolveOutput(id uint32) (platform.Output, error) {
	if id != 0 {
		return platform.FindOutput(s.backend, id)
	}
	if locator, ok := s.backend.(PointerLocator); ok {
		return locator.PointerOutput()
	}
	outputs, err := s.backend.Outputs()
	if err != nil {
		return platform.Output{}, err
	}
	if len(outputs) == 0 {
		return platform.Output{}, fmt.Errorf("no outputs")
	}
	return outputs[0], nil
}

func (s *Server) handleDrop(payload json.RawMessage) *Response {
	var req DropPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}

	res, err := s.tracker.Drop(dnd.DragKey(req.Key), req.MimeType, req.Data)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Drop failed: %v", err))
	}

	resp, _ := NewOKResponse(DropData{
		SessionID: res.SessionID.String(),
		Outcome:   string(res.Outcome),
		Reason:    res.Reason,
		Key:       uint64(res.Key),
	})
	return resp
}

func (s *Server) handleCancelDrag() *Response {
	resp, _ := NewOKResponse(CancelDragData{Cancelled: s.tracker.Cancel()})
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
