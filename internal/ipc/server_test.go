package ipc

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/1broseidon/dragshell/internal/daemon"
	"github.com/1broseidon/dragshell/internal/dnd"
	"github.com/1broseidon/dragshell/internal/logging"
	"github.com/1broseidon/dragshell/internal/platform"
	"github.com/1broseidon/dragshell/internal/session"
)

type fakeBackend struct {
	mu         sync.Mutex
	outputs    []platform.Output
	workspaces []platform.WorkspaceHandle
	toplevels  []platform.ToplevelHandle
	moved      map[uint32]uint32
}

func (f *fakeBackend) Outputs() ([]platform.Output, error) { return f.outputs, nil }

func (f *fakeBackend) Workspaces() ([]platform.WorkspaceHandle, error) { return f.workspaces, nil }

func (f *fakeBackend) Toplevels() ([]platform.ToplevelHandle, error) { return f.toplevels, nil }

func (f *fakeBackend) MoveToplevel(t platform.ToplevelHandle, w platform.WorkspaceHandle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moved[t.ID] = w.ID
	return nil
}

func startTestServer(t *testing.T) (*Client, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{
		outputs:    []platform.Output{{ID: 60, Name: "DP-1"}, {ID: 61, Name: "DP-2"}},
		workspaces: []platform.WorkspaceHandle{{ID: 0, Name: "one"}, {ID: 1, Name: "two"}},
		toplevels:  []platform.ToplevelHandle{{ID: 0x1c00003, Title: "term"}},
		moved:      make(map[uint32]uint32),
	}
	logger := logging.Discard()
	targets := session.NewTargets()
	targets.Replace(daemon.SidebarTargets(backend.outputs, backend.workspaces, nil))
	tracker := session.NewTracker(targets, backend, logger)

	socket := filepath.Join(t.TempDir(), "d.sock")
	srv, err := NewServer(socket, backend, tracker, targets, logger)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return NewClient(socket), backend
}

func TestServer_Status(t *testing.T) {
	client, _ := startTestServer(t)

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !status.DaemonRunning || status.PID != os.Getpid() {
		t.Fatalf("status = %+v", status)
	}
	if status.ToplevelMime != dnd.ToplevelMime() || !strings.HasSuffix(status.ToplevelMime, strconv.Itoa(os.Getpid())) {
		t.Fatalf("toplevel mime = %q", status.ToplevelMime)
	}
	if status.TargetCount != 2 || status.DragActive {
		t.Fatalf("status = %+v", status)
	}
}

func TestServer_ListTargets(t *testing.T) {
	client, _ := startTestServer(t)

	data, err := client.ListTargets()
	if err != nil {
		t.Fatalf("ListTargets: %v", err)
	}
	if len(data.Targets) != 2 {
		t.Fatalf("targets = %+v", data.Targets)
	}
	got := data.Targets[1]
	if got.Key != 1 || got.WorkspaceName != "two" || got.OutputName != "DP-1" || got.Kind != "workspace-sidebar-entry" {
		t.Fatalf("target = %+v", got)
	}
}

func TestServer_ListToplevels(t *testing.T) {
	client, _ := startTestServer(t)

	data, err := client.ListToplevels()
	if err != nil {
		t.Fatalf("ListToplevels: %v", err)
	}
	if len(data.Toplevels) != 1 || data.Toplevels[0].ID != 0x1c00003 || data.Toplevels[0].Title != "term" {
		t.Fatalf("toplevels = %+v", data.Toplevels)
	}
}

func TestServer_DragAndDrop(t *testing.T) {
	client, backend := startTestServer(t)

	begin, err := client.BeginDrag(BeginDragPayload{Kind: "toplevel", HandleID: 0x1c00003})
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if len(begin.MimeTypes) != 1 || begin.MimeTypes[0] != dnd.ToplevelMime() {
		t.Fatalf("mime types = %v", begin.MimeTypes)
	}
	if begin.OutputID != 60 {
		t.Fatalf("output = %d, want first output", begin.OutputID)
	}

	if _, err := client.BeginDrag(BeginDragPayload{Kind: "toplevel", HandleID: 0x1c00003}); err == nil {
		t.Fatal("second BeginDrag succeeded")
	}

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !status.DragActive || status.DragSession != begin.SessionID || status.DragKind != "toplevel" {
		t.Fatalf("status = %+v", status)
	}

	drop, err := client.Drop(DropPayload{Key: 1, MimeType: begin.MimeTypes[0]})
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if drop.Outcome != string(session.OutcomeMoved) || drop.SessionID != begin.SessionID {
		t.Fatalf("drop = %+v", drop)
	}

	backend.mu.Lock()
	ws, ok := backend.moved[0x1c00003]
	backend.mu.Unlock()
	if !ok || ws != 1 {
		t.Fatalf("moved = %v", backend.moved)
	}
}

func TestDragToplevel(t *testing.T) {
	client, backend := startTestServer(t)

	drop, err := DragToplevel(client, 0x1c00003, 0)
	if err != nil {
		t.Fatalf("DragToplevel: %v", err)
	}
	if drop.Outcome != string(session.OutcomeMoved) {
		t.Fatalf("drop = %+v", drop)
	}
	backend.mu.Lock()
	defer backend.mu.Unlock()
	if ws, ok := backend.moved[0x1c00003]; !ok || ws != 0 {
		t.Fatalf("moved = %v", backend.moved)
	}
}

func TestServer_ForeignMimeRejected(t *testing.T) {
	client, backend := startTestServer(t)

	if _, err := client.BeginDrag(BeginDragPayload{Kind: "toplevel", HandleID: 0x1c00003, OutputID: 61}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	drop, err := client.Drop(DropPayload{Key: 0, MimeType: "text/x.cosmic-toplevel-id-1", Data: []byte{0xff}})
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if drop.Outcome != string(session.OutcomeRejected) {
		t.Fatalf("drop = %+v, want rejected", drop)
	}
	if len(backend.moved) != 0 {
		t.Fatalf("moved = %v", backend.moved)
	}
}

func TestServer_CancelAndErrors(t *testing.T) {
	client, _ := startTestServer(t)

	if cancelled, err := client.CancelDrag(); err != nil || cancelled {
		t.Fatalf("CancelDrag with no drag = %v, %v", cancelled, err)
	}
	if _, err := client.Drop(DropPayload{Key: 0, MimeType: dnd.ToplevelMime()}); err == nil {
		t.Fatal("Drop without drag succeeded")
	}
	if _, err := client.BeginDrag(BeginDragPayload{Kind: "panel", HandleID: 1}); err == nil {
		t.Fatal("BeginDrag with unknown kind succeeded")
	}
	if _, err := client.BeginDrag(BeginDragPayload{Kind: "toplevel", HandleID: 42}); err == nil {
		t.Fatal("BeginDrag with unknown toplevel succeeded")
	}
	if _, err := client.BeginDrag(BeginDragPayload{Kind: "workspace", HandleID: 1}); err != nil {
		t.Fatalf("BeginDrag workspace: %v", err)
	}
	if cancelled, err := client.CancelDrag(); err != nil || !cancelled {
		t.Fatalf("CancelDrag = %v, %v", cancelled, err)
	}
}

func TestClient_NoDaemon(t *testing.T) {
	client := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	if _, err := client.GetStatus(); err == nil || !strings.Contains(err.Error(), "is the daemon running") {
		t.Fatalf("err = %v", err)
	}
}
