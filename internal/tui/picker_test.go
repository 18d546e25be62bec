package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/dragshell/internal/ipc"
)

type fakeDaemon struct {
	listErr error
	drops   []ipc.DropPayload
}

func (f *fakeDaemon) ListToplevels() (*ipc.ToplevelsData, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &ipc.ToplevelsData{Toplevels: []ipc.ToplevelInfo{
		{ID: 0x1c00003, Title: "term", AppID: "kitty"},
		{ID: 0x2a00001, Title: "editor"},
	}}, nil
}

func (f *fakeDaemon) ListTargets() (*ipc.TargetsData, error) {
	return &ipc.TargetsData{Targets: []ipc.TargetInfo{
		{Key: 0, Kind: "workspace-sidebar-entry", WorkspaceID: 0, WorkspaceName: "one", OutputID: 60, OutputName: "DP-1"},
		{Key: 1, Kind: "workspace-sidebar-entry", WorkspaceID: 1, WorkspaceName: "two", OutputID: 60, OutputName: "DP-1"},
	}}, nil
}

func (f *fakeDaemon) BeginDrag(p ipc.BeginDragPayload) (*ipc.BeginDragData, error) {
	return &ipc.BeginDragData{SessionID: "s-1", Kind: p.Kind, MimeTypes: []string{"text/x.cosmic-toplevel-id-4242"}}, nil
}

func (f *fakeDaemon) Drop(p ipc.DropPayload) (*ipc.DropData, error) {
	f.drops = append(f.drops, p)
	return &ipc.DropData{SessionID: "s-1", Outcome: "moved", Key: p.Key}, nil
}

func (f *fakeDaemon) CancelDrag() (bool, error) { return true, nil }

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func step(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func loaded(t *testing.T, d Daemon) model {
	t.Helper()
	m := newModel(d)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = step(t, m, m.Init()())
	if m.phase != phaseToplevel {
		t.Fatalf("phase = %d after load, want toplevel", m.phase)
	}
	return m
}

func TestPicker_SelectToplevelThenTarget(t *testing.T) {
	m := loaded(t, &fakeDaemon{})

	m, _ = step(t, m, key("enter"))
	if m.phase != phaseTarget || m.toplevel.ID != 0x1c00003 {
		t.Fatalf("phase = %d, toplevel = %+v", m.phase, m.toplevel)
	}
	if !strings.Contains(m.View(), "term") {
		t.Fatalf("target view does not name the dragged window:\n%s", m.View())
	}

	m, _ = step(t, m, key("esc"))
	if m.phase != phaseToplevel {
		t.Fatalf("esc from target: phase = %d", m.phase)
	}

	m, _ = step(t, m, key("enter"))
	m, _ = step(t, m, key("enter"))
	if m.phase != phaseConfirm || m.form == nil {
		t.Fatalf("phase = %d, form = %v", m.phase, m.form)
	}
	if m.target.Key != 0 || !*m.confirmed {
		t.Fatalf("target = %+v, confirmed = %v", m.target, *m.confirmed)
	}

	m, _ = step(t, m, key("esc"))
	if m.phase != phaseTarget || m.form != nil {
		t.Fatalf("esc from confirm: phase = %d", m.phase)
	}
}

func TestPicker_MoveUsesOfferedMime(t *testing.T) {
	d := &fakeDaemon{}
	m := loaded(t, d)
	m.toplevel = ipc.ToplevelInfo{ID: 0x2a00001, Title: "editor"}
	m.target = ipc.TargetInfo{Key: 1}

	m, _ = step(t, m, m.move())
	if m.phase != phaseDone || m.err != nil {
		t.Fatalf("phase = %d, err = %v", m.phase, m.err)
	}
	if len(d.drops) != 1 || d.drops[0].Key != 1 || d.drops[0].MimeType != "text/x.cosmic-toplevel-id-4242" {
		t.Fatalf("drops = %+v", d.drops)
	}
	if !strings.Contains(m.View(), "Moved") {
		t.Fatalf("view = %q", m.View())
	}

	_, cmd := step(t, m, key("x"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestPicker_LoadError(t *testing.T) {
	m := newModel(&fakeDaemon{listErr: errors.New("is the daemon running?")})
	m, _ = step(t, m, m.Init()())
	if m.phase != phaseDone || m.err == nil {
		t.Fatalf("phase = %d, err = %v", m.phase, m.err)
	}
	if !strings.Contains(m.View(), "daemon running") {
		t.Fatalf("view = %q", m.View())
	}
}

func TestPicker_QuitFromToplevel(t *testing.T) {
	m := loaded(t, &fakeDaemon{})
	_, cmd := step(t, m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}
