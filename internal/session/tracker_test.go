package session

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/dragshell/internal/dnd"
	"github.com/1broseidon/dragshell/internal/platform"
)

type move struct {
	toplevel  platform.ToplevelHandle
	workspace platform.WorkspaceHandle
}

type fakeMover struct {
	moves []move
	err   error
}

func (f *fakeMover) MoveToplevel(toplevel platform.ToplevelHandle, workspace platform.WorkspaceHandle) error {
	if f.err != nil {
		return f.err
	}
	f.moves = append(f.moves, move{toplevel, workspace})
	return nil
}

var (
	testOutput    = platform.Output{ID: 61, Name: "eDP-1"}
	testToplevel  = platform.ToplevelHandle{ID: 0x2a00004, Title: "editor"}
	testWorkspace = platform.WorkspaceHandle{ID: 3, Name: "code"}
)

func newTestTracker(t *testing.T) (*Tracker, *fakeMover, dnd.DragKey) {
	t.Helper()
	targets := NewTargets()
	entry := dnd.WorkspaceSidebarEntry{Workspace: testWorkspace, Output: testOutput}
	targets.Replace([]dnd.DropTarget{entry})
	mover := &fakeMover{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTracker(targets, mover, logger), mover, dnd.KeyOf(entry)
}

func TestTracker_ToplevelDropMovesWindow(t *testing.T) {
	tr, mover, key := newTestTracker(t)

	s, err := tr.Begin(dnd.ToplevelSurface{Handle: testToplevel, Output: testOutput})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	mime := s.Payload.AvailableMimeTypes()[0]
	data, _ := s.Payload.Bytes(mime)

	res, err := tr.Drop(key, mime, data)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if !res.Accepted() || res.SessionID != s.ID {
		t.Fatalf("Drop result = %+v, want moved for session %s", res, s.ID)
	}
	if len(mover.moves) != 1 || mover.moves[0] != (move{testToplevel, testWorkspace}) {
		t.Fatalf("moves = %+v", mover.moves)
	}
	if _, ok := tr.Current(); ok {
		t.Fatal("session still active after drop")
	}
}

func TestTracker_BeginTwiceFails(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	surface := dnd.ToplevelSurface{Handle: testToplevel, Output: testOutput}
	if _, err := tr.Begin(surface); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := tr.Begin(surface); !errors.Is(err, ErrDragInProgress) {
		t.Fatalf("second Begin err = %v, want ErrDragInProgress", err)
	}
	if !tr.Cancel() {
		t.Fatal("Cancel reported no active drag")
	}
	if tr.Cancel() {
		t.Fatal("second Cancel reported an active drag")
	}
	if _, err := tr.Begin(surface); err != nil {
		t.Fatalf("Begin after cancel: %v", err)
	}
}

func TestTracker_DropWithoutDrag(t *testing.T) {
	tr, _, key := newTestTracker(t)
	if _, err := tr.Drop(key, dnd.ToplevelMime(), nil); !errors.Is(err, ErrNoActiveDrag) {
		t.Fatalf("err = %v, want ErrNoActiveDrag", err)
	}
}

func TestTracker_RejectedDrops(t *testing.T) {
	tests := []struct {
		name    string
		surface dnd.DragSurface
		key     func(dnd.DragKey) dnd.DragKey
		mime    func() string
	}{
		{
			name:    "foreign process mime",
			surface: dnd.ToplevelSurface{Handle: testToplevel, Output: testOutput},
			key:     func(k dnd.DragKey) dnd.DragKey { return k },
			mime:    func() string { return "text/x.cosmic-toplevel-id-1" },
		},
		{
			name:    "mime of another kind",
			surface: dnd.ToplevelSurface{Handle: testToplevel, Output: testOutput},
			key:     func(k dnd.DragKey) dnd.DragKey { return k },
			mime:    dnd.WorkspaceMime,
		},
		{
			name:    "unknown key",
			surface: dnd.ToplevelSurface{Handle: testToplevel, Output: testOutput},
			key:     func(k dnd.DragKey) dnd.DragKey { return k + 1 },
			mime:    dnd.ToplevelMime,
		},
		{
			name:    "workspace onto sidebar",
			surface: dnd.WorkspaceSurface{Handle: testWorkspace, Output: testOutput},
			key:     func(k dnd.DragKey) dnd.DragKey { return k },
			mime:    dnd.WorkspaceMime,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, mover, key := newTestTracker(t)
			if _, err := tr.Begin(tt.surface); err != nil {
				t.Fatalf("Begin: %v", err)
			}
			res, err := tr.Drop(tt.key(key), tt.mime(), []byte{1, 2, 3})
			if err != nil {
				t.Fatalf("Drop: %v", err)
			}
			if res.Accepted() || res.Reason == "" {
				t.Fatalf("result = %+v, want rejected with reason", res)
			}
			if len(mover.moves) != 0 {
				t.Fatalf("unexpected moves %+v", mover.moves)
			}
			if _, ok := tr.Current(); ok {
				t.Fatal("session still active after rejected drop")
			}
		})
	}
}

func TestTracker_MoverErrorIsReturned(t *testing.T) {
	tr, mover, key := newTestTracker(t)
	mover.err = errors.New("window gone")
	if _, err := tr.Begin(dnd.ToplevelSurface{Handle: testToplevel, Output: testOutput}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	res, err := tr.Drop(key, dnd.ToplevelMime(), nil)
	if !errors.Is(err, mover.err) {
		t.Fatalf("err = %v, want wrapped mover error", err)
	}
	if res.Accepted() {
		t.Fatalf("result = %+v, want not accepted", res)
	}
}

func TestTargets_ReplaceKeepsFirstAlias(t *testing.T) {
	targets := NewTargets()
	first := dnd.WorkspaceSidebarEntry{Workspace: testWorkspace, Output: testOutput}
	second := dnd.WorkspaceSidebarEntry{Workspace: testWorkspace, Output: platform.Output{ID: 62, Name: "HDMI-1"}}
	other := dnd.WorkspaceSidebarEntry{Workspace: platform.WorkspaceHandle{ID: 1}, Output: testOutput}

	if n := targets.Replace([]dnd.DropTarget{first, second, other}); n != 2 {
		t.Fatalf("Replace = %d keys, want 2", n)
	}
	got, ok := targets.Lookup(dnd.KeyOf(second))
	if !ok || got != dnd.DropTarget(first) {
		t.Fatalf("Lookup = %#v, %v; want first entry", got, ok)
	}

	list := targets.List()
	if len(list) != 2 || list[0].Key != 1 || list[1].Key != 3 {
		t.Fatalf("List = %+v", list)
	}

	targets.Replace(nil)
	if targets.Len() != 0 {
		t.Fatalf("Len after clearing = %d", targets.Len())
	}
}

func TestTargets_ReplaceSkipsNil(t *testing.T) {
	targets := NewTargets()
	entry := dnd.WorkspaceSidebarEntry{Workspace: testWorkspace, Output: testOutput}

	if n := targets.Replace([]dnd.DropTarget{nil, entry, nil}); n != 1 {
		t.Fatalf("Replace = %d keys, want 1", n)
	}
	if _, ok := targets.Lookup(dnd.KeyOf(entry)); !ok {
		t.Fatal("entry not registered")
	}
}
