// Package session tracks the drag in progress. Drag payloads carry no
// identity, so the receiving side resolves what is being dragged from the
// session recorded when the drag began.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/1broseidon/dragshell/internal/dnd"
	"github.com/1broseidon/dragshell/internal/platform"
)

var (
	ErrDragInProgress = errors.New("a drag is already in progress")
	ErrNoActiveDrag   = errors.New("no drag in progress")
)

// Mover moves toplevels between workspaces.
type Mover interface {
	MoveToplevel(toplevel platform.ToplevelHandle, workspace platform.WorkspaceHandle) error
}

// Session describes the active drag.
type Session struct {
	ID      uuid.UUID
	Surface dnd.DragSurface
	Payload dnd.Payload
	Started time.Time
}

// Outcome describes how a drop was handled.
type Outcome string

const (
	OutcomeMoved    Outcome = "moved"
	OutcomeRejected Outcome = "rejected"
)

// DropResult reports a completed drop.
type DropResult struct {
	SessionID uuid.UUID
	Outcome   Outcome
	Reason    string
	Key       dnd.DragKey
	Target    dnd.DropTarget
}

// Accepted reports whether the drop took effect.
func (r DropResult) Accepted() bool { return r.Outcome == OutcomeMoved }

// Tracker holds at most one active drag session.
type Tracker struct {
	mu      sync.Mutex
	current *Session

	targets *Targets
	mover   Mover
	logger  *slog.Logger
	now     func() time.Time
}

// NewTracker creates a tracker resolving drops against targets and applying
// them through mover.
func NewTracker(targets *Targets, mover Mover, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		targets: targets,
		mover:   mover,
		logger:  logger,
		now:     time.Now,
	}
}

// Begin starts a drag of surface.
func (t *Tracker) Begin(surface dnd.DragSurface) (Session, error) {
	payload := dnd.PayloadFor(surface)
	if payload == nil {
		return Session{}, fmt.Errorf("unsupported drag surface %T", surface)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current != nil {
		return Session{}, ErrDragInProgress
	}

	s := Session{
		ID:      uuid.New(),
		Surface: surface,
		Payload: payload,
		Started: t.now(),
	}
	t.current = &s
	t.logger.Debug("drag started",
		"session", s.ID,
		"kind", surface.Kind(),
		"output", surface.OutputHandle())
	return s, nil
}

// Current returns the active session, if any.
func (t *Tracker) Current() (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return Session{}, false
	}
	return *t.current, true
}

// Cancel ends the active drag without dropping. It reports whether a drag
// was active.
func (t *Tracker) Cancel() bool {
	t.mu.Lock()
	s := t.current
	t.current = nil
	t.mu.Unlock()

	if s == nil {
		return false
	}
	t.logger.Debug("drag cancelled", "session", s.ID)
	return true
}

// Drop completes the active drag on the target registered under key, with
// the MIME type and body the toolkit negotiated. Negotiation misses end the
// drag with OutcomeRejected and a nil error.
func (t *Tracker) Drop(key dnd.DragKey, mimeType string, data []byte) (DropResult, error) {
	t.mu.Lock()
	s := t.current
	t.current = nil
	t.mu.Unlock()

	if s == nil {
		return DropResult{}, ErrNoActiveDrag
	}

	res := DropResult{SessionID: s.ID, Key: key, Outcome: OutcomeRejected}

	payload, err := dnd.Parse(data, mimeType)
	if err != nil || payload.Kind() != s.Payload.Kind() {
		res.Reason = "mime type not accepted"
		t.logger.Debug("drop rejected", "session", s.ID, "mime", mimeType, "reason", res.Reason)
		return res, nil
	}

	target, ok := t.targets.Lookup(key)
	if !ok {
		res.Reason = "unknown drop target"
		t.logger.Debug("drop rejected", "session", s.ID, "key", key, "reason", res.Reason)
		return res, nil
	}
	res.Target = target

	switch surface := s.Surface.(type) {
	case dnd.ToplevelSurface:
		switch tgt := target.(type) {
		case dnd.WorkspaceSidebarEntry:
			if err := t.mover.MoveToplevel(surface.Handle, tgt.Workspace); err != nil {
				return res, fmt.Errorf("move %s to %s: %w", surface.Handle, tgt.Workspace, err)
			}
			res.Outcome = OutcomeMoved
			t.logger.Info("toplevel moved",
				"session", s.ID,
				"toplevel", surface.Handle,
				"workspace", tgt.Workspace,
				"output", tgt.Output)
			return res, nil
		}
	}

	res.Reason = fmt.Sprintf("%s cannot be dropped on %s", s.Surface.Kind(), target.Discriminant())
	t.logger.Debug("drop rejected", "session", s.ID, "key", key, "reason", res.Reason)
	return res, nil
}
