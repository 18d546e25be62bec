package dnd

import (
	"errors"

	"github.com/1broseidon/dragshell/internal/platform"
)

// ErrMimeMismatch is returned when a payload is parsed from a MIME type it
// does not recognize. It is a negotiation miss, not a fault: callers try the
// next offered type or drop the gesture.
var ErrMimeMismatch = errors.New("dnd: mime type does not match payload kind")

// Payload is the offer side of a drag: the MIME types it can be exported as
// and the bytes for each.
type Payload interface {
	Kind() Kind
	AvailableMimeTypes() []string
	// Bytes returns the serialized payload for mimeType. ok is false when the
	// payload cannot be exported as that type.
	Bytes(mimeType string) (data []byte, ok bool)
}

// DragSurface identifies the compositor object being dragged.
type DragSurface interface {
	Kind() Kind
	OutputHandle() platform.Output
	isDragSurface()
}

// WorkspaceSurface is a workspace being dragged from an output.
type WorkspaceSurface struct {
	Handle platform.WorkspaceHandle
	Output platform.Output
}

func (WorkspaceSurface) Kind() Kind                      { return KindWorkspace }
func (s WorkspaceSurface) OutputHandle() platform.Output { return s.Output }
func (WorkspaceSurface) isDragSurface()                  {}

// ToplevelSurface is an application window being dragged from an output.
type ToplevelSurface struct {
	Handle platform.ToplevelHandle
	Output platform.Output
}

func (ToplevelSurface) Kind() Kind                      { return KindToplevel }
func (s ToplevelSurface) OutputHandle() platform.Output { return s.Output }
func (ToplevelSurface) isDragSurface()                  {}

// PayloadFor returns the marker payload advertised while surface is dragged.
func PayloadFor(surface DragSurface) Payload {
	switch surface.(type) {
	case WorkspaceSurface:
		return DragWorkspace{}
	case ToplevelSurface:
		return DragToplevel{}
	default:
		return nil
	}
}

// DragToplevel marks a toplevel drag. It carries no handle; the receiver
// correlates it with the drag session it already knows about.
type DragToplevel struct{}

func (DragToplevel) Kind() Kind { return KindToplevel }

func (DragToplevel) AvailableMimeTypes() []string { return []string{ToplevelMime()} }

func (DragToplevel) Bytes(mimeType string) ([]byte, bool) {
	if mimeType == ToplevelMime() {
		return []byte{}, true
	}
	return nil, false
}

// ParseToplevel accepts a toplevel payload. data is never inspected.
func ParseToplevel(_ []byte, mimeType string) (DragToplevel, error) {
	if mimeType == ToplevelMime() {
		return DragToplevel{}, nil
	}
	return DragToplevel{}, ErrMimeMismatch
}

// DragWorkspace marks a workspace drag.
type DragWorkspace struct{}

func (DragWorkspace) Kind() Kind { return KindWorkspace }

func (DragWorkspace) AvailableMimeTypes() []string { return []string{WorkspaceMime()} }

func (DragWorkspace) Bytes(mimeType string) ([]byte, bool) {
	if mimeType == WorkspaceMime() {
		return []byte{}, true
	}
	return nil, false
}

// ParseWorkspace accepts a workspace payload. data is never inspected.
func ParseWorkspace(_ []byte, mimeType string) (DragWorkspace, error) {
	if mimeType == WorkspaceMime() {
		return DragWorkspace{}, nil
	}
	return DragWorkspace{}, ErrMimeMismatch
}

// AllowedMimeTypes is the receiving side's accepted set for kind. It must
// match the offer side's AvailableMimeTypes or no drop ever completes.
func AllowedMimeTypes(kind Kind) []string {
	mime := MimeFor(kind)
	if mime == "" {
		return nil
	}
	return []string{mime}
}

// Parse accepts a payload of whichever kind mimeType names.
func Parse(data []byte, mimeType string) (Payload, error) {
	if p, err := ParseToplevel(data, mimeType); err == nil {
		return p, nil
	}
	if p, err := ParseWorkspace(data, mimeType); err == nil {
		return p, nil
	}
	return nil, ErrMimeMismatch
}
