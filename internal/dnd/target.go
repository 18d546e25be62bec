package dnd

import (
	"fmt"

	"github.com/1broseidon/dragshell/internal/platform"
)

// TargetKind is the stable discriminant of a DropTarget variant. Values are
// assigned in declaration order and must never be renumbered.
type TargetKind uint8

const (
	TargetWorkspaceSidebarEntry TargetKind = 0
)

func (k TargetKind) String() string {
	switch k {
	case TargetWorkspaceSidebarEntry:
		return "workspace-sidebar-entry"
	default:
		return fmt.Sprintf("target(%d)", uint8(k))
	}
}

// DropTarget is a region that accepts drops.
type DropTarget interface {
	Discriminant() TargetKind
	isDropTarget()
}

// WorkspaceSidebarEntry is a workspace row in an output's sidebar.
type WorkspaceSidebarEntry struct {
	Workspace platform.WorkspaceHandle
	Output    platform.Output
}

func (WorkspaceSidebarEntry) Discriminant() TargetKind { return TargetWorkspaceSidebarEntry }
func (WorkspaceSidebarEntry) isDropTarget()            {}

// DragKey is the flat identifier the widget toolkit uses for a drop region:
// the target discriminant in bits 32..39 and the protocol object id in the
// low 32 bits.
type DragKey uint64

// Discriminant returns the variant tag packed into k.
func (k DragKey) Discriminant() TargetKind { return TargetKind(k >> 32) }

// ObjectID returns the protocol object id packed into k.
func (k DragKey) ObjectID() uint32 { return uint32(k) }

func (k DragKey) String() string {
	return fmt.Sprintf("%s/%d", k.Discriminant(), k.ObjectID())
}

func packKey(kind TargetKind, objectID uint32) DragKey {
	return DragKey(uint64(kind)<<32 | uint64(objectID))
}

// KeyOf encodes target as a DragKey. The key is unique per (variant,
// protocol id) within one compositor connection. The output of a sidebar
// entry is not part of the key, so the same workspace listed on two
// outputs yields the same key. target must be non-nil.
func KeyOf(target DropTarget) DragKey {
	switch t := target.(type) {
	case WorkspaceSidebarEntry:
		return packKey(t.Discriminant(), t.Workspace.ProtocolID())
	default:
		panic(fmt.Sprintf("dnd: unknown drop target %T", target))
	}
}
