// Package dnd implements the process-scoped drag-and-drop identity protocol:
// MIME tags that only match within the producing process, zero-length marker
// payloads, and 64-bit drop target keys for the widget toolkit.
package dnd

import (
	"fmt"
	"os"
	"sync"
)

// Kind identifies a draggable object type.
type Kind uint8

const (
	KindWorkspace Kind = iota
	KindToplevel
)

func (k Kind) String() string {
	switch k {
	case KindWorkspace:
		return "workspace"
	case KindToplevel:
		return "toplevel"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Tags embed the pid: a drag from another process never matches.
var (
	workspaceMime = sync.OnceValue(func() string { return mimeString(KindWorkspace, os.Getpid()) })
	toplevelMime  = sync.OnceValue(func() string { return mimeString(KindToplevel, os.Getpid()) })
)

func mimeString(kind Kind, pid int) string {
	return fmt.Sprintf("text/x.cosmic-%s-id-%d", kind, pid)
}

// WorkspaceMime returns this process's workspace drag MIME type.
func WorkspaceMime() string { return workspaceMime() }

// ToplevelMime returns this process's toplevel drag MIME type.
func ToplevelMime() string { return toplevelMime() }

// MimeFor returns the process-scoped MIME type for kind, or "" for an
// unknown kind. The value is computed on first use and never changes.
func MimeFor(kind Kind) string {
	switch kind {
	case KindWorkspace:
		return workspaceMime()
	case KindToplevel:
		return toplevelMime()
	default:
		return ""
	}
}
