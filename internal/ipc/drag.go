package ipc

import "fmt"

// Dragger is the part of the client that runs a drag.
type Dragger interface {
	BeginDrag(payload BeginDragPayload) (*BeginDragData, error)
	Drop(payload DropPayload) (*DropData, error)
	CancelDrag() (bool, error)
}

// DragToplevel drags a toplevel onto the target with the given key. The drop
// carries the MIME type the daemon offered, never the caller's own, since
// tags are scoped to the process that begins the drag.
func DragToplevel(d Dragger, toplevelID uint32, key uint64) (*DropData, error) {
	begin, err := d.BeginDrag(BeginDragPayload{Kind: "toplevel", HandleID: toplevelID})
	if err != nil {
		return nil, err
	}
	if len(begin.MimeTypes) == 0 {
		if _, cerr := d.CancelDrag(); cerr != nil {
			return nil, fmt.Errorf("daemon offered no mime types for session %s (cancel failed: %v)", begin.SessionID, cerr)
		}
		return nil, fmt.Errorf("daemon offered no mime types for session %s", begin.SessionID)
	}

	return d.Drop(DropPayload{Key: key, MimeType: begin.MimeTypes[0]})
}
