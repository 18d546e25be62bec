// Package toolkit connects drag payloads and drop targets to gio's transfer
// protocol. Drop regions use their dnd.DragKey as the event tag, so the key
// is also the toolkit's hit-testing identifier.
package toolkit

import (
	"bytes"
	"fmt"
	"io"

	"gioui.org/io/event"
	"gioui.org/io/transfer"

	"github.com/1broseidon/dragshell/internal/dnd"
)

// TargetTag returns the event tag for a drop target region.
func TargetTag(target dnd.DropTarget) event.Tag {
	return dnd.KeyOf(target)
}

// SourceFilters returns one filter per MIME type the payload offers, for a
// drag source registered under tag.
func SourceFilters(tag event.Tag, p dnd.Payload) []event.Filter {
	mimes := p.AvailableMimeTypes()
	filters := make([]event.Filter, 0, len(mimes))
	for _, mime := range mimes {
		filters = append(filters, transfer.SourceFilter{Target: tag, Type: mime})
	}
	return filters
}

// TargetFilters returns one filter per MIME type a drop region accepts for
// kind.
func TargetFilters(target dnd.DropTarget, kind dnd.Kind) []event.Filter {
	tag := TargetTag(target)
	mimes := dnd.AllowedMimeTypes(kind)
	filters := make([]event.Filter, 0, len(mimes))
	for _, mime := range mimes {
		filters = append(filters, transfer.TargetFilter{Target: tag, Type: mime})
	}
	return filters
}

// Offer answers a source RequestEvent. ok is false when the payload cannot
// be exported as the requested type, in which case nothing is offered.
func Offer(tag event.Tag, p dnd.Payload, req transfer.RequestEvent) (cmd transfer.OfferCmd, ok bool) {
	data, ok := p.Bytes(req.Type)
	if !ok {
		return transfer.OfferCmd{}, false
	}
	return transfer.OfferCmd{
		Tag:  tag,
		Type: req.Type,
		Data: io.NopCloser(bytes.NewReader(data)),
	}, true
}

// Receive reads and closes the data of a target DataEvent and parses it.
// Parse failures wrap dnd.ErrMimeMismatch.
func Receive(ev transfer.DataEvent) (dnd.Payload, error) {
	rc := ev.Open()
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s transfer: %w", ev.Type, err)
	}
	p, err := dnd.Parse(data, ev.Type)
	if err != nil {
		return nil, fmt.Errorf("accept %s: %w", ev.Type, err)
	}
	return p, nil
}
