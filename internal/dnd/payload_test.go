package dnd

import (
	"errors"
	"testing"

	"github.com/1broseidon/dragshell/internal/platform"
)

func TestDragToplevel_Offer(t *testing.T) {
	p := DragToplevel{}

	avail := p.AvailableMimeTypes()
	if len(avail) != 1 || avail[0] != ToplevelMime() {
		t.Fatalf("AvailableMimeTypes() = %v, want [%s]", avail, ToplevelMime())
	}

	data, ok := p.Bytes(ToplevelMime())
	if !ok {
		t.Fatal("Bytes(toplevel mime) not available")
	}
	if data == nil || len(data) != 0 {
		t.Fatalf("Bytes(toplevel mime) = %v, want empty non-nil slice", data)
	}

	if data, ok := p.Bytes(WorkspaceMime()); ok || data != nil {
		t.Fatalf("Bytes(workspace mime) = (%v, %v), want (nil, false)", data, ok)
	}
}

func TestDragToplevel_OfferAndAllowedStayInStep(t *testing.T) {
	avail := DragToplevel{}.AvailableMimeTypes()
	allowed := AllowedMimeTypes(KindToplevel)
	if len(avail) != len(allowed) {
		t.Fatalf("available %v vs allowed %v", avail, allowed)
	}
	for i := range avail {
		if avail[i] != allowed[i] {
			t.Fatalf("available %v vs allowed %v", avail, allowed)
		}
	}

	avail = DragWorkspace{}.AvailableMimeTypes()
	allowed = AllowedMimeTypes(KindWorkspace)
	if len(avail) != 1 || len(allowed) != 1 || avail[0] != allowed[0] {
		t.Fatalf("workspace available %v vs allowed %v", avail, allowed)
	}
}

func TestRoundTrip_EveryKnownTag(t *testing.T) {
	payloads := []Payload{DragToplevel{}, DragWorkspace{}}
	for _, p := range payloads {
		for _, mime := range p.AvailableMimeTypes() {
			data, ok := p.Bytes(mime)
			if !ok {
				t.Fatalf("%s: Bytes(%q) not available", p.Kind(), mime)
			}
			got, err := Parse(data, mime)
			if err != nil {
				t.Fatalf("%s: Parse(%q) error: %v", p.Kind(), mime, err)
			}
			if got != p {
				t.Fatalf("%s: Parse(%q) = %#v, want %#v", p.Kind(), mime, got, p)
			}
		}
	}
}

func TestParse_UnknownTagAlwaysMismatches(t *testing.T) {
	bodies := map[string][]byte{
		"nil":     nil,
		"empty":   {},
		"garbage": {0x00, 0xff, 0x13, 0x37, 0x80},
		"text":    []byte("text/x.cosmic-toplevel-id-1"),
	}
	mimes := []string{
		"",
		"text/plain",
		"text/x.cosmic-toplevel-id-0",
		ToplevelMime() + "0",
		"TEXT/X.COSMIC-TOPLEVEL-ID",
	}
	for name, body := range bodies {
		for _, mime := range mimes {
			if _, err := ParseToplevel(body, mime); !errors.Is(err, ErrMimeMismatch) {
				t.Errorf("ParseToplevel(%s, %q) err = %v, want ErrMimeMismatch", name, mime, err)
			}
			if _, err := Parse(body, mime); !errors.Is(err, ErrMimeMismatch) {
				t.Errorf("Parse(%s, %q) err = %v, want ErrMimeMismatch", name, mime, err)
			}
		}
	}
}

func TestParseToplevel_IgnoresBytes(t *testing.T) {
	if _, err := ParseToplevel([]byte{0xde, 0xad, 0xbe, 0xef}, ToplevelMime()); err != nil {
		t.Fatalf("ParseToplevel with garbage body: %v", err)
	}
}

func TestParseToplevel_RejectsWorkspaceTag(t *testing.T) {
	if _, err := ParseToplevel(nil, WorkspaceMime()); !errors.Is(err, ErrMimeMismatch) {
		t.Fatalf("err = %v, want ErrMimeMismatch", err)
	}
	if _, err := ParseWorkspace(nil, ToplevelMime()); !errors.Is(err, ErrMimeMismatch) {
		t.Fatalf("err = %v, want ErrMimeMismatch", err)
	}
}

func TestPayloadFor(t *testing.T) {
	out := platform.Output{ID: 3, Name: "DP-1"}
	tests := []struct {
		name    string
		surface DragSurface
		want    Payload
	}{
		{"toplevel", ToplevelSurface{Handle: platform.ToplevelHandle{ID: 0x1a00003}, Output: out}, DragToplevel{}},
		{"workspace", WorkspaceSurface{Handle: platform.WorkspaceHandle{ID: 2}, Output: out}, DragWorkspace{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PayloadFor(tt.surface); got != tt.want {
				t.Fatalf("PayloadFor = %#v, want %#v", got, tt.want)
			}
			if tt.surface.Kind() != tt.want.Kind() {
				t.Fatalf("surface kind %s, payload kind %s", tt.surface.Kind(), tt.want.Kind())
			}
			if tt.surface.OutputHandle() != out {
				t.Fatalf("OutputHandle = %v, want %v", tt.surface.OutputHandle(), out)
			}
		})
	}
}
