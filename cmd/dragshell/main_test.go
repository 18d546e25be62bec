package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/1broseidon/dragshell/internal/ipc"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"7", 7, false},
		{"0x1c00003", 0x1c00003, false},
		{"4294967295", 4294967295, false},
		{"4294967296", 0, true},
		{"-1", 0, true},
		{"seven", 0, true},
	}
	for _, tt := range tests {
		got, err := parseID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseID(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("parseID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWriteTable_AlignsWideCharacters(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, []string{"KEY", "WORKSPACE", "OUTPUT"}, [][]string{
		{"0", "作業", "DP-1"},
		{"1", "mail", "DP-1"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	// "作業" is four columns wide, so OUTPUT starts at the same column in every row.
	want := strings.Index(lines[0], "OUTPUT")
	for _, line := range lines[1:] {
		idx := strings.Index(line, "DP-1")
		prefix := line[:idx]
		if w := displayWidth(prefix); w != want {
			t.Fatalf("row %q: output column at %d, want %d", line, w, want)
		}
	}
}

func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r >= 0x1100 {
			w += 2
		} else {
			w++
		}
	}
	return w
}

func TestTargetRows(t *testing.T) {
	rows := targetRows([]ipc.TargetInfo{
		{Key: 3, Kind: "workspace-sidebar-entry", WorkspaceID: 3, OutputID: 61, OutputName: "HDMI-1"},
	})
	if len(rows) != 1 {
		t.Fatalf("rows = %v", rows)
	}
	got := strings.Join(rows[0], "|")
	if got != "3|workspace-sidebar-entry|workspace#3|HDMI-1" {
		t.Fatalf("row = %q", got)
	}
}

func TestToplevelRows(t *testing.T) {
	rows := toplevelRows([]ipc.ToplevelInfo{{ID: 0x1c00003, Title: "term", AppID: "kitty"}})
	if got := strings.Join(rows[0], "|"); got != "0x1c00003|kitty|term" {
		t.Fatalf("row = %q", got)
	}
}

func TestRunKey_RejectsOutOfRangeOutput(t *testing.T) {
	tests := []struct {
		args []string
		want int
	}{
		{[]string{"--workspace", "1", "--output", "4294967296"}, 2},
		{[]string{"--workspace", "1", "--output", "0x3c"}, 0},
		{[]string{"--workspace", "1"}, 0},
	}
	for _, tt := range tests {
		if got := runKey(tt.args); got != tt.want {
			t.Fatalf("runKey(%q) = %d, want %d", tt.args, got, tt.want)
		}
	}
}
