package dnd

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
)

func TestMimeString_Format(t *testing.T) {
	tests := []struct {
		kind Kind
		pid  int
		want string
	}{
		{KindToplevel, 4242, "text/x.cosmic-toplevel-id-4242"},
		{KindWorkspace, 4242, "text/x.cosmic-workspace-id-4242"},
		{KindToplevel, 1, "text/x.cosmic-toplevel-id-1"},
	}
	for _, tt := range tests {
		if got := mimeString(tt.kind, tt.pid); got != tt.want {
			t.Errorf("mimeString(%s, %d) = %q, want %q", tt.kind, tt.pid, got, tt.want)
		}
	}
}

func TestMimeFor_EmbedsOwnPID(t *testing.T) {
	pid := strconv.Itoa(os.Getpid())
	for _, kind := range []Kind{KindWorkspace, KindToplevel} {
		got := MimeFor(kind)
		if !strings.HasSuffix(got, "-id-"+pid) {
			t.Fatalf("MimeFor(%s) = %q, want suffix -id-%s", kind, got, pid)
		}
		if n := strings.Count(got, pid); n != 1 {
			t.Fatalf("MimeFor(%s) = %q contains pid %d times, want 1", kind, got, n)
		}
	}
	if MimeFor(KindWorkspace) == MimeFor(KindToplevel) {
		t.Fatal("workspace and toplevel tags must differ")
	}
}

func TestMimeFor_UnknownKind(t *testing.T) {
	if got := MimeFor(Kind(99)); got != "" {
		t.Fatalf("MimeFor(unknown) = %q, want empty", got)
	}
	if got := AllowedMimeTypes(Kind(99)); got != nil {
		t.Fatalf("AllowedMimeTypes(unknown) = %v, want nil", got)
	}
}

func TestMimeFor_ConcurrentCallersAgree(t *testing.T) {
	const n = 64
	results := make([]string, n)
	var start, wg sync.WaitGroup
	start.Add(1)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start.Wait()
			results[i] = MimeFor(KindToplevel)
		}(i)
	}
	start.Done()
	wg.Wait()

	want := ToplevelMime()
	for i, got := range results {
		if got != want {
			t.Fatalf("caller %d got %q, want %q", i, got, want)
		}
	}
}
