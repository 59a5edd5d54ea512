package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func collectPaths(t *testing.T, ch <-chan string, want int, timeout time.Duration) map[string]bool {
	t.Helper()
	got := map[string]bool{}
	deadline := time.After(timeout)
	for len(got) < want {
		select {
		case p, ok := <-ch:
			if !ok {
				t.Fatalf("event channel closed after %d of %d events", len(got), want)
			}
			got[p] = true
		case <-deadline:
			t.Fatalf("timed out after %d of %d events", len(got), want)
		}
	}
	return got
}

func TestStartWatcherRequiresRoot(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatcherConfig{}, nil)
	if err == nil {
		t.Fatal("expected error for empty root but got none")
	}
}

func TestStartWatcherMissingRoot(t *testing.T) {
	cfg := WatcherConfig{Root: filepath.Join(t.TempDir(), "does-not-exist")}
	_, _, err := StartWatcher(context.Background(), cfg, nil)
	if err == nil {
		t.Fatal("expected error for missing root but got none")
	}
}

func TestStartWatcherInitialScan(t *testing.T) {
	tempDir := t.TempDir()
	first := filepath.Join(tempDir, "intake.pdf")
	second := filepath.Join(tempDir, "MEMO.PDF")
	writeTestFile(t, first, "pdf bytes")
	writeTestFile(t, second, "pdf bytes")
	writeTestFile(t, filepath.Join(tempDir, "notes.txt"), "not a pdf")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatcherConfig{Root: tempDir, InitialScan: true}, nil)
	if err != nil {
		t.Fatalf("expected watcher to start but got %v", err)
	}

	got := collectPaths(t, evCh, 2, 2*time.Second)
	if !got[first] || !got[second] {
		t.Errorf("expected both PDFs in initial scan but got %v", got)
	}

	select {
	case p := <-evCh:
		t.Errorf("expected no further events but got %q", p)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestStartWatcherDetectsNewFile(t *testing.T) {
	tempDir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatcherConfig{Root: tempDir, Debounce: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("expected watcher to start but got %v", err)
	}

	dropped := filepath.Join(tempDir, "dropped.pdf")
	writeTestFile(t, dropped, "pdf bytes")

	got := collectPaths(t, evCh, 1, 3*time.Second)
	if !got[dropped] {
		t.Errorf("expected event for %s but got %v", dropped, got)
	}
}

func TestStartWatcherIgnoresOtherExtensions(t *testing.T) {
	tempDir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatcherConfig{Root: tempDir}, nil)
	if err != nil {
		t.Fatalf("expected watcher to start but got %v", err)
	}

	writeTestFile(t, filepath.Join(tempDir, "notes.txt"), "plain text")

	select {
	case p := <-evCh:
		t.Errorf("expected no event for non-PDF but got %q", p)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestStartWatcherDetectsNewSubdirectory(t *testing.T) {
	tempDir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatcherConfig{Root: tempDir, Debounce: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("expected watcher to start but got %v", err)
	}

	subDir := filepath.Join(tempDir, "scans")
	if err := os.Mkdir(subDir, 0o750); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}
	// Give the watcher a moment to pick up the new directory.
	time.Sleep(300 * time.Millisecond)

	nested := filepath.Join(subDir, "scan.pdf")
	writeTestFile(t, nested, "pdf bytes")

	got := collectPaths(t, evCh, 1, 3*time.Second)
	if !got[nested] {
		t.Errorf("expected event for %s but got %v", nested, got)
	}
}

func TestStartWatcherDebounceBurst(t *testing.T) {
	tempDir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatcherConfig{Root: tempDir, Debounce: time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("expected watcher to start but got %v", err)
	}

	// Drain in the background so the burst below keeps generating events
	// while fired debounce timers are flushing the pending set.
	seen := make(chan map[string]bool, 1)
	go func() {
		got := map[string]bool{}
		for p := range evCh {
			got[p] = true
		}
		seen <- got
	}()

	paths := make([]string, 5)
	for i := range paths {
		paths[i] = filepath.Join(tempDir, string(rune('a'+i))+".pdf")
	}
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		for _, p := range paths {
			writeTestFile(t, p, "pdf bytes")
		}
	}

	// Let the last debounce window close, then shut down mid-flight.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case got := <-seen:
		for _, p := range paths {
			if !got[p] {
				t.Errorf("expected event for %s but got %v", p, got)
			}
		}
	case <-time.After(3 * time.Second):
		t.Fatal("event channel did not close after cancel")
	}
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"intake.pdf", true},
		{"INTAKE.PDF", true},
		{"/watch/dir/form.Pdf", true},
		{"intake.pdf.contact.json", false},
		{"notes.txt", false},
		{"pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isPDF(tt.path); got != tt.expected {
			t.Errorf("isPDF(%q): expected %v but got %v", tt.path, tt.expected, got)
		}
	}
}
