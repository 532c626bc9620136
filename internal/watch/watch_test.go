package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

func TestRelevant(t *testing.T) {
	w := New(Config{FilePrefix: "Parse Counts - "}, nil, nil)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"raid csv", "/data/Parse Counts - Nerub-ar Palace.csv", true},
		{"wrong prefix", "/data/Scaling - Something.csv", false},
		{"wrong extension", "/data/Parse Counts - Nerub-ar Palace.tmp", false},
		{"unrelated file", "/data/notes.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.path); got != tt.want {
				t.Errorf("relevant(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	store := raids.NewStore(nil, nil)

	reloaded := make(chan *raids.Collection, 4)
	w := New(Config{
		Dir:        dir,
		FilePrefix: "Parse Counts - ",
		Order:      []string{"Raid A"},
		Debounce:   50 * time.Millisecond,
	}, store, func(c *raids.Collection, _ []error) {
		reloaded <- c
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	csv := "Class,Spec,Parses\nWarrior,Arms,100\n"
	path := filepath.Join(dir, "Parse Counts - Raid A.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	select {
	case c := <-reloaded:
		if c.Len() != 1 {
			t.Errorf("reloaded collection has %d raids, want 1", c.Len())
		}
		if got := store.Collection(); got == nil || got.Len() != 1 {
			t.Errorf("store not updated: %v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload within 5s")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
