package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_PutGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	got, err := s.GetBlob(ctx, "entries")
	if err != nil || got != nil {
		t.Fatalf("GetBlob on empty dir = %q, %v", got, err)
	}

	if err := s.PutBlob(ctx, "entries", []byte(`[{"date":"2024-01-01"}]`)); err != nil {
		t.Fatalf("PutBlob: %v", err)
	}
	if err := s.PutBlob(ctx, "entries", []byte(`[]`)); err != nil {
		t.Fatalf("PutBlob overwrite: %v", err)
	}
	got, err = s.GetBlob(ctx, "entries")
	if err != nil {
		t.Fatalf("GetBlob: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("GetBlob = %q", got)
	}

	files, _ := os.ReadDir(dir)
	if len(files) != 1 || files[0].Name() != "entries.json" {
		var names []string
		for _, f := range files {
			names = append(names, f.Name())
		}
		t.Errorf("unexpected files left behind: %v", names)
	}
}

func TestStore_InvalidKey(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		if err := s.PutBlob(context.Background(), key, nil); err == nil {
			t.Errorf("PutBlob(%q) accepted", key)
		}
	}
}

func TestNew_RequiresDir(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty dir")
	}
}
