package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/feedwire/feed-service/internal/core/ports"
)

func TestDiskStore_PutAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	err = store.Put(context.Background(), "cat-123.png", ports.Upload{
		Filename:    "cat.png",
		ContentType: "image/png",
		Content:     strings.NewReader("pngdata"),
	})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "uploads", "cat-123.png"))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(raw) != "pngdata" {
		t.Fatalf("unexpected file content: %q", raw)
	}

	if err := store.Remove(context.Background(), "cat-123.png"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "uploads", "cat-123.png")); !os.IsNotExist(err) {
		t.Fatalf("expected file gone, got %v", err)
	}
}

func TestDiskStore_RemoveMissingIsNoop(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	if err := store.Remove(context.Background(), "never-existed.png"); err != nil {
		t.Fatalf("removing an absent blob must succeed, got %v", err)
	}
}

func TestDiskStore_RejectsPathEscape(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	for _, name := range []string{"../escape.png", "a/../../escape.png"} {
		if err := store.Put(context.Background(), name, ports.Upload{Content: strings.NewReader("x")}); err == nil {
			t.Fatalf("expected Put(%q) to be rejected", name)
		}
		if err := store.Remove(context.Background(), name); err == nil {
			t.Fatalf("expected Remove(%q) to be rejected", name)
		}
	}
}

func TestNewDiskStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewDiskStore(dir); err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected upload directory created, got %v", err)
	}
}
