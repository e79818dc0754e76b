package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

func TestMemoryStore_PostOrdering(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, filename := range []string{"2026-03-01-c.md", "2025-12-01-a.md", "2026-01-15-b.md"} {
		if err := store.SavePost(ctx, interfaces.Post{Filename: filename, Title: filename}); err != nil {
			t.Fatalf("SavePost(%q) error = %v", filename, err)
		}
	}

	posts, err := store.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	want := []string{"2025-12-01-a.md", "2026-01-15-b.md", "2026-03-01-c.md"}
	for i, p := range posts {
		if p.Filename != want[i] {
			t.Fatalf("ListPosts() order = %v", posts)
		}
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := interfaces.Post{Filename: "2026-01-01-x.md", Tags: []string{"one"}}
	if err := store.SavePost(ctx, original); err != nil {
		t.Fatalf("SavePost() error = %v", err)
	}

	fetched, err := store.GetPost(ctx, original.Filename)
	if err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}
	fetched.Tags[0] = "mutated"

	again, _ := store.GetPost(ctx, original.Filename)
	if again.Tags[0] != "one" {
		t.Fatal("expected stored post to be isolated from caller mutation")
	}
}

func TestMemoryStore_Singletons(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.GetSettings(ctx); !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("GetSettings() error = %v", err)
	}

	settings := interfaces.Settings{SyncEnabled: true, LastSync: time.Now()}
	if err := store.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	if got, err := store.GetSettings(ctx); err != nil || !got.SyncEnabled {
		t.Fatalf("GetSettings() = %+v, %v", got, err)
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if _, err := store.GetSettings(ctx); !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("GetSettings() after ClearAll error = %v", err)
	}
}
