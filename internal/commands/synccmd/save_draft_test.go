package synccmd

import (
	"context"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pages-sync/internal/storage"
	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
}

func TestSaveDraftGeneratesFilename(t *testing.T) {
	store := storage.NewMemoryStore()
	handler := NewSaveDraftHandler(store, fixedClock, nil)

	msg := SaveDraftCommand{
		Title:   "Hello, World!",
		Content: "First draft.",
		Tags:    []string{"go"},
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute save draft: %v", err)
	}

	saved, err := store.GetPost(context.Background(), "2026-08-29-hello-world.md")
	if err != nil {
		t.Fatalf("expected post under generated filename: %v", err)
	}
	if saved.Title != "Hello, World!" || saved.Content != "First draft." {
		t.Fatalf("saved post = %+v", saved)
	}
}

func TestSaveDraftRequiresTitle(t *testing.T) {
	store := storage.NewMemoryStore()
	handler := NewSaveDraftHandler(store, fixedClock, nil)

	err := handler.Execute(context.Background(), SaveDraftCommand{Content: "No title."})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}

	posts, _ := store.ListPosts(context.Background())
	if len(posts) != 0 {
		t.Fatalf("expected no posts saved, got %d", len(posts))
	}
}

func TestSaveDraftPreservesRevision(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	existing := interfaces.Post{
		Filename: "2026-08-01-existing.md",
		Title:    "Existing",
		Content:  "Old body.",
		SHA:      "rev-1",
	}
	if err := store.SavePost(ctx, existing); err != nil {
		t.Fatalf("seed post: %v", err)
	}

	handler := NewSaveDraftHandler(store, fixedClock, nil)
	msg := SaveDraftCommand{
		Filename: existing.Filename,
		Title:    "Existing",
		Content:  "New body.",
	}
	if err := handler.Execute(ctx, msg); err != nil {
		t.Fatalf("execute save draft: %v", err)
	}

	saved, err := store.GetPost(ctx, existing.Filename)
	if err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}
	if saved.Content != "New body." {
		t.Fatalf("content = %q", saved.Content)
	}
	if saved.SHA != "rev-1" {
		t.Fatalf("SHA = %q, want preserved revision", saved.SHA)
	}
	if !saved.Date.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date = %v, want date from filename", saved.Date)
	}
}
