package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

func newTestStore(t *testing.T) *BunStore {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", "file:pagessync_test?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	store := NewBunStore(db)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	return store
}

func TestBunStore_PostLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.GetPost(ctx, "missing.md"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("GetPost() error = %v, want ErrPostNotFound", err)
	}

	p := interfaces.Post{
		Filename: "2026-02-02-first.md",
		Title:    "First",
		Date:     time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		Content:  "Body.",
		Tags:     []string{"go", "blog"},
	}
	if err := store.SavePost(ctx, p); err != nil {
		t.Fatalf("SavePost() error = %v", err)
	}

	p.SHA = "abc123"
	p.Title = "First (edited)"
	if err := store.SavePost(ctx, p); err != nil {
		t.Fatalf("SavePost() upsert error = %v", err)
	}

	fetched, err := store.GetPost(ctx, p.Filename)
	if err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}
	if fetched.Title != "First (edited)" || fetched.SHA != "abc123" {
		t.Fatalf("GetPost() = %+v", fetched)
	}
	if len(fetched.Tags) != 2 || fetched.Tags[0] != "go" {
		t.Fatalf("Tags = %v", fetched.Tags)
	}

	posts, err := store.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("ListPosts() returned %d posts", len(posts))
	}

	if err := store.DeletePost(ctx, p.Filename); err != nil {
		t.Fatalf("DeletePost() error = %v", err)
	}
	if err := store.DeletePost(ctx, p.Filename); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("DeletePost() repeat error = %v", err)
	}
}

func TestBunStore_SavePostRequiresFilename(t *testing.T) {
	store := newTestStore(t)

	if err := store.SavePost(context.Background(), interfaces.Post{Title: "No Key"}); !errors.Is(err, ErrFilenameRequired) {
		t.Fatalf("SavePost() error = %v, want ErrFilenameRequired", err)
	}
}

func TestBunStore_Singletons(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.GetSiteConfig(ctx); !errors.Is(err, ErrSiteConfigNotFound) {
		t.Fatalf("GetSiteConfig() error = %v", err)
	}
	if _, err := store.GetHomepage(ctx); !errors.Is(err, ErrHomepageNotFound) {
		t.Fatalf("GetHomepage() error = %v", err)
	}
	if _, err := store.GetSettings(ctx); !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("GetSettings() error = %v", err)
	}

	config := interfaces.SiteConfig{Title: "Blog", Plugins: []string{"jekyll-feed"}}
	if err := store.SaveSiteConfig(ctx, config); err != nil {
		t.Fatalf("SaveSiteConfig() error = %v", err)
	}
	fetched, err := store.GetSiteConfig(ctx)
	if err != nil {
		t.Fatalf("GetSiteConfig() error = %v", err)
	}
	if fetched.Title != "Blog" || len(fetched.Plugins) != 1 {
		t.Fatalf("GetSiteConfig() = %+v", fetched)
	}

	if err := store.SaveHomepage(ctx, "# Welcome\n"); err != nil {
		t.Fatalf("SaveHomepage() error = %v", err)
	}
	homepage, err := store.GetHomepage(ctx)
	if err != nil || homepage != "# Welcome\n" {
		t.Fatalf("GetHomepage() = %q, %v", homepage, err)
	}

	lastSync := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if err := store.SaveSettings(ctx, interfaces.Settings{SyncEnabled: true, LastSync: lastSync}); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	settings, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if !settings.SyncEnabled || !settings.LastSync.Equal(lastSync) {
		t.Fatalf("GetSettings() = %+v", settings)
	}
}

func TestBunStore_ClearAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.SavePost(ctx, interfaces.Post{Filename: "2026-01-01-a.md", Title: "A"})
	_ = store.SaveHomepage(ctx, "home")

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	posts, err := store.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no posts after ClearAll, got %d", len(posts))
	}
	if _, err := store.GetHomepage(ctx); !errors.Is(err, ErrHomepageNotFound) {
		t.Fatalf("GetHomepage() after ClearAll error = %v", err)
	}
}
