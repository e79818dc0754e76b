package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

// BunStore persists the post collection and singleton documents using a
// Bun-backed database.
type BunStore struct {
	db *bun.DB
}

var _ interfaces.Store = (*BunStore)(nil)

// NewBunStore constructs a Bun-backed store.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// Migrate creates the backing tables when they do not exist yet.
func (s *BunStore) Migrate(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*postModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	_, err := s.db.NewCreateTable().Model((*documentModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// ListPosts returns all posts ordered by filename.
func (s *BunStore) ListPosts(ctx context.Context) ([]interfaces.Post, error) {
	var models []postModel
	if err := s.db.NewSelect().Model(&models).Order("filename ASC").Scan(ctx); err != nil {
		return nil, err
	}
	posts := make([]interfaces.Post, 0, len(models))
	for i := range models {
		posts = append(posts, modelToPost(&models[i]))
	}
	return posts, nil
}

// GetPost returns one post by filename.
func (s *BunStore) GetPost(ctx context.Context, filename string) (interfaces.Post, error) {
	var model postModel
	if err := s.db.NewSelect().Model(&model).Where("filename = ?", filename).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return interfaces.Post{}, ErrPostNotFound
		}
		return interfaces.Post{}, err
	}
	return modelToPost(&model), nil
}

// SavePost upserts a post keyed by filename.
func (s *BunStore) SavePost(ctx context.Context, p interfaces.Post) error {
	if p.Filename == "" {
		return ErrFilenameRequired
	}
	model := modelFromPost(p)
	model.UpdatedAt = time.Now().UTC()
	_, err := s.db.NewInsert().
		Model(&model).
		On("CONFLICT (filename) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("date = EXCLUDED.date").
		Set("content = EXCLUDED.content").
		Set("tags = EXCLUDED.tags").
		Set("sha = EXCLUDED.sha").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// DeletePost removes a post by filename.
func (s *BunStore) DeletePost(ctx context.Context, filename string) error {
	result, err := s.db.NewDelete().
		Model((*postModel)(nil)).
		Where("filename = ?", filename).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// GetSettings returns the sync settings singleton.
func (s *BunStore) GetSettings(ctx context.Context) (interfaces.Settings, error) {
	var settings interfaces.Settings
	if err := s.getSlot(ctx, slotSettings, &settings, ErrSettingsNotFound); err != nil {
		return interfaces.Settings{}, err
	}
	return settings, nil
}

// SaveSettings stores the sync settings singleton.
func (s *BunStore) SaveSettings(ctx context.Context, settings interfaces.Settings) error {
	return s.saveSlot(ctx, slotSettings, settings)
}

// GetSiteConfig returns the site configuration singleton.
func (s *BunStore) GetSiteConfig(ctx context.Context) (interfaces.SiteConfig, error) {
	var config interfaces.SiteConfig
	if err := s.getSlot(ctx, slotSiteConfig, &config, ErrSiteConfigNotFound); err != nil {
		return interfaces.SiteConfig{}, err
	}
	return config, nil
}

// SaveSiteConfig stores the site configuration singleton.
func (s *BunStore) SaveSiteConfig(ctx context.Context, config interfaces.SiteConfig) error {
	return s.saveSlot(ctx, slotSiteConfig, config)
}

// GetHomepage returns the homepage document singleton.
func (s *BunStore) GetHomepage(ctx context.Context) (string, error) {
	var homepage string
	if err := s.getSlot(ctx, slotHomepage, &homepage, ErrHomepageNotFound); err != nil {
		return "", err
	}
	return homepage, nil
}

// SaveHomepage stores the homepage document singleton.
func (s *BunStore) SaveHomepage(ctx context.Context, content string) error {
	return s.saveSlot(ctx, slotHomepage, content)
}

// ClearAll removes every post and singleton document.
func (s *BunStore) ClearAll(ctx context.Context) error {
	if _, err := s.db.NewDelete().Model((*postModel)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return err
	}
	_, err := s.db.NewDelete().Model((*documentModel)(nil)).Where("1 = 1").Exec(ctx)
	return err
}

func (s *BunStore) getSlot(ctx context.Context, slot string, out any, missing error) error {
	var model documentModel
	if err := s.db.NewSelect().Model(&model).Where("slot = ?", slot).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return missing
		}
		return err
	}
	return json.Unmarshal([]byte(model.Body), out)
}

func (s *BunStore) saveSlot(ctx context.Context, slot string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	model := documentModel{
		Slot:      slot,
		Body:      string(body),
		UpdatedAt: time.Now().UTC(),
	}
	_, err = s.db.NewInsert().
		Model(&model).
		On("CONFLICT (slot) DO UPDATE").
		Set("body = EXCLUDED.body").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}
