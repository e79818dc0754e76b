package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

// MemoryStore keeps the post collection and singleton documents in memory.
// It backs tests and hosts that bring their own persistence.
type MemoryStore struct {
	mu         sync.RWMutex
	posts      map[string]interfaces.Post
	settings   *interfaces.Settings
	siteConfig *interfaces.SiteConfig
	homepage   *string
}

var _ interfaces.Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[string]interfaces.Post)}
}

// ListPosts returns all posts ordered by filename, which sorts date-prefixed
// posts chronologically.
func (s *MemoryStore) ListPosts(context.Context) ([]interfaces.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]interfaces.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, clonePost(p))
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].Filename < posts[j].Filename })
	return posts, nil
}

// GetPost returns one post by filename.
func (s *MemoryStore) GetPost(_ context.Context, filename string) (interfaces.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[filename]
	if !ok {
		return interfaces.Post{}, ErrPostNotFound
	}
	return clonePost(p), nil
}

// SavePost upserts a post keyed by filename.
func (s *MemoryStore) SavePost(_ context.Context, p interfaces.Post) error {
	if p.Filename == "" {
		return ErrFilenameRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.Filename] = clonePost(p)
	return nil
}

// DeletePost removes a post by filename.
func (s *MemoryStore) DeletePost(_ context.Context, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[filename]; !ok {
		return ErrPostNotFound
	}
	delete(s.posts, filename)
	return nil
}

// GetSettings returns the sync settings singleton.
func (s *MemoryStore) GetSettings(context.Context) (interfaces.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return interfaces.Settings{}, ErrSettingsNotFound
	}
	return *s.settings, nil
}

// SaveSettings stores the sync settings singleton.
func (s *MemoryStore) SaveSettings(_ context.Context, settings interfaces.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := settings
	s.settings = &copied
	return nil
}

// GetSiteConfig returns the site configuration singleton.
func (s *MemoryStore) GetSiteConfig(context.Context) (interfaces.SiteConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.siteConfig == nil {
		return interfaces.SiteConfig{}, ErrSiteConfigNotFound
	}
	config := *s.siteConfig
	config.Plugins = append([]string(nil), s.siteConfig.Plugins...)
	return config, nil
}

// SaveSiteConfig stores the site configuration singleton.
func (s *MemoryStore) SaveSiteConfig(_ context.Context, config interfaces.SiteConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := config
	copied.Plugins = append([]string(nil), config.Plugins...)
	s.siteConfig = &copied
	return nil
}

// GetHomepage returns the homepage document singleton.
func (s *MemoryStore) GetHomepage(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.homepage == nil {
		return "", ErrHomepageNotFound
	}
	return *s.homepage, nil
}

// SaveHomepage stores the homepage document singleton.
func (s *MemoryStore) SaveHomepage(_ context.Context, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.homepage = &content
	return nil
}

// ClearAll removes every post and singleton document.
func (s *MemoryStore) ClearAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = make(map[string]interfaces.Post)
	s.settings = nil
	s.siteConfig = nil
	s.homepage = nil
	return nil
}

func clonePost(p interfaces.Post) interfaces.Post {
	copied := p
	copied.Tags = append([]string(nil), p.Tags...)
	return copied
}
