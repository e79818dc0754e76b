package interfaces

import "context"

// Store is the local storage boundary consumed by the synchronizer. All
// operations are request/response; implementations are expected to behave
// atomically per call, so no additional locking is layered on top.
type Store interface {
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, filename string) (Post, error)
	SavePost(ctx context.Context, post Post) error
	DeletePost(ctx context.Context, filename string) error

	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, settings Settings) error

	GetSiteConfig(ctx context.Context) (SiteConfig, error)
	SaveSiteConfig(ctx context.Context, config SiteConfig) error

	GetHomepage(ctx context.Context) (string, error)
	SaveHomepage(ctx context.Context, content string) error

	ClearAll(ctx context.Context) error
}
