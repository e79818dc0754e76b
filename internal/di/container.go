package di

import (
	"context"
	"database/sql"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-pages-sync/internal/gate"
	"github.com/goliatone/go-pages-sync/internal/github"
	"github.com/goliatone/go-pages-sync/internal/logging"
	"github.com/goliatone/go-pages-sync/internal/logging/gologger"
	"github.com/goliatone/go-pages-sync/internal/markdown"
	"github.com/goliatone/go-pages-sync/internal/post"
	"github.com/goliatone/go-pages-sync/internal/publisher"
	"github.com/goliatone/go-pages-sync/internal/runtimeconfig"
	"github.com/goliatone/go-pages-sync/internal/storage"
	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

// Container wires module dependencies from the runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	bunDB          *bun.DB
	ownedDB        *sql.DB
	store          interfaces.Store
	client         interfaces.RepoClient
	gate           *gate.Gate
	codec          *post.Codec
	renderer       interfaces.MarkdownRenderer
	events         interfaces.PublishEvents
	publisherSvc   publisher.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an externally managed database handle for the bun
// storage provider.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithStore overrides the default storage binding.
func WithStore(store interfaces.Store) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithClient overrides the default repository client binding.
func WithClient(client interfaces.RepoClient) Option {
	return func(c *Container) {
		c.client = client
	}
}

// WithEvents registers an observer for per-artifact publish progress.
func WithEvents(events interfaces.PublishEvents) Option {
	return func(c *Container) {
		c.events = events
	}
}

// WithPublisher overrides the default publisher service binding.
func WithPublisher(svc publisher.Service) Option {
	return func(c *Container) {
		c.publisherSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	if err := c.configureClient(); err != nil {
		c.Close()
		return nil, err
	}
	c.configurePublisher()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}

	cfg := gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	}
	// The console provider is go-logger with its console sink.
	if strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "console") && cfg.Format == "" {
		cfg.Format = "console"
	}

	provider, err := gologger.NewProvider(cfg)
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureStorage() error {
	if c.store != nil {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider)) {
	case "bun", "sqlite":
		if c.bunDB == nil {
			sqldb, err := sql.Open("sqlite3", c.Config.Storage.DSN)
			if err != nil {
				return err
			}
			c.ownedDB = sqldb
			c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
		}
		store := storage.NewBunStore(c.bunDB)
		if err := store.Migrate(context.Background()); err != nil {
			c.Close()
			return err
		}
		c.store = store
	default:
		c.store = storage.NewMemoryStore()
	}
	return nil
}

func (c *Container) configureClient() error {
	if c.client == nil {
		clientOpts := []github.ClientOption{
			github.WithLogger(logging.GitHubLogger(c.loggerProvider)),
			github.WithBaseURL(c.Config.Remote.BaseURL),
			github.WithPacing(c.Config.Remote.RequestSpacing),
			github.WithCommitter(github.Committer{
				Name:  c.Config.Remote.Committer.Name,
				Email: c.Config.Remote.Committer.Email,
			}),
		}
		c.client = github.NewClient(clientOpts...)
	}
	return c.client.Configure(c.Config.Remote.RepoURL, c.Config.Remote.Token)
}

func (c *Container) configurePublisher() {
	gateOpts := []gate.Option{
		gate.WithLogger(logging.GateLogger(c.loggerProvider)),
	}
	if c.Config.Publish.Cooldown > 0 {
		gateOpts = append(gateOpts, gate.WithCooldown(c.Config.Publish.Cooldown))
	}
	if c.Config.Publish.StaleTimeout > 0 {
		gateOpts = append(gateOpts, gate.WithStaleTimeout(c.Config.Publish.StaleTimeout))
	}
	c.gate = gate.New(gateOpts...)

	c.codec = post.NewCodec()
	c.renderer = markdown.NewGoldmarkRenderer(markdown.Options{
		Extensions: c.Config.Markdown.Extensions,
		HardWraps:  c.Config.Markdown.HardWraps,
		SafeMode:   c.Config.Markdown.SafeMode,
	})

	if c.publisherSvc == nil {
		svc, err := publisher.NewService(publisher.Config{
			Store:  c.store,
			Client: c.client,
			Gate:   c.gate,
			Codec:  c.codec,
			Events: c.events,
			Logger: logging.PublisherLogger(c.loggerProvider),
			Pacing: &publisher.PacingPolicy{PostDelay: c.Config.Publish.PostDelay},
		})
		if err != nil {
			// All required dependencies are bound above; reaching this is a
			// programming error.
			panic(err)
		}
		c.publisherSvc = svc
	}
}

// Close releases resources the container opened itself. Injected handles stay
// open.
func (c *Container) Close() error {
	if closer, ok := c.client.(interface{ Close() }); ok {
		closer.Close()
	}
	if c.ownedDB != nil {
		err := c.ownedDB.Close()
		c.ownedDB = nil
		return err
	}
	return nil
}

// LoggerProvider returns the bound logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Store returns the bound local storage.
func (c *Container) Store() interfaces.Store {
	return c.store
}

// Client returns the bound repository client.
func (c *Container) Client() interfaces.RepoClient {
	return c.client
}

// Gate returns the publish gate shared by every publisher entry point.
func (c *Container) Gate() *gate.Gate {
	return c.gate
}

// Codec returns the post front-matter codec.
func (c *Container) Codec() *post.Codec {
	return c.codec
}

// MarkdownRenderer returns the preview renderer.
func (c *Container) MarkdownRenderer() interfaces.MarkdownRenderer {
	return c.renderer
}

// Publisher returns the publish and synchronization service.
func (c *Container) Publisher() publisher.Service {
	return c.publisherSvc
}
