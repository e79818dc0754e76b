package pagessync

import (
	"github.com/goliatone/go-pages-sync/internal/di"
	"github.com/goliatone/go-pages-sync/internal/publisher"
	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

// PublisherService exports the publish and synchronization contract for
// consumers of the pagessync package.
type PublisherService = publisher.Service

// Run exports the per-attempt publish record.
type Run = publisher.Run

// Post exports the local post record.
type Post = interfaces.Post

// SiteConfig exports the site configuration record.
type SiteConfig = interfaces.SiteConfig

// Settings exports the sync settings record.
type Settings = interfaces.Settings

// Store exports the local storage contract.
type Store = interfaces.Store

// RepoClient exports the remote repository contract.
type RepoClient = interfaces.RepoClient

// PublishEvents exports the per-artifact progress observer contract.
type PublishEvents = interfaces.PublishEvents

// PublishEventsFunc adapts a function to the PublishEvents contract.
type PublishEventsFunc = interfaces.PublishEventsFunc

// MarkdownRenderer exports the preview renderer contract.
type MarkdownRenderer = interfaces.MarkdownRenderer

// Module is the top level synchronizer runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a synchronizer module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Publisher returns the configured publish and synchronization service.
func (m *Module) Publisher() PublisherService {
	return m.container.Publisher()
}

// Store returns the configured local storage.
func (m *Module) Store() Store {
	return m.container.Store()
}

// Client returns the configured remote repository client.
func (m *Module) Client() RepoClient {
	return m.container.Client()
}

// Markdown returns the configured preview renderer.
func (m *Module) Markdown() MarkdownRenderer {
	return m.container.MarkdownRenderer()
}

// Preview renders Markdown source into HTML for editor previews.
func (m *Module) Preview(source []byte) ([]byte, error) {
	return m.container.MarkdownRenderer().Render(source)
}

// Close releases resources held by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
