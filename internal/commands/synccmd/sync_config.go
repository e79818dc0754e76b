package synccmd

import (
	"context"

	"github.com/goliatone/go-pages-sync/internal/commands"
	"github.com/goliatone/go-pages-sync/internal/publisher"
	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

const syncSiteConfigMessageType = "pagessync.site.sync_config"

// SyncSiteConfigCommand pushes only the site configuration file, bypassing
// the publish gate.
type SyncSiteConfigCommand struct{}

// Type implements command.Message.
func (SyncSiteConfigCommand) Type() string { return syncSiteConfigMessageType }

// SyncSiteConfigHandler pushes the rendered site configuration.
type SyncSiteConfigHandler struct {
	inner *commands.Handler[SyncSiteConfigCommand]
}

// NewSyncSiteConfigHandler constructs a handler wired to the provided publisher.
func NewSyncSiteConfigHandler(service publisher.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SyncSiteConfigCommand]) *SyncSiteConfigHandler {
	exec := func(ctx context.Context, _ SyncSiteConfigCommand) error {
		return service.SyncSiteConfig(ctx)
	}

	handlerOpts := []commands.HandlerOption[SyncSiteConfigCommand]{
		commands.WithLogger[SyncSiteConfigCommand](logger),
		commands.WithOperation[SyncSiteConfigCommand]("site.sync_config"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncSiteConfigHandler{
		inner: commands.NewHandler[SyncSiteConfigCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncSiteConfigCommand].Execute.
func (h *SyncSiteConfigHandler) Execute(ctx context.Context, msg SyncSiteConfigCommand) error {
	return h.inner.Execute(ctx, msg)
}
