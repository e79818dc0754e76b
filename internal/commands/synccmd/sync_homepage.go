package synccmd

import (
	"context"

	"github.com/goliatone/go-pages-sync/internal/commands"
	"github.com/goliatone/go-pages-sync/internal/publisher"
	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

const syncHomepageMessageType = "pagessync.site.sync_homepage"

// SyncHomepageCommand pushes only the homepage document, bypassing the
// publish gate.
type SyncHomepageCommand struct{}

// Type implements command.Message.
func (SyncHomepageCommand) Type() string { return syncHomepageMessageType }

// SyncHomepageHandler pushes the homepage document.
type SyncHomepageHandler struct {
	inner *commands.Handler[SyncHomepageCommand]
}

// NewSyncHomepageHandler constructs a handler wired to the provided publisher.
func NewSyncHomepageHandler(service publisher.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SyncHomepageCommand]) *SyncHomepageHandler {
	exec := func(ctx context.Context, _ SyncHomepageCommand) error {
		return service.SyncHomepage(ctx)
	}

	handlerOpts := []commands.HandlerOption[SyncHomepageCommand]{
		commands.WithLogger[SyncHomepageCommand](logger),
		commands.WithOperation[SyncHomepageCommand]("site.sync_homepage"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncHomepageHandler{
		inner: commands.NewHandler[SyncHomepageCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncHomepageCommand].Execute.
func (h *SyncHomepageHandler) Execute(ctx context.Context, msg SyncHomepageCommand) error {
	return h.inner.Execute(ctx, msg)
}
