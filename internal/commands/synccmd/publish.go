package synccmd

import (
	"context"

	"github.com/goliatone/go-pages-sync/internal/commands"
	"github.com/goliatone/go-pages-sync/internal/publisher"
	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

const publishSiteMessageType = "pagessync.site.publish"

// PublishSiteCommand requests a full publish of the local site to the remote
// repository. The message carries no payload; the publisher reads everything
// from local storage.
type PublishSiteCommand struct{}

// Type implements command.Message.
func (PublishSiteCommand) Type() string { return publishSiteMessageType }

// PublishSiteHandler runs the bulk publish via the shared command handler
// foundation. Gate declines are not errors; the run outcome is logged and the
// caller inspects the publisher directly when it needs the run record.
type PublishSiteHandler struct {
	inner *commands.Handler[PublishSiteCommand]
}

// NewPublishSiteHandler constructs a handler wired to the provided publisher.
func NewPublishSiteHandler(service publisher.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishSiteCommand]) *PublishSiteHandler {
	exec := func(ctx context.Context, _ PublishSiteCommand) error {
		_, err := service.PublishAndRefresh(ctx)
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishSiteCommand]{
		commands.WithLogger[PublishSiteCommand](logger),
		commands.WithOperation[PublishSiteCommand]("site.publish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishSiteHandler{
		inner: commands.NewHandler[PublishSiteCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishSiteCommand].Execute.
func (h *PublishSiteHandler) Execute(ctx context.Context, msg PublishSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
