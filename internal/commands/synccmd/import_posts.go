package synccmd

import (
	"context"

	"github.com/goliatone/go-pages-sync/internal/commands"
	"github.com/goliatone/go-pages-sync/internal/publisher"
	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

const importPostsMessageType = "pagessync.posts.import"

// ImportRemotePostsCommand replaces the local post collection with the posts
// currently stored in the remote repository.
type ImportRemotePostsCommand struct{}

// Type implements command.Message.
func (ImportRemotePostsCommand) Type() string { return importPostsMessageType }

// ImportRemotePostsHandler pulls the remote post collection into local
// storage.
type ImportRemotePostsHandler struct {
	inner *commands.Handler[ImportRemotePostsCommand]
}

// NewImportRemotePostsHandler constructs a handler wired to the provided
// publisher.
func NewImportRemotePostsHandler(service publisher.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportRemotePostsCommand]) *ImportRemotePostsHandler {
	exec := func(ctx context.Context, _ ImportRemotePostsCommand) error {
		_, err := service.ImportPosts(ctx)
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportRemotePostsCommand]{
		commands.WithLogger[ImportRemotePostsCommand](logger),
		commands.WithOperation[ImportRemotePostsCommand]("posts.import"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportRemotePostsHandler{
		inner: commands.NewHandler[ImportRemotePostsCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportRemotePostsCommand].Execute.
func (h *ImportRemotePostsHandler) Execute(ctx context.Context, msg ImportRemotePostsCommand) error {
	return h.inner.Execute(ctx, msg)
}
