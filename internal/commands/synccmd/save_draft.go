package synccmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-pages-sync/internal/commands"
	"github.com/goliatone/go-pages-sync/internal/post"
	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

const saveDraftMessageType = "pagessync.posts.save_draft"

// SaveDraftCommand stores a post draft locally. When Filename is empty a
// date-slug filename is derived from the title; an explicit filename targets
// an existing post.
type SaveDraftCommand struct {
	Filename string     `json:"filename,omitempty"`
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Tags     []string   `json:"tags,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

// Type implements command.Message.
func (SaveDraftCommand) Type() string { return saveDraftMessageType }

// Validate ensures the message carries the required fields before reaching
// handlers.
func (m SaveDraftCommand) Validate() error {
	errs := validation.Errors{}
	if m.Title == "" {
		errs["title"] = validation.NewError("pagessync.posts.save_draft.title_required", "title is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveDraftHandler persists drafts into local storage using the shared
// command handler foundation.
type SaveDraftHandler struct {
	inner *commands.Handler[SaveDraftCommand]
}

// NewSaveDraftHandler constructs a handler wired to the provided store. The
// clock supplies the date used when neither the message nor the filename
// carries one; nil means time.Now.
func NewSaveDraftHandler(store interfaces.Store, clock func() time.Time, logger interfaces.Logger, opts ...commands.HandlerOption[SaveDraftCommand]) *SaveDraftHandler {
	if clock == nil {
		clock = time.Now
	}

	exec := func(ctx context.Context, msg SaveDraftCommand) error {
		date := clock()
		if msg.Date != nil {
			date = *msg.Date
		}

		filename := msg.Filename
		if filename == "" {
			generated, err := post.NewFilename(msg.Title, date)
			if err != nil {
				return err
			}
			filename = generated
		} else if fromName, ok := post.DateFromFilename(filename); ok && msg.Date == nil {
			date = fromName
		}

		record := interfaces.Post{
			Filename: filename,
			Title:    msg.Title,
			Date:     date,
			Content:  msg.Content,
			Tags:     msg.Tags,
		}
		if existing, err := store.GetPost(ctx, filename); err == nil {
			// Preserve the remote revision so the next publish updates the
			// file instead of colliding.
			record.SHA = existing.SHA
		}
		return store.SavePost(ctx, record)
	}

	handlerOpts := []commands.HandlerOption[SaveDraftCommand]{
		commands.WithLogger[SaveDraftCommand](logger),
		commands.WithOperation[SaveDraftCommand]("posts.save_draft"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveDraftHandler{
		inner: commands.NewHandler[SaveDraftCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveDraftCommand].Execute.
func (h *SaveDraftHandler) Execute(ctx context.Context, msg SaveDraftCommand) error {
	return h.inner.Execute(ctx, msg)
}
