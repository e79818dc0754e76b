package storage

import (
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

type postModel struct {
	bun.BaseModel `bun:"table:posts"`

	Filename  string    `bun:",pk"`
	Title     string    `bun:"title"`
	Date      time.Time `bun:"date"`
	Content   string    `bun:"content"`
	Tags      string    `bun:"tags"`
	SHA       string    `bun:"sha"`
	UpdatedAt time.Time `bun:"updated_at"`
}

// documentModel holds the singleton slots (settings, site config, homepage)
// as one row per slot.
type documentModel struct {
	bun.BaseModel `bun:"table:documents"`

	Slot      string    `bun:",pk"`
	Body      string    `bun:"body"`
	UpdatedAt time.Time `bun:"updated_at"`
}

func modelFromPost(p interfaces.Post) postModel {
	return postModel{
		Filename: p.Filename,
		Title:    p.Title,
		Date:     p.Date,
		Content:  p.Content,
		Tags:     strings.Join(p.Tags, ","),
		SHA:      p.SHA,
	}
}

func modelToPost(m *postModel) interfaces.Post {
	p := interfaces.Post{
		Filename: m.Filename,
		Title:    m.Title,
		Date:     m.Date,
		Content:  m.Content,
		SHA:      m.SHA,
	}
	if m.Tags != "" {
		p.Tags = strings.Split(m.Tags, ",")
	}
	return p
}
