package interfaces

import "time"

// Post is a locally authored blog post. Filename is the unique key and, for
// remotely imported posts, encodes the creation date and slug
// (YYYY-MM-DD-slug.md). Content holds the body only; the front-matter header
// is produced and consumed by the codec. SHA is the revision token assigned
// by the remote store, used as an optimistic-concurrency precondition on
// update and delete. Empty SHA means the post has never been published.
type Post struct {
	Filename string
	Title    string
	Date     time.Time
	Content  string
	Tags     []string
	SHA      string
}

// SiteConfig is the site-wide metadata singleton rendered into the remote
// site configuration file on publish.
type SiteConfig struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Email       string
	Theme       string
	Plugins     []string
}

// Settings captures sync bookkeeping persisted alongside posts.
type Settings struct {
	SyncEnabled bool
	LastSync    time.Time
}
