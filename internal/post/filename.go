package post

import (
	"errors"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

// Extension is the fixed file extension for posts in the remote posts
// directory.
const Extension = ".md"

// ErrTitleRequired indicates a filename cannot be derived from an empty title.
var ErrTitleRequired = errors.New("post: title is required to build a filename")

var filenameDatePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-`)

// NewFilename builds the canonical YYYY-MM-DD-slug.md filename for a post
// authored locally.
func NewFilename(title string, date time.Time) (string, error) {
	normalized, err := slug.Normalize(strings.TrimSpace(title))
	if err != nil || normalized == "" {
		return "", ErrTitleRequired
	}
	return date.Format("2006-01-02") + "-" + normalized + Extension, nil
}

// DateFromFilename recovers the creation date from the YYYY-MM-DD filename
// prefix used by the remote posts directory convention.
func DateFromFilename(filename string) (time.Time, bool) {
	match := filenameDatePattern.FindStringSubmatch(path.Base(filename))
	if match == nil {
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", match[1])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// TitleFromFilename derives a fallback title from a filename by stripping the
// extension. The date prefix is kept so remotely imported posts stay
// distinguishable until edited.
func TitleFromFilename(filename string) string {
	base := path.Base(filename)
	return strings.TrimSuffix(base, path.Ext(base))
}
