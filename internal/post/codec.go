package post

import (
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

// Codec converts between a structured post and its flat text representation:
// a front-matter header block followed by a blank line and the body verbatim.
type Codec struct {
	now func() time.Time
}

// Option mutates the codec before it is finalised.
type Option func(*Codec)

// WithClock injects the time source used when a decoded post carries no
// recoverable date.
func WithClock(clock func() time.Time) Option {
	return func(c *Codec) {
		if clock != nil {
			c.now = clock
		}
	}
}

// NewCodec builds a codec with default dependencies.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode renders the post as front matter plus body. The output is
// deterministic: the same post always yields byte-identical text. Posts with
// zero tags omit the tags line entirely to keep generated files minimal and
// diff-friendly.
func (c *Codec) Encode(p interfaces.Post) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", p.Title)
	fmt.Fprintf(&b, "date: %s\n", p.Date.Format("2006-01-02"))
	if len(p.Tags) > 0 {
		quoted := make([]string, 0, len(p.Tags))
		for _, tag := range p.Tags {
			quoted = append(quoted, fmt.Sprintf("%q", tag))
		}
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(quoted, ", "))
	}
	b.WriteString("---\n\n")
	b.WriteString(p.Content)
	return b.String()
}

// headerEnvelope tolerates the header variants seen in the wild: dates as
// plain YYYY-MM-DD strings or full timestamps, tags as a bracketed list or a
// bare comma-separated scalar.
type headerEnvelope struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
	Tags  any    `yaml:"tags"`
}

// Decode parses a flat text document into a post. Documents without a
// recognizable header block are treated as body-only: the title defaults to
// the filename with its extension stripped and the date falls back to a
// YYYY-MM-DD prefix embedded in the filename, then to the current time. The
// dual date fallback exists because posts arrive both locally authored and
// remotely imported.
func (c *Codec) Decode(filename, text string) interfaces.Post {
	p := interfaces.Post{Filename: filename}

	var env headerEnvelope
	body, err := frontmatter.Parse(strings.NewReader(text), &env)
	if err != nil {
		env, body = parseHeaderLoose(text)
	}

	p.Content = string(body)
	p.Title = strings.TrimSpace(env.Title)
	if p.Title == "" {
		p.Title = TitleFromFilename(filename)
	}

	p.Tags = normalizeTags(env.Tags)

	if date, ok := parseHeaderDate(env.Date); ok {
		p.Date = date
	} else if date, ok := DateFromFilename(filename); ok {
		p.Date = date
	} else {
		p.Date = c.now()
	}

	return p
}

// parseHeaderLoose recovers title/date/tags by line-prefix matching when the
// header block is not valid YAML. Documents without delimiters are returned
// as body-only.
func parseHeaderLoose(text string) (headerEnvelope, []byte) {
	var env headerEnvelope

	trimmed := strings.TrimPrefix(text, "\ufeff")
	if !strings.HasPrefix(trimmed, "---") {
		return env, []byte(text)
	}

	lines := strings.Split(trimmed, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return env, []byte(text)
	}

	for _, line := range lines[1:end] {
		switch {
		case strings.HasPrefix(line, "title:"):
			env.Title = strings.TrimSpace(strings.TrimPrefix(line, "title:"))
		case strings.HasPrefix(line, "date:"):
			env.Date = strings.TrimSpace(strings.TrimPrefix(line, "date:"))
		case strings.HasPrefix(line, "tags:"):
			env.Tags = strings.TrimSpace(strings.TrimPrefix(line, "tags:"))
		}
	}

	body := strings.Join(lines[end+1:], "\n")
	body = strings.TrimPrefix(body, "\n")
	return env, []byte(body)
}

// normalizeTags accepts a bracketed list or a bare comma-separated scalar,
// trimming quotes and whitespace per entry and dropping empty entries.
func normalizeTags(raw any) []string {
	var entries []string
	switch value := raw.(type) {
	case nil:
		return nil
	case []any:
		for _, item := range value {
			entries = append(entries, fmt.Sprint(item))
		}
	case []string:
		entries = value
	case string:
		scalar := strings.TrimSpace(value)
		scalar = strings.TrimPrefix(scalar, "[")
		scalar = strings.TrimSuffix(scalar, "]")
		entries = strings.Split(scalar, ",")
	default:
		entries = []string{fmt.Sprint(value)}
	}

	tags := make([]string, 0, len(entries))
	for _, entry := range entries {
		tag := strings.TrimSpace(entry)
		tag = strings.Trim(tag, `"'`)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

func parseHeaderDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"'`))
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02 15:04:05 -0700",
		"2006-01-02 15:04:05",
	} {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}
