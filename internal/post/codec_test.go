package post

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

func fixedClock() time.Time {
	return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
}

func TestCodec_EncodeDeterministic(t *testing.T) {
	codec := NewCodec()
	p := interfaces.Post{
		Filename: "2026-04-02-hello-world.md",
		Title:    "Hello World",
		Date:     time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC),
		Content:  "First paragraph.\n\nSecond paragraph.\n",
		Tags:     []string{"go", "blogging"},
	}

	first := codec.Encode(p)
	second := codec.Encode(p)
	if first != second {
		t.Fatal("expected Encode to be deterministic")
	}

	want := "---\ntitle: Hello World\ndate: 2026-04-02\ntags: [\"go\", \"blogging\"]\n---\n\nFirst paragraph.\n\nSecond paragraph.\n"
	if first != want {
		t.Fatalf("Encode() = %q, want %q", first, want)
	}
}

func TestCodec_EncodeOmitsEmptyTags(t *testing.T) {
	codec := NewCodec()
	p := interfaces.Post{
		Title:   "No Tags",
		Date:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Content: "Body.",
	}

	encoded := codec.Encode(p)
	if strings.Contains(encoded, "tags:") {
		t.Fatalf("expected no tags line, got %q", encoded)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec(WithClock(fixedClock))
	p := interfaces.Post{
		Filename: "2026-04-02-round-trip.md",
		Title:    "Round Trip",
		Date:     time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Content:  "Line one.\nLine two.\n",
		Tags:     []string{"alpha", "beta"},
	}

	decoded := codec.Decode(p.Filename, codec.Encode(p))

	if decoded.Title != p.Title {
		t.Fatalf("Title = %q, want %q", decoded.Title, p.Title)
	}
	if !sameDay(decoded.Date, p.Date) {
		t.Fatalf("Date = %v, want same day as %v", decoded.Date, p.Date)
	}
	if decoded.Content != p.Content {
		t.Fatalf("Content = %q, want %q", decoded.Content, p.Content)
	}
	if !sameTagSet(decoded.Tags, p.Tags) {
		t.Fatalf("Tags = %v, want %v", decoded.Tags, p.Tags)
	}
}

func TestCodec_DecodeBodyOnly(t *testing.T) {
	codec := NewCodec(WithClock(fixedClock))

	p := codec.Decode("notes.md", "Just a body with no header.\n")

	if p.Title != "notes" {
		t.Fatalf("Title = %q, want filename-derived %q", p.Title, "notes")
	}
	if p.Content != "Just a body with no header.\n" {
		t.Fatalf("Content = %q", p.Content)
	}
	if !p.Date.Equal(fixedClock()) {
		t.Fatalf("Date = %v, want clock fallback %v", p.Date, fixedClock())
	}
	if p.Tags != nil {
		t.Fatalf("Tags = %v, want nil", p.Tags)
	}
}

func TestCodec_DecodeDateFromFilename(t *testing.T) {
	codec := NewCodec(WithClock(fixedClock))
	text := "---\ntitle: Imported\n---\n\nBody.\n"

	p := codec.Decode("2025-11-30-imported.md", text)

	want := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	if !sameDay(p.Date, want) {
		t.Fatalf("Date = %v, want recovered %v", p.Date, want)
	}
	if p.Title != "Imported" {
		t.Fatalf("Title = %q", p.Title)
	}
}

func TestCodec_DecodeBareCommaTags(t *testing.T) {
	codec := NewCodec(WithClock(fixedClock))
	text := "---\ntitle: Comma Tags\ndate: 2026-02-02\ntags: go, web , \n---\n\nBody.\n"

	p := codec.Decode("comma.md", text)

	if !sameTagSet(p.Tags, []string{"go", "web"}) {
		t.Fatalf("Tags = %v, want [go web]", p.Tags)
	}
}

func TestCodec_DecodeBracketedQuotedTags(t *testing.T) {
	codec := NewCodec(WithClock(fixedClock))
	text := "---\ntitle: Bracketed\ndate: 2026-02-02\ntags: [\"one\", 'two', three]\n---\n\nBody.\n"

	p := codec.Decode("bracketed.md", text)

	if !sameTagSet(p.Tags, []string{"one", "two", "three"}) {
		t.Fatalf("Tags = %v", p.Tags)
	}
}

func TestNewFilename(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	filename, err := NewFilename("My First Post!", date)
	if err != nil {
		t.Fatalf("NewFilename() error = %v", err)
	}
	if filename != "2026-03-09-my-first-post.md" {
		t.Fatalf("NewFilename() = %q", filename)
	}

	if _, err := NewFilename("   ", date); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestDateFromFilename(t *testing.T) {
	if _, ok := DateFromFilename("no-date-here.md"); ok {
		t.Fatal("expected no date for slug-only filename")
	}

	date, ok := DateFromFilename("2026-01-31-some-post.md")
	if !ok {
		t.Fatal("expected date to be recovered")
	}
	if date.Year() != 2026 || date.Month() != time.January || date.Day() != 31 {
		t.Fatalf("DateFromFilename() = %v", date)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameTagSet(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	set := make(map[string]bool, len(got))
	for _, tag := range got {
		set[tag] = true
	}
	for _, tag := range want {
		if !set[tag] {
			return false
		}
	}
	return true
}
