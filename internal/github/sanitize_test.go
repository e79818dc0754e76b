package github

import (
	"strings"
	"testing"
)

func TestSanitize_LineEndings(t *testing.T) {
	got := Sanitize("one\r\ntwo\rthree\n")
	if got != "one\ntwo\nthree\n" {
		t.Fatalf("Sanitize() = %q", got)
	}
}

func TestSanitize_StripsControlAndBOM(t *testing.T) {
	got := Sanitize("\ufeffhead\x00ing\x07 text")
	if got != "heading text\n" {
		t.Fatalf("Sanitize() = %q", got)
	}
}

func TestSanitize_KeepsTabsAndNewlines(t *testing.T) {
	got := Sanitize("a\tb\nc")
	if got != "a\tb\nc\n" {
		t.Fatalf("Sanitize() = %q", got)
	}
}

func TestSanitize_Transliterates(t *testing.T) {
	got := Sanitize("café São Paulo — “quoted”")
	if got != `cafe Sao Paulo - "quoted"`+"\n" {
		t.Fatalf("Sanitize() = %q", got)
	}
}

func TestSanitize_DropsRemainingNonASCII(t *testing.T) {
	got := Sanitize("emoji 🎉 and 中文 end")
	if got != "emoji  and  end\n" {
		t.Fatalf("Sanitize() = %q", got)
	}
}

func TestSanitize_SingleTrailingNewline(t *testing.T) {
	for _, input := range []string{"body", "body\n", "body\n\n\n"} {
		if got := Sanitize(input); got != "body\n" {
			t.Fatalf("Sanitize(%q) = %q", input, got)
		}
	}
}

func TestEncodePayload_RoundTrips(t *testing.T) {
	encoded, err := encodePayload("hello world\n")
	if err != nil {
		t.Fatalf("encodePayload() error = %v", err)
	}
	decoded, err := decodePayload(encoded)
	if err != nil {
		t.Fatalf("decodePayload() error = %v", err)
	}
	if decoded != "hello world\n" {
		t.Fatalf("round trip = %q", decoded)
	}
}

func TestDecodePayload_HandlesWrappedBase64(t *testing.T) {
	encoded, err := encodePayload(strings.Repeat("long line of text ", 20))
	if err != nil {
		t.Fatalf("encodePayload() error = %v", err)
	}
	// The contents API wraps encoded bodies at 60 columns.
	wrapped := encoded[:60] + "\n" + encoded[60:]
	if _, err := decodePayload(wrapped); err != nil {
		t.Fatalf("decodePayload(wrapped) error = %v", err)
	}
}
