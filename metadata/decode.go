package metadata

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// DecodeString is the best-effort text decoding for raw byte values:
// strict UTF-8 first, then Latin-1 (which cannot fail), trimmed. It
// never returns an empty string for non-blank input; as a last resort
// it falls back to a quoted representation of the bytes.
func DecodeString(b []byte) string {
	if utf8.Valid(b) {
		return strings.TrimSpace(string(b))
	}

	s := strings.TrimSpace(decodeLatin1(b))
	if s == "" && len(b) > 0 {
		return fmt.Sprintf("%q", b)
	}
	return s
}

// DecodeAggressive tries an ordered list of encodings and returns the
// first that decodes strictly and leaves non-empty content after
// stripping NULs (for the 16-bit family) and whitespace. Used by the
// diagnose command, not by regular field extraction.
func DecodeAggressive(b []byte) (text string, encoding string, ok bool) {
	type attempt struct {
		name   string
		decode func([]byte) (string, bool)
		wide   bool
	}

	attempts := []attempt{
		{"utf-16-le", decodeUTF16LE, true},
		{"utf-16", decodeUTF16BOM, true},
		{"ucs-2", decodeUCS2, true},
		{"utf-8", decodeUTF8Strict, false},
		{"latin-1", func(b []byte) (string, bool) { return decodeLatin1(b), true }, false},
		{"cp1252", decodeCP1252, false},
	}

	for _, a := range attempts {
		s, valid := a.decode(b)
		if !valid {
			continue
		}
		if a.wide {
			s = strings.ReplaceAll(s, "\x00", "")
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return s, a.name, true
		}
	}

	return "", "", false
}

func decodeUTF8Strict(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

func decodeLatin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

func decodeUTF16Units(units []uint16) (string, bool) {
	runes := utf16.Decode(units)
	for _, r := range runes {
		if r == utf8.RuneError {
			return "", false
		}
	}
	return string(runes), true
}

func decodeUTF16LE(b []byte) (string, bool) {
	if len(b)%2 != 0 {
		return "", false
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return decodeUTF16Units(units)
}

// decodeUTF16BOM honors a byte-order mark and defaults to little endian
// without one.
func decodeUTF16BOM(b []byte) (string, bool) {
	if len(b) >= 2 {
		if b[0] == 0xFE && b[1] == 0xFF {
			rest := b[2:]
			if len(rest)%2 != 0 {
				return "", false
			}
			units := make([]uint16, len(rest)/2)
			for i := range units {
				units[i] = uint16(rest[2*i])<<8 | uint16(rest[2*i+1])
			}
			return decodeUTF16Units(units)
		}
		if b[0] == 0xFF && b[1] == 0xFE {
			return decodeUTF16LE(b[2:])
		}
	}
	return decodeUTF16LE(b)
}

// decodeUCS2 is the BMP-only variant: surrogate code units are invalid.
func decodeUCS2(b []byte) (string, bool) {
	if len(b)%2 != 0 {
		return "", false
	}
	var sb strings.Builder
	for i := 0; i+1 < len(b); i += 2 {
		u := uint16(b[i]) | uint16(b[i+1])<<8
		if u >= 0xD800 && u <= 0xDFFF {
			return "", false
		}
		sb.WriteRune(rune(u))
	}
	return sb.String(), true
}

// cp1252High maps bytes 0x80-0x9F; zero entries are undefined in the
// code page and make a strict decode fail.
var cp1252High = [32]rune{
	0x20AC, 0, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0, 0x017D, 0,
	0, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0, 0x017E, 0x0178,
}

func decodeCP1252(b []byte) (string, bool) {
	runes := make([]rune, len(b))
	for i, c := range b {
		if c >= 0x80 && c <= 0x9F {
			r := cp1252High[c-0x80]
			if r == 0 {
				return "", false
			}
			runes[i] = r
			continue
		}
		runes[i] = rune(c)
	}
	return string(runes), true
}

// decodeASCIIStrict accepts printable 7-bit content only; appropriate
// for hemisphere-reference letters and similar short GPS fields.
func decodeASCIIStrict(b []byte) (string, bool) {
	for _, c := range b {
		if c > 0x7F {
			return "", false
		}
	}
	s := strings.ReplaceAll(string(b), "\x00", "")
	return strings.TrimSpace(s), true
}
