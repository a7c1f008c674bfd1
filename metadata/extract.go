package metadata

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/R3natoky/photoutm/config"
	"github.com/R3natoky/photoutm/logger"
	"github.com/R3natoky/photoutm/option"
)

// Meta is the decoded, per-file metadata consumed by the scanner.
type Meta struct {
	Timestamp   option.Option[string]
	Description option.Option[string]
	CustomName  option.Option[string]
	GPS         *GPSBlock

	// Extra holds every other non-skipped tag as a display string.
	Extra map[string]string
}

type GPSKind int

const (
	GPSText GPSKind = iota + 1
	GPSTuple
	GPSNumber
)

// GPSValue is one decoded GPS sub-block entry: a short text (reference
// letters, datums), a finite numeric tuple (DMS triples, time stamps),
// or a single finite number. Non-finite or non-coercible values are kept
// as their textual representation rather than dropped.
type GPSValue struct {
	Kind   GPSKind
	Text   string
	Tuple  []float64
	Number float64
}

type GPSBlock struct {
	Fields map[string]GPSValue
}

func (g *GPSBlock) Text(name string) (string, bool) {
	if g == nil {
		return "", false
	}
	v, ok := g.Fields[name]
	if !ok || v.Kind != GPSText {
		return "", false
	}
	return v.Text, true
}

func (g *GPSBlock) Tuple(name string) ([]float64, bool) {
	if g == nil {
		return nil, false
	}
	v, ok := g.Fields[name]
	if !ok || v.Kind != GPSTuple {
		return nil, false
	}
	return v.Tuple, true
}

var timestampPattern = regexp.MustCompile(`^\d{4}:\d{2}:\d{2} \d{2}:\d{2}:\d{2}$`)

var skipTags = map[uint16]bool{
	TagGPSInfo:          true,
	TagOrientation:      true,
	TagImageDescription: true,
	TagDateTimeOriginal: true,
	TagDateTime:         true,
	TagArtist:           true,
}

// Extract decodes the fields of interest from a raw tag table. A nil or
// empty table yields an empty Meta and no orientation; hard read
// failures are the provider's to report, not Extract's.
func Extract(tbl Table) (*Meta, option.Option[int]) {
	meta := &Meta{Extra: make(map[string]string)}
	orientation := option.None[int]()

	if tbl == nil {
		return meta, orientation
	}

	if v, ok := tbl.Get(TagOrientation); ok {
		if f, ok := v.Component(0); ok {
			orientation = option.Some(int(f))
		}
	}

	meta.Timestamp = extractTimestamp(tbl)
	meta.Description = extractText(tbl, TagImageDescription)
	meta.CustomName = extractText(tbl, TagArtist)

	for _, id := range tbl.IDs() {
		if skipTags[id] {
			continue
		}
		v, _ := tbl.Get(id)
		meta.Extra[TagName(id)] = passthroughDisplay(v)
	}

	if gps, ok := tbl.Nested(TagGPSInfo); ok {
		meta.GPS = extractGPS(gps)
	}

	return meta, orientation
}

// IsEmpty reports whether nothing of interest was decoded.
func (m *Meta) IsEmpty() bool {
	return m.Timestamp.IsNone() &&
		m.Description.IsNone() &&
		m.CustomName.IsNone() &&
		m.GPS == nil &&
		len(m.Extra) == 0
}

// extractTimestamp prefers the original capture time over the generic
// modification time, and validates the fixed EXIF layout.
func extractTimestamp(tbl Table) option.Option[string] {
	var raw Value
	ok := false
	if v, found := tbl.Get(TagDateTimeOriginal); found {
		raw, ok = v, true
	} else if v, found := tbl.Get(TagDateTime); found {
		raw, ok = v, true
	}
	if !ok || raw.Kind != KindText {
		return option.None[string]()
	}

	clean := strings.TrimSpace(strings.ReplaceAll(raw.Text, "\x00", ""))
	if !timestampPattern.MatchString(clean) {
		logger.Warn("invalid timestamp format %q", clean)
		return option.None[string]()
	}
	if _, err := time.Parse(config.TimestampLayout, clean); err != nil {
		logger.Warn("invalid timestamp value %q", clean)
		return option.None[string]()
	}
	return option.Some(clean)
}

func extractText(tbl Table, id uint16) option.Option[string] {
	v, ok := tbl.Get(id)
	if !ok {
		return option.None[string]()
	}

	s := ""
	switch v.Kind {
	case KindText:
		s = strings.TrimSpace(v.Text)
	case KindBytes:
		s = DecodeString(v.Bytes)
	default:
		return option.None[string]()
	}

	if s == "" {
		return option.None[string]()
	}
	return option.Some(s)
}

// passthroughDisplay renders a value for the pass-through map. Long
// byte values that are not text (maker notes, thumbnails) are replaced
// by a short placeholder carrying the original length.
func passthroughDisplay(v Value) string {
	switch v.Kind {
	case KindBytes:
		if len(v.Bytes) > 100 && !utf8.Valid(v.Bytes) {
			return "<Binary data length " + strconv.Itoa(len(v.Bytes)) + ">"
		}
		return DecodeString(v.Bytes)
	case KindText:
		return strings.TrimSpace(v.Text)
	default:
		return v.Display()
	}
}

func extractGPS(tbl Table) *GPSBlock {
	block := &GPSBlock{Fields: make(map[string]GPSValue)}

	for _, id := range tbl.IDs() {
		name := GPSTagName(id)
		v, _ := tbl.Get(id)

		switch v.Kind {
		case KindBytes:
			if s, ok := decodeASCIIStrict(v.Bytes); ok {
				block.Fields[name] = GPSValue{Kind: GPSText, Text: s}
			} else {
				block.Fields[name] = GPSValue{Kind: GPSText, Text: DecodeString(v.Bytes)}
			}
		case KindText:
			block.Fields[name] = GPSValue{Kind: GPSText, Text: strings.TrimSpace(v.Text)}
		case KindInt, KindFloat, KindRational:
			if v.Count() > 1 {
				if tuple, ok := v.FiniteComponents(); ok {
					block.Fields[name] = GPSValue{Kind: GPSTuple, Tuple: tuple}
				} else {
					logger.Debug("GPS tuple %s not finite: %s", name, v.Display())
					block.Fields[name] = GPSValue{Kind: GPSText, Text: v.Display()}
				}
				continue
			}
			if tuple, ok := v.FiniteComponents(); ok {
				block.Fields[name] = GPSValue{Kind: GPSNumber, Number: tuple[0]}
			} else {
				logger.Debug("GPS value %s not finite: %s", name, v.Display())
				block.Fields[name] = GPSValue{Kind: GPSText, Text: v.Display()}
			}
		}
	}

	if len(block.Fields) == 0 {
		return nil
	}
	return block
}
