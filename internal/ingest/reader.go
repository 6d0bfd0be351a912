package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotTabular is returned when the fetched payload looks like an HTML
// error page instead of the expected delimited text. It is the only fatal
// error class of the ingestion pipeline.
var ErrNotTabular = errors.New("payload is not tabular text")

// CheckTabular scans the leading bytes of a raw payload for markers of an
// HTML error page served in place of the export. Ingestion must fail fast
// here rather than silently parse markup as movement rows.
func CheckTabular(payload []byte) error {
	head := payload
	if len(head) > 512 {
		head = head[:512]
	}
	probe := strings.ToLower(string(head))
	for _, marker := range []string{"<!doctype", "<html", "<head>", "<body"} {
		if strings.Contains(probe, marker) {
			return fmt.Errorf("%w: found %q in payload head", ErrNotTabular, marker)
		}
	}
	return nil
}

// SplitRows splits a raw payload into parsed rows. Blank lines are dropped;
// no field-count validation happens here, short and long rows pass through
// as-is.
func SplitRows(payload string) [][]string {
	payload = strings.ReplaceAll(payload, "\r\n", "\n")
	payload = strings.TrimPrefix(payload, "\ufeff")

	var rows [][]string
	for _, line := range strings.Split(payload, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, ParseLine(line))
	}
	return rows
}

// ParseLine splits one delimited line into fields. Double-quoted fields may
// contain the delimiter; a doubled quote inside a quoted field decodes to a
// single literal quote. Unquoted fields are trimmed of surrounding
// whitespace; quoted fields keep their content verbatim. An unterminated
// quote is treated as running to end of line.
func ParseLine(line string) []string {
	var (
		fields   []string
		b        strings.Builder
		inQuotes bool
		quoted   bool
	)

	flush := func() {
		s := b.String()
		if !quoted {
			s = strings.TrimSpace(s)
		}
		fields = append(fields, s)
		b.Reset()
		quoted = false
	}

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuotes:
			if ch == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					b.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				b.WriteByte(ch)
			}
		case ch == '"' && strings.TrimSpace(b.String()) == "":
			// Opening quote; anything buffered so far is leading whitespace.
			b.Reset()
			inQuotes = true
			quoted = true
		case ch == ',':
			flush()
		default:
			b.WriteByte(ch)
		}
	}
	// Unterminated quote state ends the field at end of line.
	flush()
	return fields
}
