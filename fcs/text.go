package fcs

import (
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

// readText parses the delimited keyword/value TEXT segment. The first byte of
// the segment declares the delimiter; keys and values then alternate. A
// doubled delimiter inside a value is an escape for a literal delimiter.
func readText(r io.ReadSeeker, begin, end int64) (map[string]string, error) {
	if _, err := r.Seek(begin, io.SeekStart); err != nil {
		return nil, pfx.Err(err)
	}

	raw := make([]byte, end-begin+1)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, pfx.Err(fmt.Errorf("reading TEXT segment: %s", err))
	}

	delim := string(raw[0])
	body := strings.Trim(string(raw[1:]), delim)

	// Doubled delimiters are escapes. Substitute a NUL sentinel before the
	// split and restore afterward; NUL cannot appear in conformant TEXT.
	const sentinel = "\x00"
	body = strings.ReplaceAll(body, delim+delim, sentinel)

	fields := strings.Split(body, delim)
	if len(fields)%2 != 0 {
		return nil, pfx.Err(fmt.Errorf("TEXT segment has %d fields; keys and values must alternate", len(fields)))
	}

	out := make(map[string]string, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		key := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(fields[i], sentinel, delim)))
		out[key] = strings.TrimSpace(strings.ReplaceAll(fields[i+1], sentinel, delim))
	}

	return out, nil
}
