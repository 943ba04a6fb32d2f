package fcs

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// The FCS header is 58 bytes: a 6-byte version string, 4 spaces, then six
// right-justified 8-byte ASCII integers giving the byte offsets of the TEXT,
// DATA, and ANALYSIS segments.
const headerLength = 58

type header struct {
	version   string
	textBegin int64
	textEnd   int64
	dataBegin int64
	dataEnd   int64
}

func readHeader(r io.ReadSeeker) (header, error) {
	var out header

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return out, pfx.Err(err)
	}

	raw := make([]byte, headerLength)
	if _, err := io.ReadFull(r, raw); err != nil {
		return out, pfx.Err(fmt.Errorf("reading FCS header: %s", err))
	}

	out.version = strings.TrimSpace(string(raw[0:6]))
	if !strings.HasPrefix(out.version, "FCS") {
		return out, pfx.Err(fmt.Errorf("not an FCS file: header begins with %q", out.version))
	}

	offsets := make([]int64, 0, 4)
	for i := 0; i < 4; i++ {
		field := strings.TrimSpace(string(raw[10+8*i : 18+8*i]))
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return out, pfx.Err(fmt.Errorf("malformed header offset %q: %s", field, err))
		}
		offsets = append(offsets, v)
	}

	out.textBegin, out.textEnd = offsets[0], offsets[1]
	out.dataBegin, out.dataEnd = offsets[2], offsets[3]

	if out.textBegin <= 0 || out.textEnd <= out.textBegin {
		return out, pfx.Err(fmt.Errorf("nonsensical TEXT segment offsets %d-%d", out.textBegin, out.textEnd))
	}

	return out, nil
}
