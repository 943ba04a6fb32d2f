package fcs

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/carbocation/pfx"
)

// readData decodes the binary DATA segment into an event-by-parameter matrix.
// $DATATYPE F (float32), D (float64), and I (unsigned integer of $PnB bits)
// are supported in list mode, which is the only $MODE modern instruments
// write.
func readData(r io.ReadSeeker, keywords map[string]string, params []Param, begin, end int64) ([][]float64, error) {
	if mode := keywords["$MODE"]; mode != "" && mode != "L" {
		return nil, pfx.Err(fmt.Errorf("unsupported $MODE %q: only list mode is handled", mode))
	}

	nEvents, err := keywordInt(keywords, "$TOT")
	if err != nil {
		return nil, err
	}
	if nEvents < 0 {
		return nil, pfx.Err(fmt.Errorf("negative $TOT %d", nEvents))
	}
	if end < begin {
		return nil, pfx.Err(fmt.Errorf("nonsensical DATA segment offsets %d-%d", begin, end))
	}

	order, err := byteOrder(keywords["$BYTEORD"])
	if err != nil {
		return nil, err
	}

	if _, err := r.Seek(begin, io.SeekStart); err != nil {
		return nil, pfx.Err(err)
	}

	raw := make([]byte, end-begin+1)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, pfx.Err(fmt.Errorf("reading DATA segment: %s", err))
	}

	datatype := keywords["$DATATYPE"]

	out := make([][]float64, nEvents)
	pos := 0
	for ev := 0; ev < nEvents; ev++ {
		row := make([]float64, len(params))
		for pi, p := range params {
			width := p.Bits / 8
			if pos+width > len(raw) {
				return nil, pfx.Err(fmt.Errorf("DATA segment truncated at event %d parameter %d", ev, pi))
			}
			chunk := raw[pos : pos+width]
			pos += width

			switch {
			case datatype == "F" && width == 4:
				row[pi] = float64(math.Float32frombits(order.Uint32(chunk)))
			case datatype == "D" && width == 8:
				row[pi] = math.Float64frombits(order.Uint64(chunk))
			case datatype == "I" && width == 2:
				row[pi] = float64(order.Uint16(chunk))
			case datatype == "I" && width == 4:
				row[pi] = float64(order.Uint32(chunk))
			default:
				return nil, pfx.Err(fmt.Errorf("unsupported $DATATYPE %q with $P%dB=%d", datatype, pi+1, p.Bits))
			}
		}
		out[ev] = row
	}

	return out, nil
}

func byteOrder(keyword string) (binary.ByteOrder, error) {
	switch keyword {
	case "1,2,3,4", "1,2", "":
		return binary.LittleEndian, nil
	case "4,3,2,1", "2,1":
		return binary.BigEndian, nil
	}

	return nil, pfx.Err(fmt.Errorf("unrecognized $BYTEORD %q", keyword))
}
