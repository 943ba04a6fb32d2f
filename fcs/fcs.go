// Package fcs reads Flow Cytometry Standard (FCS 3.x) files: a fixed-offset
// ASCII header, a delimited TEXT segment of keyword/value pairs, and a binary
// DATA segment holding the event-by-parameter expression matrix.
package fcs

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/carbocation/pfx"
)

// Param is one instrument parameter as declared in the TEXT segment. Name
// comes from $PnN, Desc from $PnS (frequently empty on flow instruments).
type Param struct {
	Name string
	Desc string
	Bits int
}

// File is a fully parsed FCS file.
type File struct {
	Version  string
	Keywords map[string]string
	Params   []Param

	// Data is the expression matrix: one row per event, one column per
	// parameter, in declaration order.
	Data [][]float64
}

// Read parses an entire FCS file from r.
func Read(r io.ReadSeeker) (*File, error) {
	hdr, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	keywords, err := readText(r, hdr.textBegin, hdr.textEnd)
	if err != nil {
		return nil, err
	}

	out := &File{
		Version:  hdr.version,
		Keywords: keywords,
	}

	nPar, err := keywordInt(keywords, "$PAR")
	if err != nil {
		return nil, err
	}
	for i := 1; i <= nPar; i++ {
		p := Param{
			Name: keywords[fmt.Sprintf("$P%dN", i)],
			Desc: keywords[fmt.Sprintf("$P%dS", i)],
		}
		if p.Bits, err = keywordInt(keywords, fmt.Sprintf("$P%dB", i)); err != nil {
			return nil, err
		}
		out.Params = append(out.Params, p)
	}

	// FCS 3.1 permits zeroed header offsets for large files, with the true
	// offsets carried in the TEXT segment instead.
	dataBegin, dataEnd := hdr.dataBegin, hdr.dataEnd
	if dataBegin == 0 {
		if dataBegin, err = keywordInt64(keywords, "$BEGINDATA"); err != nil {
			return nil, err
		}
		if dataEnd, err = keywordInt64(keywords, "$ENDDATA"); err != nil {
			return nil, err
		}
	}

	if out.Data, err = readData(r, keywords, out.Params, dataBegin, dataEnd); err != nil {
		return nil, err
	}

	return out, nil
}

// ParamNames returns the $PnN values in declaration order.
func (f *File) ParamNames() []string {
	out := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		out = append(out, p.Name)
	}

	return out
}

// ParamDescs returns the $PnS values in declaration order.
func (f *File) ParamDescs() []string {
	out := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		out = append(out, p.Desc)
	}

	return out
}

// AcquiredAt reconstructs the acquisition timestamp from the $DATE and $BTIM
// keywords. Instruments disagree wildly on date formats, so parsing is
// delegated to dateparse. Returns the zero time if neither keyword is set.
func (f *File) AcquiredAt() (time.Time, error) {
	date := f.Keywords["$DATE"]
	btim := f.Keywords["$BTIM"]

	if date == "" && btim == "" {
		return time.Time{}, nil
	}

	joined := date
	if btim != "" {
		joined = joined + " " + btim
	}

	res, err := dateparse.ParseAny(joined)
	if err != nil {
		return time.Time{}, pfx.Err(fmt.Errorf("cannot parse acquisition time from %q: %s", joined, err))
	}

	return res, nil
}

func keywordInt(keywords map[string]string, key string) (int, error) {
	v, exists := keywords[key]
	if !exists {
		return 0, pfx.Err(fmt.Errorf("required keyword %s is not present in the TEXT segment", key))
	}

	out, err := strconv.Atoi(v)
	if err != nil {
		return 0, pfx.Err(fmt.Errorf("keyword %s: %s", key, err))
	}

	return out, nil
}

func keywordInt64(keywords map[string]string, key string) (int64, error) {
	out, err := keywordInt(keywords, key)

	return int64(out), err
}
