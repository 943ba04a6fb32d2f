// Package charts wraps the plotting toolkit behind plot-plus-table bundles:
// every rendered figure travels with the data table that backs it, so a
// report export always writes the PNG and its CSV side by side.
package charts

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"github.com/disintegration/imaging"
	"github.com/gocarina/gocsv"
)

// Renderer is anything that can draw itself as a PNG stream.
type Renderer interface {
	Render(w io.Writer) error
}

// Bundle pairs one renderable figure with its backing table. Renderable may
// be nil for table-only outputs (the raw analysis-results table). The table
// is either Rows (a slice of csv-tagged structs) or Table (raw cells, for
// pivoted tables whose columns are only known at run time).
type Bundle struct {
	Name       string
	Renderable Renderer
	Rows       interface{}
	Table      [][]string
}

const thumbnailWidth = 256

// Export writes the bundle under dir: <name>.png, <name>_thumb.png, and
// <name>.csv, creating dir as needed.
func (b *Bundle) Export(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pfx.Err(err)
	}

	if b.Renderable != nil {
		buffer := &bytes.Buffer{}
		if err := b.Renderable.Render(buffer); err != nil {
			return pfx.Err(fmt.Errorf("rendering %s: %s", b.Name, err))
		}

		if err := os.WriteFile(filepath.Join(dir, b.Name+".png"), buffer.Bytes(), 0o644); err != nil {
			return pfx.Err(err)
		}

		img, err := png.Decode(bytes.NewReader(buffer.Bytes()))
		if err != nil {
			return pfx.Err(err)
		}
		thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
		if err := imaging.Save(thumb, filepath.Join(dir, b.Name+"_thumb.png")); err != nil {
			return pfx.Err(err)
		}
	}

	if b.Rows != nil || b.Table != nil {
		f, err := os.Create(filepath.Join(dir, b.Name+".csv"))
		if err != nil {
			return pfx.Err(err)
		}
		defer f.Close()

		if b.Rows != nil {
			if err := gocsv.MarshalFile(b.Rows, f); err != nil {
				return pfx.Err(fmt.Errorf("writing table for %s: %s", b.Name, err))
			}
		} else {
			w := csv.NewWriter(f)
			if err := w.WriteAll(b.Table); err != nil {
				return pfx.Err(fmt.Errorf("writing table for %s: %s", b.Name, err))
			}
		}
	}

	return nil
}
