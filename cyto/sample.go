package cyto

import (
	"time"

	"github.com/broadcyto/cytodiff/fcs"
)

// Sample is one imported FCS file: the (compensated) expression matrix, the
// resolved channel table, and the classified instrument source. Samples are
// read-only snapshots; nothing here writes back to disk.
type Sample struct {
	ID         string
	X          [][]float64
	Channels   []Channel
	Source     Source
	AcquiredAt time.Time
	Keywords   map[string]string
}

// NewSample resolves channels, classifies the instrument, and applies
// spillover compensation when the file carries a matrix.
func NewSample(id string, f *fcs.File) (*Sample, error) {
	channels, err := ResolveChannels(f.ParamNames(), f.ParamDescs())
	if err != nil {
		return nil, err
	}

	source, err := ClassifySource(f.ParamNames())
	if err != nil {
		return nil, err
	}

	sp, err := fcs.ParseSpillover(f.Keywords)
	if err != nil {
		return nil, err
	}
	if err := Compensate(f.Data, f.ParamNames(), sp); err != nil {
		return nil, err
	}

	acquiredAt, err := f.AcquiredAt()
	if err != nil {
		return nil, err
	}

	return &Sample{
		ID:         id,
		X:          f.Data,
		Channels:   channels,
		Source:     source,
		AcquiredAt: acquiredAt,
		Keywords:   f.Keywords,
	}, nil
}

// ChannelIndex returns the column for a display name, or -1.
func (s *Sample) ChannelIndex(display string) int {
	for i, c := range s.Channels {
		if c.Display == display {
			return i
		}
	}

	return -1
}

// Column returns a copy of one channel's values across all events.
func (s *Sample) Column(idx int) []float64 {
	out := make([]float64, len(s.X))
	for i, row := range s.X {
		out[i] = row[idx]
	}

	return out
}
