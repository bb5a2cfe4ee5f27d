package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"github.com/penwyp/go-lineup-timeline/internal/core/timeline"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type bandJSON struct {
	Band        string                `json:"band"`
	Source      string                `json:"source,omitempty"`
	BandYears   model.YearSpan        `json:"bandYears"`
	CurrentYear int                   `json:"currentYear"`
	Members     []model.BandMember    `json:"members"`
	Timeline    *timeline.Timeline    `json:"timeline"`
	Skipped     []model.SkippedMember `json:"skipped,omitempty"`
	Dropped     []model.DroppedGroup  `json:"dropped,omitempty"`
}

// Format writes one JSON array with an object per band. Role maps are
// emitted with sorted keys.
func (f *JSONFormatter) Format(w io.Writer, data []BandTimeline) error {
	out := make([]bandJSON, 0, len(data))
	for _, band := range data {
		l := band.Lineup
		out = append(out, bandJSON{
			Band:        l.Band,
			Source:      l.Source,
			BandYears:   l.Span,
			CurrentYear: l.CurrentYear,
			Members:     l.Members,
			Timeline:    band.Timeline,
			Skipped:     l.Skipped,
			Dropped:     l.Dropped,
		})
	}

	encoded, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(encoded, '\n'))
	return err
}
