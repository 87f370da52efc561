package model

import (
	"github.com/Reu7en/Intervision-sub000/frac"
)

// RestRow marks a segment that stands for silence.
const RestRow = -1

// NoteRef locates the note a segment was derived from inside its bar.
type NoteRef struct {
	Chord int `json:"chord"`
	Note  int `json:"note"`
}

// Segment is one pitched span of the piano roll. Onset and Duration are in
// whole notes from the start of the bar.
type Segment struct {
	Row      int       `json:"row"`
	Onset    frac.Frac `json:"onset"`
	Duration frac.Frac `json:"duration"`
	Dynamic  string    `json:"dynamic,omitempty"`
	Ref      *NoteRef  `json:"ref,omitempty"`
	Sharps   bool      `json:"sharps,omitempty"`
}

func (s Segment) End() frac.Frac { return s.Onset.Add(s.Duration) }

func (s Segment) IsRest() bool { return s.Row == RestRow }

// Covers reports whether o lies inside s on the same row.
func (s Segment) Covers(o Segment) bool {
	return s.Row == o.Row && s.Onset.LessEq(o.Onset) && o.End().LessEq(s.End())
}

// Overlaps reports a strict overlap of the two time spans.
func (s Segment) Overlaps(o Segment) bool {
	return s.Onset.Less(o.End()) && o.Onset.Less(s.End())
}

// Mid is the temporal midpoint.
func (s Segment) Mid() frac.Frac {
	return s.Onset.Add(s.Duration.Div(frac.Int(2)))
}
