// Package codec converts between notated bars and piano-roll segments.
package codec

import (
	"github.com/pkg/errors"

	"github.com/Reu7en/Intervision-sub000/chord"
	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/model"
)

// Segments expands bar into one segment per pitched note. Rests produce no
// segment. Notes past the end of the bar are dropped.
func Segments(bar model.Bar, lowOctave int) ([]model.Segment, error) {
	if bar.IsEmpty() {
		return nil, nil
	}
	barLen := bar.Length()
	var out []model.Segment
	onset := frac.Zero
	for ci, c := range bar.Chords {
		if !onset.Less(barLen) {
			break
		}
		length, err := chord.Length(c, barLen)
		if err != nil {
			return nil, errors.Wrapf(err, "codec: chord %d", ci)
		}
		for ni, n := range c.Notes {
			if n.IsRest() {
				continue
			}
			out = append(out, model.Segment{
				Row:      Row(*n.Pitch, lowOctave),
				Onset:    onset,
				Duration: length,
				Dynamic:  n.Dynamic,
				Ref:      &model.NoteRef{Chord: ci, Note: ni},
				Sharps:   bar.Key.Sharps,
			})
		}
		onset = onset.Add(length)
	}
	return out, nil
}

// Note resolves a segment's back-reference in bar.
func Note(bar model.Bar, s model.Segment) (model.Note, bool) {
	if s.Ref == nil || s.Ref.Chord < 0 || s.Ref.Chord >= len(bar.Chords) {
		return model.Note{}, false
	}
	notes := bar.Chords[s.Ref.Chord].Notes
	if s.Ref.Note < 0 || s.Ref.Note >= len(notes) {
		return model.Note{}, false
	}
	return notes[s.Ref.Note], true
}
