package model

// Chord is a set of notes sharing onset and rhythmic value. The rhythmic
// fields are read from the first note.
type Chord struct {
	Notes []Note `json:"notes"`
}

// NewChord builds a chord of the given value. No pitches makes a rest.
func NewChord(d Duration, dotted bool, pitches ...Pitch) Chord {
	if len(pitches) == 0 {
		return Chord{Notes: []Note{Rest(d, dotted)}}
	}
	c := Chord{Notes: make([]Note, 0, len(pitches))}
	for _, p := range pitches {
		c.Notes = append(c.Notes, Pitched(p, d, dotted))
	}
	return c
}

// RestChord is a single rest.
func RestChord(d Duration) Chord {
	return NewChord(d, false)
}

func (c Chord) head() Note {
	if len(c.Notes) == 0 {
		return Note{Duration: WholeBar}
	}
	return c.Notes[0]
}

func (c Chord) Duration() Duration { return c.head().Duration }
func (c Chord) Dotted() bool       { return c.head().Dotted }
func (c Chord) Tuplet() *Tuplet    { return c.head().Tuplet }

// IsRest reports whether no note of the chord has a pitch.
func (c Chord) IsRest() bool {
	for _, n := range c.Notes {
		if !n.IsRest() {
			return false
		}
	}
	return true
}

// WithTuplet returns a copy with every note marked t.
func (c Chord) WithTuplet(t Tuplet) Chord {
	out := Chord{Notes: append([]Note(nil), c.Notes...)}
	for i := range out.Notes {
		tt := t
		out.Notes[i].Tuplet = &tt
	}
	return out
}
