package chord

import (
	"sort"
	"strings"

	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/lattice"
	"github.com/Reu7en/Intervision-sub000/model"
)

// Length is the sounding length of c inside a bar of length barLen.
func Length(c model.Chord, barLen frac.Frac) (frac.Frac, error) {
	if len(c.Notes) == 0 {
		return frac.Zero, lattice.ErrNoFit
	}
	return lattice.NoteLength(c.Notes[0], barLen)
}

// Sum adds up the lengths of chords.
func Sum(chords []model.Chord, barLen frac.Frac) (frac.Frac, error) {
	total := frac.Zero
	for _, c := range chords {
		l, err := Length(c, barLen)
		if err != nil {
			return frac.Zero, err
		}
		total = total.Add(l)
	}
	return total, nil
}

// chainTie is the tie of piece i out of n cut from a note tied as orig.
func chainTie(orig model.Tie, i, n int) model.Tie {
	if n == 1 {
		return orig
	}
	switch i {
	case 0:
		return orig&model.TieStop | model.TieStart
	case n - 1:
		return orig&model.TieStart | model.TieStop
	}
	return model.TieBoth
}

// TieChain cuts c into one chord per value, tying pitched notes across the
// cuts. Pitch, dynamic and the original outer ties are kept; the accent
// stays on the first piece. Rests are never tied.
func TieChain(c model.Chord, values []lattice.Value) []model.Chord {
	out := make([]model.Chord, 0, len(values))
	for i, v := range values {
		piece := model.Chord{Notes: make([]model.Note, 0, len(c.Notes))}
		for _, n := range c.Notes {
			m := v.Apply(n)
			if m.IsRest() {
				m.Tie = model.TieNone
			} else {
				m.Tie = chainTie(n.Tie, i, len(values))
			}
			if i > 0 {
				m.Accent = false
			}
			piece.Notes = append(piece.Notes, m)
		}
		out = append(out, piece)
	}
	return out
}

// Describe renders c compactly, e.g. "quarter.(C4 E4)~".
func Describe(c model.Chord) string {
	var b strings.Builder
	b.WriteString(c.Duration().String())
	if c.Dotted() {
		b.WriteString(".")
	}
	if t := c.Tuplet(); t != nil {
		b.WriteString("[" + t.String() + "]")
	}
	if c.IsRest() {
		b.WriteString("(r)")
		return b.String()
	}
	var names []string
	notes := append([]model.Note(nil), c.Notes...)
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Pitch == nil || notes[j].Pitch == nil {
			return notes[j].Pitch == nil && notes[i].Pitch != nil
		}
		return notes[i].Pitch.Semitones() < notes[j].Pitch.Semitones()
	})
	tied := false
	for _, n := range notes {
		if n.Pitch == nil {
			continue
		}
		names = append(names, n.Pitch.String())
		if n.Tie.Has(model.TieStart) {
			tied = true
		}
	}
	b.WriteString("(" + strings.Join(names, " ") + ")")
	if tied {
		b.WriteString("~")
	}
	return b.String()
}
