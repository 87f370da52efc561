package codec

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Reu7en/Intervision-sub000/chord"
	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/lattice"
	"github.com/Reu7en/Intervision-sub000/model"
)

// ErrUndecomposable is returned with the fallback bar when a slice of the
// piano roll cannot be written as notes.
var ErrUndecomposable = errors.New("codec: slice cannot be notated")

func sortSegments(segs []model.Segment) {
	sort.SliceStable(segs, func(i, j int) bool {
		a, b := segs[i], segs[j]
		if c := a.Onset.Cmp(b.Onset); c != 0 {
			return c < 0
		}
		if c := a.Duration.Cmp(b.Duration); c != 0 {
			return c > 0
		}
		return a.Row < b.Row
	})
}

// RemoveCovered drops every segment lying inside another one on the same row.
// Of two identical segments the first is kept.
func RemoveCovered(segs []model.Segment) []model.Segment {
	var out []model.Segment
	for i, s := range segs {
		covered := false
		for j, o := range segs {
			if i == j || !o.Covers(s) {
				continue
			}
			if !s.Covers(o) || j < i {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, s)
		}
	}
	return out
}

// Partition splits sorted segments into groups of overlapping spans. Gaps,
// including those at either end of the bar, become rest segments of their
// own group.
func Partition(segs []model.Segment, barLen frac.Frac) [][]model.Segment {
	var groups [][]model.Segment
	var cur []model.Segment
	end := frac.Zero
	rest := func(from, to frac.Frac) {
		groups = append(groups, []model.Segment{{Row: model.RestRow, Onset: from, Duration: to.Sub(from)}})
	}
	for _, s := range segs {
		if !s.Onset.Less(end) {
			if len(cur) > 0 {
				groups = append(groups, cur)
				cur = nil
			}
			if end.Less(s.Onset) {
				rest(end, s.Onset)
			}
		}
		cur = append(cur, s)
		end = frac.Max(end, s.End())
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	if end.Less(barLen) {
		rest(end, barLen)
	}
	return groups
}

// boundaries returns the distinct onsets and ends in group, ascending.
func boundaries(group []model.Segment) []frac.Frac {
	var times []frac.Frac
	for _, s := range group {
		times = append(times, s.Onset, s.End())
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Less(times[j]) })
	out := times[:0]
	for i, t := range times {
		if i == 0 || !t.Eq(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}

// slice is one chord-to-be: the notes sounding over [from, to).
type slice struct {
	from, to frac.Frac
	rows     []int
	ties     map[int]model.Tie
	dynamics map[int]string
}

func sliceGroup(group []model.Segment) []slice {
	times := boundaries(group)
	out := make([]slice, 0, len(times))
	for k := 0; k+1 < len(times); k++ {
		sl := slice{from: times[k], to: times[k+1], ties: map[int]model.Tie{}, dynamics: map[int]string{}}
		for _, s := range group {
			if sl.from.Less(s.Onset) || s.End().Less(sl.to) {
				continue
			}
			tie := model.TieBoth
			if sl.from.Eq(s.Onset) {
				tie &^= model.TieStop
				if s.Dynamic != "" {
					sl.dynamics[s.Row] = s.Dynamic
				}
			}
			if sl.to.Eq(s.End()) {
				tie &^= model.TieStart
			}
			if _, ok := sl.ties[s.Row]; !ok {
				sl.rows = append(sl.rows, s.Row)
			}
			sl.ties[s.Row] |= tie
		}
		sort.Ints(sl.rows)
		out = append(out, sl)
	}
	return out
}

// values notates length as a single value, a triplet value or a greedy run
// of values in that order of preference.
func values(length frac.Frac) ([]lattice.Value, error) {
	if v, ok := lattice.Fit(length); ok {
		return []lattice.Value{v}, nil
	}
	if v, ok := lattice.FitTuplet(length, lattice.Triplet); ok {
		return []lattice.Value{v}, nil
	}
	return lattice.Decompose(length)
}

type encoder struct {
	key       model.KeySignature
	lowOctave int
}

func (e encoder) toChord(sl slice, sharps bool) model.Chord {
	key := e.key
	if key.Name == "" && len(key.Altered) == 0 {
		key.Sharps = sharps
	}
	c := model.Chord{}
	for _, row := range sl.rows {
		if row == model.RestRow {
			continue
		}
		p := Spell(row, e.lowOctave, key)
		c.Notes = append(c.Notes, model.Note{
			Pitch:   &p,
			Tie:     sl.ties[row],
			Dynamic: sl.dynamics[row],
		})
	}
	if len(c.Notes) == 0 {
		c.Notes = []model.Note{{}}
	}
	return c
}

// Commit folds the segments of one staff back into template's notation.
// Segments are clipped to the bar, rest segments in the input are ignored
// and silence is recomputed from the gaps.
//
// When some slice cannot be notated Commit returns template emptied to a
// whole-bar rest together with ErrUndecomposable, so there is always
// something to draw.
func Commit(template model.Bar, segs []model.Segment, lowOctave int) (model.Bar, error) {
	barLen := template.Length()
	var clean []model.Segment
	sharps := template.Key.Sharps
	for _, s := range segs {
		if s.IsRest() || s.Duration.Sign() <= 0 || s.Onset.Sign() < 0 || !s.Onset.Less(barLen) {
			continue
		}
		if barLen.Less(s.End()) {
			s.Duration = barLen.Sub(s.Onset)
		}
		sharps = sharps || s.Sharps
		clean = append(clean, s)
	}
	if len(clean) == 0 {
		return template.RestBar(), nil
	}
	sortSegments(clean)
	clean = RemoveCovered(clean)

	e := encoder{key: template.Key, lowOctave: lowOctave}
	var chords []model.Chord
	for _, group := range Partition(clean, barLen) {
		for _, sl := range sliceGroup(group) {
			length := sl.to.Sub(sl.from)
			vals, err := values(length)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"from":   sl.from,
					"length": length,
				}).Warn("cannot notate slice, falling back to a bar rest")
				return template.RestBar(), errors.Wrapf(ErrUndecomposable, "at %v: %v", sl.from, err)
			}
			chords = append(chords, chord.TieChain(e.toChord(sl, sharps), vals)...)
		}
	}
	return template.WithChords(chords), nil
}
