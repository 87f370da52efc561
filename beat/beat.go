// Package beat splits a bar into per-beat chord groups, tying chords that
// cross a beat line.
package beat

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Reu7en/Intervision-sub000/chord"
	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/lattice"
	"github.com/Reu7en/Intervision-sub000/model"
)

type splitter struct {
	beat     frac.Frac
	timeLeft frac.Frac

	inTuplet   bool
	tupletLeft frac.Frac

	cur    []model.Chord
	groups [][]model.Chord
}

func (s *splitter) add(c model.Chord, length frac.Frac) {
	s.cur = append(s.cur, c)
	s.timeLeft = s.timeLeft.Sub(length)
	if s.inTuplet {
		s.tupletLeft = s.tupletLeft.Sub(length)
		// A tuplet run may reach past the beat line.
		for s.timeLeft.Sign() < 0 {
			s.timeLeft = s.timeLeft.Add(s.beat)
		}
		if s.tupletLeft.Sign() <= 0 || s.timeLeft.IsZero() {
			s.inTuplet = false
		}
	}
	if s.timeLeft.IsZero() && !s.inTuplet {
		s.flush()
	}
}

// endTuplet closes an open tuplet run before a plain chord.
func (s *splitter) endTuplet() {
	if !s.inTuplet {
		return
	}
	s.inTuplet = false
	if s.timeLeft.IsZero() {
		s.flush()
	}
}

func (s *splitter) flush() {
	if len(s.cur) > 0 {
		s.groups = append(s.groups, s.cur)
	}
	s.cur = nil
	s.timeLeft = s.beat
}

// cut returns the lengths c is cut into at the following beat lines. No
// piece is empty.
func (s *splitter) cut(length frac.Frac) []frac.Frac {
	var parts []frac.Frac
	rem := length
	if left := s.timeLeft; left.Sign() > 0 {
		parts = append(parts, left)
		rem = rem.Sub(left)
	}
	for s.beat.Less(rem) {
		parts = append(parts, s.beat)
		rem = rem.Sub(s.beat)
	}
	if rem.Sign() > 0 {
		parts = append(parts, rem)
	}
	return parts
}

// Split groups the chords of bar by beat. A chord crossing a beat line is
// replaced by tied pieces, one per beat touched. Tuplet runs stay whole; a
// run ends when its budget is spent, when it lands on a beat line or when a
// plain chord follows it. Plain chords never draw on the tuplet budget.
//
// An empty bar, or one whose chords do not fill the time signature, is
// reported as a single whole-bar rest group.
func Split(bar model.Bar) ([][]model.Chord, error) {
	if bar.IsEmpty() {
		return [][]model.Chord{{model.RestChord(model.WholeBar)}}, nil
	}
	barLen := bar.Length()
	total, err := chord.Sum(bar.Chords, barLen)
	if err != nil {
		return nil, errors.Wrap(err, "beat: chord length")
	}
	if !total.Eq(barLen) {
		logrus.WithFields(logrus.Fields{
			"total": total,
			"bar":   barLen,
		}).Debug("bar does not fill its time signature, treating as rest")
		return [][]model.Chord{{model.RestChord(model.WholeBar)}}, nil
	}

	s := &splitter{beat: bar.Time.Beat()}
	s.timeLeft = s.beat
	for i, c := range bar.Chords {
		length, err := chord.Length(c, barLen)
		if err != nil {
			return nil, errors.Wrapf(err, "beat: chord %d", i)
		}
		if t := c.Tuplet(); t != nil {
			if !s.inTuplet {
				s.inTuplet = true
				s.tupletLeft = length.Mul(frac.Int(int64(t.Actual)))
			}
			s.add(c, length)
			continue
		}
		s.endTuplet()
		if length.LessEq(s.timeLeft) {
			s.add(c, length)
			continue
		}
		parts := s.cut(length)
		values := make([]lattice.Value, 0, len(parts))
		for _, p := range parts {
			v, ok := lattice.Fit(p)
			if !ok {
				return nil, errors.Wrapf(lattice.ErrNoFit, "beat: chord %d piece %v", i, p)
			}
			values = append(values, v)
		}
		for j, piece := range chord.TieChain(c, values) {
			s.add(piece, parts[j])
		}
	}
	if len(s.cur) > 0 {
		s.groups = append(s.groups, s.cur)
	}
	return s.groups, nil
}
