// Package beam groups the chords of one beat into beamed runs.
package beam

import (
	"github.com/pkg/errors"

	"github.com/Reu7en/Intervision-sub000/beat"
	"github.com/Reu7en/Intervision-sub000/chord"
	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/model"
)

// maxRun is the longest standard run left undivided.
const maxRun = 4

type grouper struct {
	barLen frac.Frac
	groups [][]model.Chord
	std    []model.Chord
	tup    []model.Chord
}

func (g *grouper) flushStd() error {
	if len(g.std) == 0 {
		return nil
	}
	sub, err := subdivide(g.std, g.barLen)
	if err != nil {
		return err
	}
	g.groups = append(g.groups, sub...)
	g.std = nil
	return nil
}

func (g *grouper) flushTup() {
	if len(g.tup) > 0 {
		g.groups = append(g.groups, g.tup)
	}
	g.tup = nil
}

func (g *grouper) alone(c model.Chord) error {
	if err := g.flushStd(); err != nil {
		return err
	}
	g.groups = append(g.groups, []model.Chord{c})
	return nil
}

// Group splits one beat into beam groups. Tuplet chords form their own run,
// rests and chords of at least a beat stand alone, everything else joins the
// running standard run. Concatenating the result gives back chords.
func Group(chords []model.Chord, beatLen, barLen frac.Frac) ([][]model.Chord, error) {
	g := &grouper{barLen: barLen}
	for i, c := range chords {
		if c.Tuplet() != nil {
			if err := g.flushStd(); err != nil {
				return nil, err
			}
			g.tup = append(g.tup, c)
			continue
		}
		g.flushTup()
		length, err := chord.Length(c, barLen)
		if err != nil {
			return nil, errors.Wrapf(err, "beam: chord %d", i)
		}
		if c.IsRest() || beatLen.LessEq(length) {
			if err := g.alone(c); err != nil {
				return nil, err
			}
			continue
		}
		g.std = append(g.std, c)
	}
	if err := g.flushStd(); err != nil {
		return nil, err
	}
	g.flushTup()
	return g.groups, nil
}

// target is the length a long run of fast notes is bucketed into.
func target(run []model.Chord) (frac.Frac, bool) {
	fastest := model.WholeBar
	for _, c := range run {
		if d := c.Duration(); d > fastest {
			fastest = d
		}
	}
	switch fastest {
	case model.ThirtySecond:
		return frac.New(1, 8), true
	case model.SixtyFourth:
		return frac.New(1, 16), true
	}
	return frac.Zero, false
}

func subdivide(run []model.Chord, barLen frac.Frac) ([][]model.Chord, error) {
	if len(run) <= maxRun {
		return [][]model.Chord{run}, nil
	}
	size, ok := target(run)
	if !ok {
		return [][]model.Chord{run}, nil
	}
	var out [][]model.Chord
	var cur []model.Chord
	left := size
	for _, c := range run {
		length, err := chord.Length(c, barLen)
		if err != nil {
			return nil, err
		}
		if len(cur) > 0 && left.Less(length) {
			out = append(out, cur)
			cur, left = nil, size
		}
		cur = append(cur, c)
		left = left.Sub(length)
		if left.Sign() <= 0 {
			out = append(out, cur)
			cur, left = nil, size
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out, nil
}

// Bar lays out a whole bar: beats first, then beam groups inside each beat.
func Bar(bar model.Bar) ([][][]model.Chord, error) {
	beats, err := beat.Split(bar)
	if err != nil {
		return nil, err
	}
	beatLen, barLen := bar.Time.Beat(), bar.Length()
	out := make([][][]model.Chord, 0, len(beats))
	for _, b := range beats {
		groups, err := Group(b, beatLen, barLen)
		if err != nil {
			return nil, err
		}
		out = append(out, groups)
	}
	return out, nil
}
