package beam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/lattice"
	"github.com/Reu7en/Intervision-sub000/model"
)

var (
	quarter = frac.New(1, 4)
	a4      = model.Pitch{Step: model.A, Octave: 4}
)

func notes(d model.Duration, n int) []model.Chord {
	out := make([]model.Chord, n)
	for i := range out {
		out[i] = model.NewChord(d, false, a4)
	}
	return out
}

func sizes(groups [][]model.Chord) []int {
	var out []int
	for _, g := range groups {
		out = append(out, len(g))
	}
	return out
}

func assertPartition(t *testing.T, in []model.Chord, groups [][]model.Chord) {
	var flat []model.Chord
	for _, g := range groups {
		assert.NotEmpty(t, g)
		flat = append(flat, g...)
	}
	assert.Equal(t, in, flat)
}

func TestGroup(t *testing.T) {
	triplet := model.NewChord(model.Eighth, false, a4).WithTuplet(lattice.Triplet)
	mixed := append(notes(model.Sixteenth, 2), notes(model.ThirtySecond, 4)...)
	cases := []struct {
		name  string
		in    []model.Chord
		sizes []int
	}{
		{"eighths", notes(model.Eighth, 2), []int{2}},
		{"quarter", notes(model.Quarter, 1), []int{1}},
		{"thirty-seconds", notes(model.ThirtySecond, 8), []int{4, 4}},
		{"sixty-fourths", notes(model.SixtyFourth, 16), []int{4, 4, 4, 4}},
		{"mixed", mixed, []int{2, 4}},
		{"sixteenths", notes(model.Sixteenth, 4), []int{4}},
		{"rest", []model.Chord{
			model.NewChord(model.Eighth, false, a4),
			model.RestChord(model.Sixteenth),
			model.NewChord(model.Sixteenth, false, a4),
		}, []int{1, 1, 1}},
		{"triplet", []model.Chord{triplet, triplet, triplet}, []int{3}},
		{"triplet then sixteenths", append([]model.Chord{triplet, triplet, triplet},
			notes(model.Sixteenth, 2)...), []int{3, 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			groups, err := Group(c.in, quarter, frac.One)
			require.NoError(t, err)
			assert.Equal(t, c.sizes, sizes(groups))
			assertPartition(t, c.in, groups)
		})
	}
}

func TestGroupCarriesOverflow(t *testing.T) {
	in := []model.Chord{
		model.NewChord(model.ThirtySecond, false, a4),
		model.NewChord(model.Sixteenth, false, a4),
		model.NewChord(model.Sixteenth, false, a4),
		model.NewChord(model.ThirtySecond, false, a4),
		model.NewChord(model.ThirtySecond, false, a4),
	}
	groups, err := Group(in, frac.New(1, 2), frac.One)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, sizes(groups))
	assertPartition(t, in, groups)
}

func TestBar(t *testing.T) {
	b := model.Bar{
		Time: model.TimeSignature{Beats: 2, BeatType: 4},
		Chords: append(notes(model.ThirtySecond, 8),
			model.NewChord(model.Quarter, false, a4)),
	}
	layout, err := Bar(b)
	require.NoError(t, err)
	require.Len(t, layout, 2)
	assert.Equal(t, []int{4, 4}, sizes(layout[0]))
	assert.Equal(t, []int{1}, sizes(layout[1]))
}
