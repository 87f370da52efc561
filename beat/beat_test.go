package beat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reu7en/Intervision-sub000/chord"
	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/lattice"
	"github.com/Reu7en/Intervision-sub000/model"
)

var (
	fourFour = model.TimeSignature{Symbol: model.Common}
	g4       = model.Pitch{Step: model.G, Octave: 4}
	b4       = model.Pitch{Step: model.B, Octave: 4}
)

func bar(chords ...model.Chord) model.Bar {
	return model.Bar{Time: fourFour, Chords: chords}
}

func groupLength(t *testing.T, g []model.Chord) frac.Frac {
	sum, err := chord.Sum(g, frac.One)
	require.NoError(t, err)
	return sum
}

func flatten(groups [][]model.Chord) []model.Chord {
	var out []model.Chord
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func TestSplitDottedHalf(t *testing.T) {
	groups, err := Split(bar(
		model.NewChord(model.Half, true, g4, b4),
		model.RestChord(model.Quarter),
	))
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, groups, 4)
	wantTies := []model.Tie{model.TieStart, model.TieBoth, model.TieStop}
	for i, tie := range wantTies {
		require.Len(t, groups[i], 1)
		c := groups[i][0]
		assert.Equal(model.Quarter, c.Duration())
		assert.False(c.Dotted())
		assert.Equal(tie, c.Notes[0].Tie)
		assert.Equal(tie, c.Notes[1].Tie)
	}
	assert.True(groups[3][0].IsRest())
	for _, g := range groups {
		assert.Equal(frac.New(1, 4), groupLength(t, g))
	}
}

func TestSplitKeepsBeatAlignedChords(t *testing.T) {
	groups, err := Split(bar(
		model.NewChord(model.Eighth, false, g4),
		model.NewChord(model.Eighth, false, b4),
		model.NewChord(model.Quarter, false, g4),
		model.NewChord(model.Sixteenth, false, g4),
		model.NewChord(model.Eighth, true, b4),
		model.RestChord(model.Quarter),
	))
	require.NoError(t, err)
	assert.Len(t, groups, 4)
	assert.Len(t, groups[0], 2)
	assert.Len(t, groups[2], 2)
}

func TestSplitTripletEighths(t *testing.T) {
	triplet := func(p model.Pitch) model.Chord {
		return model.NewChord(model.Eighth, false, p).WithTuplet(lattice.Triplet)
	}
	groups, err := Split(bar(
		triplet(g4), triplet(b4), triplet(g4),
		model.NewChord(model.Quarter, false, g4),
		model.NewChord(model.Half, false, b4),
	))
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, groups, 4)
	assert.Len(groups[0], 3)
	assert.Equal(frac.New(1, 4), groupLength(t, groups[0]))
	assert.Equal(model.TieStart, groups[2][0].Notes[0].Tie)
	assert.Equal(model.TieStop, groups[3][0].Notes[0].Tie)
}

func TestSplitTupletAcrossBeats(t *testing.T) {
	triplet := model.NewChord(model.Quarter, false, g4).WithTuplet(lattice.Triplet)
	groups, err := Split(bar(triplet, triplet, triplet, model.RestChord(model.Half)))
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Len(t, groups[0], 3)
	assert.Equal(t, frac.New(1, 2), groupLength(t, groups[0]))
}

func TestSplitMixedTripletValues(t *testing.T) {
	quarter := model.NewChord(model.Quarter, false, g4).WithTuplet(lattice.Triplet)
	eighth := model.NewChord(model.Eighth, false, b4).WithTuplet(lattice.Triplet)
	for name, b := range map[string]model.Bar{
		"long first":  bar(quarter, eighth, model.NewChord(model.Quarter, false, g4), model.NewChord(model.Half, false, b4)),
		"short first": bar(eighth, quarter, model.NewChord(model.Quarter, false, g4), model.NewChord(model.Half, false, b4)),
	} {
		t.Run(name, func(t *testing.T) {
			groups, err := Split(b)
			require.NoError(t, err)

			assert := assert.New(t)
			require.Len(t, groups, 4)
			assert.Len(groups[0], 2)
			for _, g := range groups {
				assert.Equal(frac.New(1, 4), groupLength(t, g))
			}
			assert.Nil(groups[1][0].Tuplet())
			assert.Equal(model.TieStart, groups[2][0].Notes[0].Tie)
			assert.Equal(model.TieStop, groups[3][0].Notes[0].Tie)
		})
	}
}

func TestSplitTupletRunEndsAtPlainChord(t *testing.T) {
	sixteenth := model.NewChord(model.Sixteenth, false, g4).WithTuplet(lattice.Triplet)
	groups, err := Split(bar(
		sixteenth, sixteenth, sixteenth,
		model.NewChord(model.Eighth, false, b4),
		model.NewChord(model.Half, true, g4),
	))
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, groups, 4)
	assert.Len(groups[0], 4)
	assert.Equal(frac.New(1, 4), groupLength(t, groups[0]))
	for _, g := range groups {
		for _, c := range g {
			length, err := chord.Length(c, frac.One)
			require.NoError(t, err)
			assert.Equal(1, length.Sign())
		}
	}
}

func TestSplitEmptyAndIncompleteBars(t *testing.T) {
	for name, b := range map[string]model.Bar{
		"empty":      bar(),
		"bar rest":   bar(model.RestChord(model.WholeBar)),
		"incomplete": bar(model.NewChord(model.Half, false, g4)),
	} {
		t.Run(name, func(t *testing.T) {
			groups, err := Split(b)
			require.NoError(t, err)
			require.Len(t, groups, 1)
			require.Len(t, groups[0], 1)
			assert.Equal(t, model.WholeBar, groups[0][0].Duration())
			assert.True(t, groups[0][0].IsRest())
		})
	}
}

func TestSplitUnfittablePiece(t *testing.T) {
	_, err := Split(bar(
		model.NewChord(model.SixtyFourth, false, g4),
		model.NewChord(model.Half, false, g4),
		model.NewChord(model.Quarter, true, g4),
		model.NewChord(model.Sixteenth, false, g4),
		model.NewChord(model.ThirtySecond, false, g4),
		model.NewChord(model.SixtyFourth, false, g4),
	))
	assert.ErrorIs(t, err, lattice.ErrNoFit)
}

func TestSplitBadTuplet(t *testing.T) {
	bad := model.NewChord(model.Quarter, false, g4).WithTuplet(model.Tuplet{Actual: 0, Normal: 2})
	_, err := Split(bar(bad))
	assert.ErrorIs(t, err, lattice.ErrBadTuplet)
}

func TestFlattenPreservesLength(t *testing.T) {
	b := bar(
		model.NewChord(model.Eighth, false, g4),
		model.NewChord(model.Half, true, b4),
		model.NewChord(model.Eighth, false, g4),
	)
	groups, err := Split(b)
	require.NoError(t, err)
	flat := flatten(groups)
	assert.Len(t, flat, 6)
	assert.Equal(t, frac.One, groupLength(t, flat))
}
