package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/lattice"
	"github.com/Reu7en/Intervision-sub000/model"
)

var (
	c4 = model.Pitch{Step: model.C, Octave: 4}
	e4 = model.Pitch{Step: model.E, Octave: 4}
)

func TestLength(t *testing.T) {
	assert := assert.New(t)
	got, err := Length(model.NewChord(model.Half, true, c4), frac.One)
	assert.NoError(err)
	assert.Equal(frac.New(3, 4), got)

	triplet := model.NewChord(model.Eighth, false, c4).WithTuplet(lattice.Triplet)
	got, err = Length(triplet, frac.One)
	assert.NoError(err)
	assert.Equal(frac.New(1, 12), got)

	_, err = Length(model.Chord{}, frac.One)
	assert.Error(err)
}

func TestSum(t *testing.T) {
	chords := []model.Chord{
		model.NewChord(model.Half, true, c4),
		model.RestChord(model.Quarter),
	}
	got, err := Sum(chords, frac.One)
	assert.NoError(t, err)
	assert.Equal(t, frac.One, got)
}

func TestTieChain(t *testing.T) {
	c := model.NewChord(model.Half, true, c4, e4)
	c.Notes[0].Accent = true
	c.Notes[0].Dynamic = "mf"
	values := []lattice.Value{{Duration: model.Quarter}, {Duration: model.Quarter}, {Duration: model.Quarter}}
	pieces := TieChain(c, values)

	assert := assert.New(t)
	assert.Len(pieces, 3)
	assert.Equal(model.TieStart, pieces[0].Notes[0].Tie)
	assert.Equal(model.TieBoth, pieces[1].Notes[1].Tie)
	assert.Equal(model.TieStop, pieces[2].Notes[0].Tie)
	assert.True(pieces[0].Notes[0].Accent)
	assert.False(pieces[1].Notes[0].Accent)
	assert.Equal("mf", pieces[2].Notes[0].Dynamic)
	for _, p := range pieces {
		assert.Equal(model.Quarter, p.Duration())
		assert.False(p.Dotted())
		assert.Equal(c4, *p.Notes[0].Pitch)
	}
}

func TestTieChainKeepsOuterTies(t *testing.T) {
	c := model.NewChord(model.Half, false, c4)
	c.Notes[0].Tie = model.TieStop
	pieces := TieChain(c, []lattice.Value{{Duration: model.Quarter}, {Duration: model.Quarter}})
	assert.Equal(t, model.TieBoth, pieces[0].Notes[0].Tie)
	assert.Equal(t, model.TieStop, pieces[1].Notes[0].Tie)
}

func TestTieChainRest(t *testing.T) {
	pieces := TieChain(model.RestChord(model.Half), []lattice.Value{{Duration: model.Quarter}, {Duration: model.Quarter}})
	for _, p := range pieces {
		assert.Equal(t, model.TieNone, p.Notes[0].Tie)
		assert.True(t, p.IsRest())
	}
}

func TestDescribe(t *testing.T) {
	c := model.NewChord(model.Quarter, true, e4, c4)
	c.Notes[0].Tie = model.TieStart
	assert.Equal(t, "quarter.(C4 E4)~", Describe(c))
	assert.Equal(t, "eighth[3:2](r)", Describe(model.RestChord(model.Eighth).WithTuplet(lattice.Triplet)))
}
