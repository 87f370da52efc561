package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/model"
)

func seg(row int, onset, duration string) model.Segment {
	return model.Segment{Row: row, Onset: frac.MustParse(onset), Duration: frac.MustParse(duration)}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		a, b      int
		class     int
		folded    int
		inversion model.Inversion
	}{
		{"unison", 5, 5, 11, 11, model.Neither},
		{"octave", 0, 12, 11, 11, model.Neither},
		{"minor second", 0, 1, 0, 0, model.Neither},
		{"major third", 0, 4, 3, 3, model.NotInverted},
		{"fifth", 0, 7, 6, 5, model.Inverted},
		{"fifth downward", 7, 0, 6, 5, model.Inverted},
		{"major seventh", 0, 11, 10, 1, model.Inverted},
		{"tritone", 0, 6, 5, 5, model.NotInverted},
		{"ninth", 0, 14, 1, 1, model.NotInverted},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert := assert.New(t)
			class := Class(c.a, c.b)
			assert.Equal(c.class, class)
			assert.Equal(class, Class(c.b, c.a))
			assert.Equal(c.class, Color(class, false))
			assert.Equal(c.folded, Color(class, true))
			assert.Equal(c.inversion, Tag(class))
		})
	}
}

func TestHarmonicSymmetry(t *testing.T) {
	assert := assert.New(t)
	a := seg(0, "0", "1/2")
	b := seg(7, "1/4", "1/2")
	c := seg(3, "1/2", "1/4")
	assert.True(Harmonic(a, b))
	assert.True(Harmonic(b, a))
	assert.False(Harmonic(a, c), "touching is not overlapping")
	assert.False(Harmonic(c, a))
	assert.False(Harmonic(a, seg(model.RestRow, "0", "1")))
}

func TestHarmonicLines(t *testing.T) {
	assert := assert.New(t)
	segs := []model.Segment{seg(0, "0", "1/2"), seg(7, "1/4", "1/2"), seg(12, "1/2", "1/2"), seg(model.RestRow, "0", "1")}
	lines, in := HarmonicLines(segs, false)
	require.Len(t, lines, 2)
	assert.Equal([]bool{true, true, true, false}, in)

	first := lines[0]
	assert.True(first.Harmonic)
	assert.Equal("1/4", first.Start.Time.String())
	assert.Equal(first.Start.Time, first.End.Time)
	assert.Equal(0, first.Start.Row)
	assert.Equal(7, first.End.Row)
	assert.Equal(6, first.Class)
	assert.Equal(model.Inverted, first.Inversion)

	second := lines[1]
	assert.Equal("1/2", second.Start.Time.String())
	assert.Equal(4, second.Class)
}

func TestPrune(t *testing.T) {
	at := func(time string, a, b int) model.Line {
		x := frac.MustParse(time)
		return line(model.Point{Time: x, Row: a}, model.Point{Time: x, Row: b}, false, true)
	}
	t.Run("shorter goes", func(t *testing.T) {
		out := Prune([]model.Line{at("0", 0, 4), at("0", 0, 12)}, 0)
		require.Len(t, out, 1)
		assert.Equal(t, 12, out[0].End.Row)
	})
	t.Run("touching spans stay", func(t *testing.T) {
		out := Prune([]model.Line{at("0", 0, 4), at("0", 4, 7)}, 0)
		assert.Len(t, out, 2)
	})
	t.Run("different times stay", func(t *testing.T) {
		out := Prune([]model.Line{at("0", 0, 4), at("1/4", 0, 12)}, 0)
		assert.Len(t, out, 2)
	})
	t.Run("equal lengths keep the first", func(t *testing.T) {
		out := Prune([]model.Line{at("0", 0, 7), at("0", 2, 9)}, 0)
		require.Len(t, out, 1)
		assert.Equal(t, 0, out[0].Start.Row)
	})
	t.Run("fixed point", func(t *testing.T) {
		assert := assert.New(t)
		lines := []model.Line{at("0", 0, 4), at("0", 0, 7), at("0", 4, 7), at("0", 0, 12), at("1/2", 3, 5), at("1/2", 4, 9)}
		out := Prune(lines, 0)
		for i := range out {
			for j := i + 1; j < len(out); j++ {
				assert.False(overlap(out[i], out[j]), "%v %v", out[i], out[j])
			}
		}
		assert.Equal(out, Prune(out, 0))
		assert.Len(lines, 6, "input untouched")
	})
	t.Run("pass cap", func(t *testing.T) {
		lines := []model.Line{at("0", 0, 4), at("0", 0, 7), at("0", 0, 12)}
		assert.Len(t, Prune(lines, 1), 2)
	})
}

func TestMelodicLines(t *testing.T) {
	assert := assert.New(t)
	prev := []model.Segment{seg(2, "0", "1/2"), seg(4, "1/2", "1/2")}
	cur := []model.Segment{
		seg(7, "0", "1/4"),
		seg(0, "1/4", "1/2"), seg(12, "1/4", "1/2"), // harmonic pair, skipped
		seg(5, "3/4", "1/4"),
		seg(model.RestRow, "0", "1"),
	}
	next := []model.Segment{seg(9, "0", "1/4")}
	lines := MelodicLines(prev, cur, next, frac.One, frac.One, true)
	require.Len(t, lines, 3)

	assert.Equal(model.Point{Time: frac.New(1, 8), Row: 7}, lines[0].Start)
	assert.Equal(model.Point{Time: frac.New(7, 8), Row: 5}, lines[0].End)
	assert.False(lines[0].Dotted)
	assert.False(lines[0].Harmonic)
	assert.Equal(Class(7, 5), lines[0].Class)

	assert.True(lines[1].Dotted)
	assert.Equal(model.Point{Time: frac.New(-1, 4), Row: 4}, lines[1].Start)
	assert.Equal(lines[0].Start, lines[1].End)

	assert.True(lines[2].Dotted)
	assert.Equal(lines[0].End, lines[2].Start)
	assert.Equal(model.Point{Time: frac.New(9, 8), Row: 9}, lines[2].End)
}

func TestMelodicLinesEmptyBar(t *testing.T) {
	prev := []model.Segment{seg(2, "0", "1")}
	next := []model.Segment{seg(4, "0", "1")}
	assert.Empty(t, MelodicLines(prev, nil, next, frac.One, frac.One, false))
}

func TestAnalyzeScopes(t *testing.T) {
	staves := []StaffBar{
		{Part: 0, Staff: 0, Group: "keys", Cur: []model.Segment{seg(12, "0", "1")}, CurLen: frac.One},
		{Part: 0, Staff: 1, Group: "keys", Cur: []model.Segment{seg(0, "0", "1")}, CurLen: frac.One},
		{Part: 1, Staff: 0, Cur: []model.Segment{seg(7, "0", "1/2"), seg(9, "1/2", "1/2")}, CurLen: frac.One},
	}
	cases := []struct {
		name     string
		harmonic Scope
		melodic  Scope
		nh, nm   int
	}{
		{"none", ScopeNone, ScopeNone, 0, 0},
		{"staves", ScopeStaves, ScopeStaves, 0, 1},
		{"parts", ScopeParts, ScopeParts, 1, 1},
		{"groups", ScopeGroups, ScopeGroups, 1, 1},
		{"all", ScopeAll, ScopeStaves, 3, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := Analyze(staves, Options{Harmonic: c.harmonic, Melodic: c.melodic})
			assert.Len(t, res.Harmonic, c.nh)
			assert.Len(t, res.Melodic, c.nm)
		})
	}
}

func TestAnalyzePrunesHarmonic(t *testing.T) {
	staves := []StaffBar{{Cur: []model.Segment{seg(0, "0", "1"), seg(4, "0", "1"), seg(7, "0", "1")}, CurLen: frac.One}}
	res := Analyze(staves, Options{Harmonic: ScopeAll})
	require.Len(t, res.Harmonic, 1)
	lo, hi := res.Harmonic[0].Span()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 7, hi)
	assert.Empty(t, res.Melodic)
}

func TestParseScope(t *testing.T) {
	assert := assert.New(t)
	s, err := ParseScope("groups")
	assert.NoError(err)
	assert.Equal(ScopeGroups, s)

	_, err = ParseScope("choir")
	assert.ErrorIs(err, ErrUnknownScope)

	var u Scope
	assert.NoError(u.UnmarshalText([]byte("parts")))
	assert.Equal(ScopeParts, u)
	text, _ := ScopeAll.MarshalText()
	assert.Equal("all", string(text))
}
