package interval

import (
	"sort"

	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/model"
)

// Options control one analysis pass.
type Options struct {
	Harmonic Scope `json:"harmonic" yaml:"harmonic"`
	Melodic  Scope `json:"melodic" yaml:"melodic"`
	Fold     bool  `json:"fold" yaml:"fold"`
	// MaxPrunePasses caps overlap pruning; zero means one pass per line.
	MaxPrunePasses int `json:"maxPrunePasses,omitempty" yaml:"maxPrunePasses"`
}

// Result holds the lines of one bar. It is replaced, never updated.
type Result struct {
	Bar      int          `json:"bar"`
	Harmonic []model.Line `json:"harmonic"`
	Melodic  []model.Line `json:"melodic"`
}

// Harmonic reports whether a and b sound together for more than an instant.
func Harmonic(a, b model.Segment) bool {
	return !a.IsRest() && !b.IsRest() && a.Overlaps(b)
}

func pitched(segs []model.Segment) []model.Segment {
	out := make([]model.Segment, 0, len(segs))
	for _, s := range segs {
		if !s.IsRest() && s.Duration.Sign() > 0 {
			out = append(out, s)
		}
	}
	return out
}

// HarmonicLines joins every overlapping pair of segs with a vertical line at
// the later onset. in[i] is set for each segment that takes part in a pair.
func HarmonicLines(segs []model.Segment, fold bool) (lines []model.Line, in []bool) {
	in = make([]bool, len(segs))
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			a, b := segs[i], segs[j]
			if !Harmonic(a, b) {
				continue
			}
			in[i], in[j] = true, true
			x := frac.Max(a.Onset, b.Onset)
			lines = append(lines, line(model.Point{Time: x, Row: a.Row}, model.Point{Time: x, Row: b.Row}, fold, true))
		}
	}
	return lines, in
}

// melodicRun returns the segments of segs outside every harmonic pair, by
// onset, with times shifted by offset.
func melodicRun(segs []model.Segment, offset frac.Frac) []model.Segment {
	segs = pitched(segs)
	_, in := HarmonicLines(segs, false)
	var out []model.Segment
	for i, s := range segs {
		if in[i] {
			continue
		}
		s.Onset = s.Onset.Add(offset)
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Onset.Cmp(out[j].Onset); c != 0 {
			return c < 0
		}
		return out[i].Row < out[j].Row
	})
	return out
}

func midpoint(s model.Segment) model.Point {
	return model.Point{Time: s.Mid(), Row: s.Row}
}

// MelodicLines connects consecutive segments of cur that are not part of a
// harmonic pair, midpoint to midpoint. The last such segment of prev and the
// first of next are joined to cur with dotted lines.
func MelodicLines(prev, cur, next []model.Segment, prevLen, curLen frac.Frac, fold bool) []model.Line {
	run := melodicRun(cur, frac.Zero)
	var lines []model.Line
	for i := 0; i+1 < len(run); i++ {
		lines = append(lines, line(midpoint(run[i]), midpoint(run[i+1]), fold, false))
	}
	if len(run) == 0 {
		return lines
	}
	if before := melodicRun(prev, prevLen.Neg()); len(before) > 0 {
		l := line(midpoint(before[len(before)-1]), midpoint(run[0]), fold, false)
		l.Dotted = true
		lines = append(lines, l)
	}
	if after := melodicRun(next, curLen); len(after) > 0 {
		l := line(midpoint(run[len(run)-1]), midpoint(after[0]), fold, false)
		l.Dotted = true
		lines = append(lines, l)
	}
	return lines
}

func collect(group []StaffBar, pick func(StaffBar) []model.Segment) []model.Segment {
	var out []model.Segment
	for _, s := range group {
		out = append(out, pick(s)...)
	}
	return out
}

// Analyze computes the harmonic and melodic lines of one bar.
func Analyze(staves []StaffBar, opts Options) Result {
	var res Result
	for _, group := range partition(staves, opts.Harmonic) {
		lines, _ := HarmonicLines(pitched(collect(group, func(s StaffBar) []model.Segment { return s.Cur })), opts.Fold)
		res.Harmonic = append(res.Harmonic, lines...)
	}
	res.Harmonic = Prune(res.Harmonic, opts.MaxPrunePasses)

	for _, group := range partition(staves, opts.Melodic) {
		prevLen, curLen := group[0].PrevLen, group[0].CurLen
		res.Melodic = append(res.Melodic, MelodicLines(
			collect(group, func(s StaffBar) []model.Segment { return s.Prev }),
			collect(group, func(s StaffBar) []model.Segment { return s.Cur }),
			collect(group, func(s StaffBar) []model.Segment { return s.Next }),
			prevLen, curLen, opts.Fold)...)
	}
	return res
}
