package interval

import (
	"github.com/Reu7en/Intervision-sub000/model"
)

func overlap(a, b model.Line) bool {
	if !a.Start.Time.Eq(b.Start.Time) {
		return false
	}
	aLo, aHi := a.Span()
	bLo, bHi := b.Span()
	return aLo < bHi && bLo < aHi
}

func length(l model.Line) int {
	lo, hi := l.Span()
	return hi - lo
}

// victim finds an overlapping pair and returns the index of its shorter
// line; of two equal lines the later one goes.
func victim(lines []model.Line) (int, bool) {
	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			if !overlap(lines[i], lines[j]) {
				continue
			}
			if length(lines[i]) < length(lines[j]) {
				return i, true
			}
			return j, true
		}
	}
	return 0, false
}

// Prune removes lines at the same time whose row spans overlap, keeping the
// longer one, until no such pair is left or maxPasses removals were made.
// maxPasses <= 0 allows one removal per line, which always reaches the
// fixed point.
func Prune(lines []model.Line, maxPasses int) []model.Line {
	out := append([]model.Line(nil), lines...)
	if maxPasses <= 0 {
		maxPasses = len(out)
	}
	for pass := 0; pass < maxPasses; pass++ {
		i, ok := victim(out)
		if !ok {
			break
		}
		out = append(out[:i], out[i+1:]...)
	}
	return out
}
