// Package lattice maps notated durations to exact fractions of a whole note
// and back.
package lattice

import (
	"github.com/pkg/errors"

	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/model"
)

var (
	ErrNoFit     = errors.New("lattice: length fits no duration")
	ErrBadTuplet = errors.New("lattice: malformed tuplet")
)

var dot = frac.New(3, 2)

// Triplet is the ratio tried when a length fits nothing plain or dotted.
var Triplet = model.Tuplet{Actual: 3, Normal: 2}

// ToFrac returns the nominal length of d. WholeBar reports a whole note; use
// NoteLength for its real length inside a bar.
func ToFrac(d model.Duration) frac.Frac {
	switch d {
	case model.Breve:
		return frac.Int(2)
	case model.WholeBar, model.Whole:
		return frac.One
	case model.Half:
		return frac.New(1, 2)
	case model.Quarter:
		return frac.New(1, 4)
	case model.Eighth:
		return frac.New(1, 8)
	case model.Sixteenth:
		return frac.New(1, 16)
	case model.ThirtySecond:
		return frac.New(1, 32)
	case model.SixtyFourth:
		return frac.New(1, 64)
	}
	return frac.Zero
}

// FromFrac finds the lattice member of length f.
func FromFrac(f frac.Frac) (model.Duration, bool) {
	for _, d := range model.Durations {
		if ToFrac(d).Eq(f) {
			return d, true
		}
	}
	return 0, false
}

// Dotted is one and a half times d.
func Dotted(d model.Duration) frac.Frac {
	return ToFrac(d).Mul(dot)
}

// Scale applies a tuplet ratio to f. A nil tuplet leaves f unchanged.
func Scale(f frac.Frac, t *model.Tuplet) (frac.Frac, error) {
	if t == nil {
		return f, nil
	}
	if !t.Valid() {
		return frac.Zero, errors.Wrapf(ErrBadTuplet, "%v", *t)
	}
	return f.Mul(frac.New(int64(t.Normal), int64(t.Actual))), nil
}

// Value is a notated length: a duration, maybe dotted, maybe in a tuplet.
type Value struct {
	Duration model.Duration
	Dotted   bool
	Tuplet   *model.Tuplet
}

// Frac is the sounding length of v.
func (v Value) Frac() frac.Frac {
	f := ToFrac(v.Duration)
	if v.Dotted {
		f = f.Mul(dot)
	}
	if v.Tuplet != nil && v.Tuplet.Valid() {
		f = f.Mul(frac.New(int64(v.Tuplet.Normal), int64(v.Tuplet.Actual)))
	}
	return f
}

// Apply copies v onto n.
func (v Value) Apply(n model.Note) model.Note {
	n.Duration = v.Duration
	n.Dotted = v.Dotted
	n.Tuplet = nil
	if v.Tuplet != nil {
		t := *v.Tuplet
		n.Tuplet = &t
	}
	return n
}

// NoteLength is the sounding length of n inside a bar of length barLen.
func NoteLength(n model.Note, barLen frac.Frac) (frac.Frac, error) {
	if n.Duration == model.WholeBar {
		return barLen, nil
	}
	f := ToFrac(n.Duration)
	if f.IsZero() {
		return frac.Zero, errors.Wrapf(ErrNoFit, "duration %d", n.Duration)
	}
	if n.Dotted {
		f = f.Mul(dot)
	}
	return Scale(f, n.Tuplet)
}

// Fit finds a single value of length f, plain before dotted.
func Fit(f frac.Frac) (Value, bool) {
	if d, ok := FromFrac(f); ok {
		return Value{Duration: d}, true
	}
	if d, ok := FromFrac(f.Div(dot)); ok {
		return Value{Duration: d, Dotted: true}, true
	}
	return Value{}, false
}

// FitTuplet finds a single value of length f inside tuplet t.
func FitTuplet(f frac.Frac, t model.Tuplet) (Value, bool) {
	if !t.Valid() {
		return Value{}, false
	}
	v, ok := Fit(f.Mul(frac.New(int64(t.Actual), int64(t.Normal))))
	if !ok {
		return Value{}, false
	}
	v.Tuplet = &t
	return v, true
}

// Decompose splits f greedily into the longest values that fit, preferring
// the dotted form of a duration when it still fits.
func Decompose(f frac.Frac) ([]Value, error) {
	if f.Sign() <= 0 {
		return nil, errors.Wrapf(ErrNoFit, "non-positive length %v", f)
	}
	var out []Value
	rem := f
	for !rem.IsZero() {
		v, ok := longest(rem)
		if !ok {
			return nil, errors.Wrapf(ErrNoFit, "%v leaves %v", f, rem)
		}
		out = append(out, v)
		rem = rem.Sub(v.Frac())
	}
	return out, nil
}

func longest(limit frac.Frac) (Value, bool) {
	for _, d := range model.Durations {
		if Dotted(d).LessEq(limit) {
			return Value{Duration: d, Dotted: true}, true
		}
		if ToFrac(d).LessEq(limit) {
			return Value{Duration: d}, true
		}
	}
	return Value{}, false
}

// Nearest returns the plain or dotted value closest to f; plain wins ties.
func Nearest(f frac.Frac) Value {
	best := Value{Duration: model.Whole}
	bestDist := f.Sub(best.Frac()).Abs()
	for _, d := range model.Durations {
		for _, dotted := range []bool{false, true} {
			v := Value{Duration: d, Dotted: dotted}
			dist := f.Sub(v.Frac()).Abs()
			if dist.Less(bestDist) {
				best, bestDist = v, dist
			}
		}
	}
	return best
}
