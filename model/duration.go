package model

// Duration is a notated note value. WholeBar is the whole-bar rest, whose length is
// the length of the bar it sits in.
type Duration int

const (
	WholeBar Duration = iota
	Breve
	Whole
	Half
	Quarter
	Eighth
	Sixteenth
	ThirtySecond
	SixtyFourth
)

var durationNames = []string{"bar", "breve", "whole", "half", "quarter", "eighth", "16th", "32nd", "64th"}

// Durations lists the lattice from longest to shortest, without WholeBar.
var Durations = []Duration{Breve, Whole, Half, Quarter, Eighth, Sixteenth, ThirtySecond, SixtyFourth}

func (d Duration) String() string { return nameOf(durationNames, int(d)) }

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Duration) UnmarshalText(text []byte) error {
	i, err := indexOf(durationNames, "duration", string(text))
	*d = Duration(i)
	return err
}
