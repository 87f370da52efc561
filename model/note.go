package model

import (
	"fmt"
)

// Step is a diatonic pitch letter.
type Step int

const (
	C Step = iota
	D
	E
	F
	G
	A
	B
)

var stepNames = []string{"C", "D", "E", "F", "G", "A", "B"}

var stepSemitones = [...]int{0, 2, 4, 5, 7, 9, 11}

// Semitone is the offset of the natural step above C.
func (s Step) Semitone() int { return stepSemitones[s] }

func (s Step) String() string { return nameOf(stepNames, int(s)) }
func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *Step) UnmarshalText(text []byte) error {
	i, err := indexOf(stepNames, "step", string(text))
	*s = Step(i)
	return err
}

// Accidental of a pitch. None means no explicit sign.
type Accidental int

const (
	None Accidental = iota
	Natural
	Sharp
	Flat
	DoubleSharp
	DoubleFlat
)

var accidentalNames = []string{"", "natural", "sharp", "flat", "double-sharp", "double-flat"}

// Offset is the alteration in semitones.
func (a Accidental) Offset() int {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	case DoubleSharp:
		return 2
	case DoubleFlat:
		return -2
	}
	return 0
}

func (a Accidental) String() string { return nameOf(accidentalNames, int(a)) }
func (a Accidental) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
func (a *Accidental) UnmarshalText(text []byte) error {
	i, err := indexOf(accidentalNames, "accidental", string(text))
	*a = Accidental(i)
	return err
}

// Pitch is a spelled pitch. Octave 4 holds middle C.
type Pitch struct {
	Step       Step       `json:"step"`
	Accidental Accidental `json:"accidental,omitempty"`
	Octave     int        `json:"octave"`
}

// Semitones counts semitones above C0.
func (p Pitch) Semitones() int {
	return p.Octave*12 + p.Step.Semitone() + p.Accidental.Offset()
}

func (p Pitch) String() string {
	acc := ""
	switch p.Accidental {
	case Sharp:
		acc = "#"
	case Flat:
		acc = "b"
	case DoubleSharp:
		acc = "##"
	case DoubleFlat:
		acc = "bb"
	}
	return fmt.Sprintf("%v%s%d", p.Step, acc, p.Octave)
}

// Tie is a set of tie flags.
type Tie int

const (
	TieNone  Tie = 0
	TieStart Tie = 1
	TieStop  Tie = 2
	TieBoth      = TieStart | TieStop
)

var tieNames = []string{"", "start", "stop", "both"}

func (t Tie) Has(flag Tie) bool { return t&flag == flag && flag != 0 }

func (t Tie) String() string { return nameOf(tieNames, int(t)) }
func (t Tie) MarshalText() ([]byte, error) { return []byte(t.String()), nil }
func (t *Tie) UnmarshalText(text []byte) error {
	i, err := indexOf(tieNames, "tie", string(text))
	*t = Tie(i)
	return err
}

// Tuplet squeezes Actual notes into the time of Normal ones, e.g. 3:2.
type Tuplet struct {
	Actual int `json:"actual"`
	Normal int `json:"normal"`
}

func (t Tuplet) Valid() bool { return t.Actual > 0 && t.Normal > 0 }

func (t Tuplet) String() string { return fmt.Sprintf("%d:%d", t.Actual, t.Normal) }

// Note is a rest when Pitch is nil.
type Note struct {
	Pitch    *Pitch   `json:"pitch,omitempty"`
	Duration Duration `json:"duration"`
	Dotted   bool     `json:"dotted,omitempty"`
	Tuplet   *Tuplet  `json:"tuplet,omitempty"`
	Tie      Tie      `json:"tie,omitempty"`
	Accent   bool     `json:"accent,omitempty"`
	Dynamic  string   `json:"dynamic,omitempty"`
}

func (n Note) IsRest() bool { return n.Pitch == nil }

// Rest returns a rest of the given value.
func Rest(d Duration, dotted bool) Note {
	return Note{Duration: d, Dotted: dotted}
}

// Pitched returns a note sounding p.
func Pitched(p Pitch, d Duration, dotted bool) Note {
	return Note{Pitch: &p, Duration: d, Dotted: dotted}
}
