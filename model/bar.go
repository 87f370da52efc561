package model

import (
	"github.com/Reu7en/Intervision-sub000/frac"
)

// MeterSymbol selects how a time signature is drawn.
type MeterSymbol int

const (
	Custom MeterSymbol = iota
	Common
	Cut
)

var meterNames = []string{"custom", "common", "cut"}

func (m MeterSymbol) String() string { return nameOf(meterNames, int(m)) }
func (m MeterSymbol) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (m *MeterSymbol) UnmarshalText(text []byte) error {
	i, err := indexOf(meterNames, "meter symbol", string(text))
	*m = MeterSymbol(i)
	return err
}

// TimeSignature is Beats notes of value 1/BeatType per bar. Common and Cut
// override the numbers with 4/4 and 2/2.
type TimeSignature struct {
	Symbol   MeterSymbol `json:"symbol,omitempty"`
	Beats    int         `json:"beats"`
	BeatType int         `json:"beatType"`
}

// Numbers returns beats and beat type, resolving symbols and invalid values.
func (t TimeSignature) Numbers() (int, int) {
	switch t.Symbol {
	case Common:
		return 4, 4
	case Cut:
		return 2, 2
	}
	if t.Beats <= 0 || t.BeatType <= 0 {
		return 4, 4
	}
	return t.Beats, t.BeatType
}

// Beat is the length of one beat in whole notes.
func (t TimeSignature) Beat() frac.Frac {
	_, bt := t.Numbers()
	return frac.New(1, int64(bt))
}

// Length is the length of a full bar in whole notes.
func (t TimeSignature) Length() frac.Frac {
	b, bt := t.Numbers()
	return frac.New(int64(b), int64(bt))
}

type Clef int

const (
	Treble Clef = iota
	Bass
	Alto
	Tenor
)

var clefNames = []string{"treble", "bass", "alto", "tenor"}

func (c Clef) String() string { return nameOf(clefNames, int(c)) }
func (c Clef) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
func (c *Clef) UnmarshalText(text []byte) error {
	i, err := indexOf(clefNames, "clef", string(text))
	*c = Clef(i)
	return err
}

// Alteration is a step the key signature alters.
type Alteration struct {
	Step       Step       `json:"step" yaml:"step"`
	Accidental Accidental `json:"accidental" yaml:"accidental"`
}

// KeySignature is an entry of the external key table.
type KeySignature struct {
	Name    string       `json:"name" yaml:"name"`
	Sharps  bool         `json:"sharps,omitempty" yaml:"sharps"`
	Altered []Alteration `json:"altered,omitempty" yaml:"altered"`
}

// Bar is one measure of one staff.
type Bar struct {
	Time   TimeSignature `json:"time"`
	Clef   Clef          `json:"clef,omitempty"`
	Key    KeySignature  `json:"key"`
	Chords []Chord       `json:"chords"`
}

func (b Bar) Length() frac.Frac { return b.Time.Length() }

// IsEmpty reports the canonical empty state: no chords, or a leading
// whole-bar rest.
func (b Bar) IsEmpty() bool {
	if len(b.Chords) == 0 {
		return true
	}
	first := b.Chords[0]
	return first.Duration() == WholeBar && first.IsRest()
}

// WithChords returns a copy of b holding chords.
func (b Bar) WithChords(chords []Chord) Bar {
	b.Chords = chords
	return b
}

// RestBar returns b emptied to a single whole-bar rest.
func (b Bar) RestBar() Bar {
	return b.WithChords([]Chord{RestChord(WholeBar)})
}
