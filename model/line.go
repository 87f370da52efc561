package model

import (
	"github.com/Reu7en/Intervision-sub000/frac"
)

type Inversion int

const (
	Neither Inversion = iota
	NotInverted
	Inverted
)

var inversionNames = []string{"neither", "not-inverted", "inverted"}

func (i Inversion) String() string { return nameOf(inversionNames, int(i)) }
func (i Inversion) MarshalText() ([]byte, error) { return []byte(i.String()), nil }
func (i *Inversion) UnmarshalText(text []byte) error {
	n, err := indexOf(inversionNames, "inversion", string(text))
	*i = Inversion(n)
	return err
}

// Point is a time/row coordinate; the renderer maps it to pixels.
type Point struct {
	Time frac.Frac `json:"time"`
	Row  int       `json:"row"`
}

// Line is one interval line.
type Line struct {
	Start     Point     `json:"start"`
	End       Point     `json:"end"`
	Class     int       `json:"class"`
	Color     int       `json:"color"`
	Inversion Inversion `json:"inversion"`
	Dotted    bool      `json:"dotted,omitempty"`
	Harmonic  bool      `json:"harmonic"`
}

// Span returns the low and high row of the line.
func (l Line) Span() (int, int) {
	if l.Start.Row < l.End.Row {
		return l.Start.Row, l.End.Row
	}
	return l.End.Row, l.Start.Row
}
