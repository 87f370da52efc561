// Package interval derives harmonic and melodic interval lines from
// piano-roll segments.
package interval

import (
	"github.com/Reu7en/Intervision-sub000/model"
)

// PaletteSize is the number of interval classes and default palette entries.
const PaletteSize = 12

// Class is (|rowA-rowB| - 1) mod 12; unisons and octaves land on 11.
func Class(rowA, rowB int) int {
	d := rowA - rowB
	if d < 0 {
		d = -d
	}
	return ((d-1)%12 + 12) % 12
}

// Fold maps the classes 6..10 onto 5..1; 0 and 11 stay put.
func Fold(class int) int {
	if class >= 6 && class <= 10 {
		return 11 - class
	}
	return class
}

// Color is the palette index of class, optionally folded.
func Color(class int, fold bool) int {
	if fold {
		return Fold(class)
	}
	return class
}

// Tag tells whether class is an inverted interval.
func Tag(class int) model.Inversion {
	switch {
	case class == 0 || class == 11:
		return model.Neither
	case class >= 6 && class <= 10:
		return model.Inverted
	}
	return model.NotInverted
}

func line(from, to model.Point, fold, harmonic bool) model.Line {
	class := Class(from.Row, to.Row)
	return model.Line{
		Start:     from,
		End:       to,
		Class:     class,
		Color:     Color(class, fold),
		Inversion: Tag(class),
		Harmonic:  harmonic,
	}
}
