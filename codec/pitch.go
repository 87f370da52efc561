package codec

import (
	"github.com/Reu7en/Intervision-sub000/model"
)

var naturals = map[int]model.Step{
	0: model.C, 2: model.D, 4: model.E, 5: model.F, 7: model.G, 9: model.A, 11: model.B,
}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Row is the piano-roll lane of p; row 0 is C in lowOctave.
func Row(p model.Pitch, lowOctave int) int {
	return p.Semitones() - lowOctave*12
}

// Spell names the pitch of row. Steps altered by the key are spelled as the
// key spells them; other black keys follow the key's sharp or flat
// preference. A natural on a step the key alters is marked explicitly.
func Spell(row, lowOctave int, key model.KeySignature) model.Pitch {
	abs := row + lowOctave*12
	pc := mod12(abs)

	step, acc, found := model.C, model.None, false
	for _, alt := range key.Altered {
		if mod12(alt.Step.Semitone()+alt.Accidental.Offset()) == pc {
			step, acc, found = alt.Step, alt.Accidental, true
			break
		}
	}
	if !found {
		if s, ok := naturals[pc]; ok {
			step = s
			if alters(key, s) {
				acc = model.Natural
			}
		} else if key.Sharps {
			step, acc = naturals[pc-1], model.Sharp
		} else {
			step, acc = naturals[pc+1], model.Flat
		}
	}
	octave := floorDiv(abs-step.Semitone()-acc.Offset(), 12)
	return model.Pitch{Step: step, Accidental: acc, Octave: octave}
}

func alters(key model.KeySignature, s model.Step) bool {
	for _, alt := range key.Altered {
		if alt.Step == s && alt.Accidental.Offset() != 0 {
			return true
		}
	}
	return false
}
