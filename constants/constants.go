package constants

import (
	"os"

	"github.com/Reu7en/Intervision-sub000/model"
)

const EnvPrefix = "INTERVISION_"

func GetConfigPath() string {
	path := os.Getenv(EnvPrefix + "CONFIG")
	if path != "" {
		return path
	}
	return "./intervision.yaml"
}

// Row 0 is C of this octave.
const LowOctave = 4

const Addr = ":8080"

// Workers bounds score-wide analysis; zero means one per CPU.
const Workers = 0

const DebounceMillis = 250

// Palette holds one color per interval class, minor second first.
var Palette = []string{
	"#e6194b", "#f58231", "#ffe119", "#bfef45", "#3cb44b", "#42d4f4",
	"#4363d8", "#911eb4", "#f032e6", "#a9a9a9", "#9a6324", "#000000",
}

var (
	sharpOrder = []model.Step{model.F, model.C, model.G, model.D, model.A, model.E, model.B}
	flatOrder  = []model.Step{model.B, model.E, model.A, model.D, model.G, model.C, model.F}
	sharpNames = []string{"C", "G", "D", "A", "E", "B", "F#", "C#"}
	flatNames  = []string{"C", "F", "Bb", "Eb", "Ab", "Db", "Gb", "Cb"}
)

// MajorKeys is the default key table: C major plus seven sharp and seven
// flat keys. C prefers sharps.
func MajorKeys() []model.KeySignature {
	keys := []model.KeySignature{{Name: "C", Sharps: true}}
	for n := 1; n <= 7; n++ {
		sharp := model.KeySignature{Name: sharpNames[n], Sharps: true}
		flat := model.KeySignature{Name: flatNames[n]}
		for i := 0; i < n; i++ {
			sharp.Altered = append(sharp.Altered, model.Alteration{Step: sharpOrder[i], Accidental: model.Sharp})
			flat.Altered = append(flat.Altered, model.Alteration{Step: flatOrder[i], Accidental: model.Flat})
		}
		keys = append(keys, sharp, flat)
	}
	return keys
}
