package cmd

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Reu7en/Intervision-sub000/codec"
	"github.com/Reu7en/Intervision-sub000/file"
	"github.com/Reu7en/Intervision-sub000/midi"
	"github.com/Reu7en/Intervision-sub000/model"
	"github.com/Reu7en/Intervision-sub000/util"
)

var (
	importOut     string
	importKey     string
	importQuantum int64
	importMax     int
)

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "output file, or directory when importing several files")
	importCmd.Flags().StringVar(&importKey, "key", "C", "key signature name used for spelling")
	importCmd.Flags().Int64Var(&importQuantum, "quantum", midi.DefaultQuantum, "round times to 1/quantum of a whole note")
	importCmd.Flags().IntVar(&importMax, "max", 0, "import at most this many files (0 for all)")
	rootCmd.AddCommand(importCmd)
}

// Import notates the MIDI file at path, one part per track.
func Import(path string, key model.KeySignature, lowOctave int, quantum int64) (*model.Score, error) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	piece, err := midi.Import(s, lowOctave, quantum)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	template := model.Bar{Time: piece.Time, Key: key}
	score := &model.Score{Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	for ti, track := range piece.Tracks {
		part := model.Part{Name: track.Name}
		var staff model.Staff
		for bi, segs := range track.Bars {
			bar, err := codec.Commit(template, segs, lowOctave)
			if err != nil {
				logrus.WithFields(logrus.Fields{"file": path, "track": ti, "bar": bi}).Debug("snapping durations to note values")
				bar, err = codec.Commit(template, midi.Snap(segs), lowOctave)
			}
			if err != nil {
				logrus.WithFields(logrus.Fields{"file": path, "track": ti, "bar": bi}).WithError(err).Warn("bar replaced by a whole-bar rest")
			}
			staff.Bars = append(staff.Bars, bar)
		}
		part.Staves = []model.Staff{staff}
		score.Parts = append(score.Parts, part)
	}
	return score, nil
}

var importCmd = &cobra.Command{
	Use:   "import <file.mid|dir>",
	Short: "Converts MIDI files to JSON scores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, ok := cfg.Key(importKey)
		if !ok {
			return errors.Errorf("unknown key %q", importKey)
		}
		paths, err := util.GatherAllMidiPaths(args[0], importMax)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return errors.Errorf("no midi files in %v", args[0])
		}
		single := len(paths) == 1 && util.IsMidiPath(args[0])
		for _, path := range paths {
			score, err := Import(path, key, cfg.LowOctave, importQuantum)
			if err != nil {
				return err
			}
			switch {
			case single && importOut == "":
				err = writeJSON(cmd, score)
			case single:
				err = file.WriteScore(importOut, score)
			default:
				dir := importOut
				if dir == "" {
					dir = filepath.Dir(path)
				}
				err = file.WriteScore(filepath.Join(dir, score.Title+".json"), score)
			}
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"file": path, "parts": len(score.Parts), "bars": score.NumBars()}).Info("imported")
		}
		return nil
	},
}
