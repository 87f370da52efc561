package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Reu7en/Intervision-sub000/codec"
	"github.com/Reu7en/Intervision-sub000/midi"
	"github.com/Reu7en/Intervision-sub000/model"
)

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output .mid file")
	exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

// Tracks expands every staff of score into bars of segments, one track per
// staff. The time signature of the first bar applies to the whole file.
func Tracks(score model.Score, lowOctave int) (model.TimeSignature, []string, [][][]model.Segment, error) {
	var (
		ts     model.TimeSignature
		found  bool
		names  []string
		tracks [][][]model.Segment
	)
	for _, part := range score.Parts {
		for si, staff := range part.Staves {
			var bars [][]model.Segment
			for bi, bar := range staff.Bars {
				if !found {
					ts, found = bar.Time, true
				}
				segs, err := codec.Segments(bar, lowOctave)
				if err != nil {
					return ts, nil, nil, errors.Wrapf(err, "part %q staff %d bar %d", part.Name, si, bi)
				}
				bars = append(bars, segs)
			}
			names = append(names, part.Name)
			tracks = append(tracks, bars)
		}
	}
	return ts, names, tracks, nil
}

var exportCmd = &cobra.Command{
	Use:   "export [score.json] --out file.mid",
	Short: "Writes a JSON score as a MIDI file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		score, err := readJSON[model.Score](argOrStdin(args))
		if err != nil {
			return err
		}
		ts, names, tracks, err := Tracks(*score, cfg.LowOctave)
		if err != nil {
			return err
		}
		f, err := os.Create(exportOut)
		if err != nil {
			return errors.Wrapf(err, "could not recreate %v", exportOut)
		}
		defer func() {
			closeErr := f.Close()
			if closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		return midi.Export(f, ts, names, tracks, cfg.LowOctave)
	},
}
