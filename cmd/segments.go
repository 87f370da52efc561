package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Reu7en/Intervision-sub000/codec"
	"github.com/Reu7en/Intervision-sub000/model"
)

var (
	segmentsLowOctave int
	segmentsText      bool
)

func init() {
	segmentsCmd.Flags().IntVar(&segmentsLowOctave, "low-octave", -1, "octave of row 0 (default from config)")
	segmentsCmd.Flags().BoolVar(&segmentsText, "text", false, "print one line per segment with the note it came from")
	rootCmd.AddCommand(segmentsCmd)
}

func lowOctave(flag int) int {
	if flag >= 0 {
		return flag
	}
	return cfg.LowOctave
}

var segmentsCmd = &cobra.Command{
	Use:   "segments [bar.json]",
	Short: "Expands a bar into piano-roll segments",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bar, err := readJSON[model.Bar](argOrStdin(args))
		if err != nil {
			return err
		}
		segs, err := codec.Segments(*bar, lowOctave(segmentsLowOctave))
		if err != nil {
			return err
		}
		if !segmentsText {
			if segs == nil {
				segs = []model.Segment{}
			}
			return writeJSON(cmd, segs)
		}
		for _, seg := range segs {
			name := "?"
			if n, ok := codec.Note(*bar, seg); ok && !n.IsRest() {
				name = n.Pitch.String()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v+%v row %d %s\n", seg.Onset, seg.Duration, seg.Row, name)
		}
		return nil
	},
}
