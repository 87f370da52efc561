package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Reu7en/Intervision-sub000/codec"
	"github.com/Reu7en/Intervision-sub000/model"
)

var (
	commitBar       string
	commitLowOctave int
)

func init() {
	commitCmd.Flags().StringVar(&commitBar, "bar", "", "bar whose time and key signature the result keeps")
	commitCmd.Flags().IntVar(&commitLowOctave, "low-octave", -1, "octave of row 0 (default from config)")
	commitCmd.MarkFlagRequired("bar")
	rootCmd.AddCommand(commitCmd)
}

var commitCmd = &cobra.Command{
	Use:   "commit --bar bar.json [segments.json]",
	Short: "Notates piano-roll segments into a bar",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		template, err := readJSON[model.Bar](commitBar)
		if err != nil {
			return err
		}
		if !cfg.ResolveKey(&template.Key) {
			logrus.WithField("key", template.Key.Name).Warn("unknown key signature")
		}
		segs, err := readJSON[[]model.Segment](argOrStdin(args))
		if err != nil {
			return err
		}
		bar, err := codec.Commit(*template, *segs, lowOctave(commitLowOctave))
		if err != nil {
			logrus.WithError(err).Warn("bar replaced by a whole-bar rest")
		}
		return writeJSON(cmd, bar)
	},
}
