package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Reu7en/Intervision-sub000/interval"
	"github.com/Reu7en/Intervision-sub000/model"
	"github.com/Reu7en/Intervision-sub000/server"
)

var (
	intervalsBar      int
	intervalsHarmonic string
	intervalsMelodic  string
	intervalsFold     bool
)

func init() {
	intervalsCmd.Flags().IntVar(&intervalsBar, "bar", -1, "only this bar index")
	intervalsCmd.Flags().StringVar(&intervalsHarmonic, "harmonic", "", "harmonic scope: none, staves, parts, groups, all")
	intervalsCmd.Flags().StringVar(&intervalsMelodic, "melodic", "", "melodic scope: none, staves, parts, groups, all")
	intervalsCmd.Flags().BoolVar(&intervalsFold, "fold", false, "fold inverted interval classes onto their inversions")
	rootCmd.AddCommand(intervalsCmd)
}

func analysisOptions(cmd *cobra.Command) (interval.Options, error) {
	opts := cfg.Analysis
	var err error
	if intervalsHarmonic != "" {
		if opts.Harmonic, err = interval.ParseScope(intervalsHarmonic); err != nil {
			return opts, err
		}
	}
	if intervalsMelodic != "" {
		if opts.Melodic, err = interval.ParseScope(intervalsMelodic); err != nil {
			return opts, err
		}
	}
	if cmd.Flags().Changed("fold") {
		opts.Fold = intervalsFold
	}
	return opts, nil
}

var intervalsCmd = &cobra.Command{
	Use:   "intervals [score.json]",
	Short: "Computes harmonic and melodic interval lines of a score",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := readJSON[model.Score](argOrStdin(args))
		if err != nil {
			return err
		}
		opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}
		results, err := interval.AnalyzeScore(*score, cfg.LowOctave, opts, cfg.WorkerCount())
		if err != nil {
			return err
		}
		if intervalsBar >= 0 {
			if intervalsBar >= len(results) {
				return errors.Errorf("bar %d out of range, score has %d bars", intervalsBar, len(results))
			}
			results = results[intervalsBar : intervalsBar+1]
		}
		return writeJSON(cmd, server.IntervalsResponse{Bars: results, Palette: cfg.Palette})
	},
}
