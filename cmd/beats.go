package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Reu7en/Intervision-sub000/beam"
	"github.com/Reu7en/Intervision-sub000/beat"
	"github.com/Reu7en/Intervision-sub000/chord"
	"github.com/Reu7en/Intervision-sub000/model"
	"github.com/Reu7en/Intervision-sub000/server"
)

var beatsText bool

func init() {
	beatsCmd.Flags().BoolVar(&beatsText, "text", false, "print one line per beat instead of JSON")
	rootCmd.AddCommand(beatsCmd)
}

var beatsCmd = &cobra.Command{
	Use:   "beats [bar.json]",
	Short: "Splits a bar into beats and beam groups",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bar, err := readJSON[model.Bar](argOrStdin(args))
		if err != nil {
			return err
		}
		beats, err := beat.Split(*bar)
		if err != nil {
			return err
		}
		beams, err := beam.Bar(*bar)
		if err != nil {
			return err
		}
		if !beatsText {
			return writeJSON(cmd, server.BeatsResponse{Beats: beats, Beams: beams})
		}
		for i, groups := range beams {
			var parts []string
			for _, g := range groups {
				var names []string
				for _, c := range g {
					names = append(names, chord.Describe(c))
				}
				parts = append(parts, "["+strings.Join(names, " ")+"]")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", i+1, strings.Join(parts, " "))
		}
		return nil
	},
}
