package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Reu7en/Intervision-sub000/server"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		return server.New(cfg).ListenAndServe()
	},
}
