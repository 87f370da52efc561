package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Reu7en/Intervision-sub000/config"
	"github.com/Reu7en/Intervision-sub000/constants"
	"github.com/Reu7en/Intervision-sub000/logger"
)

var (
	cfg        *config.Config
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "intervision",
	Short: "Notation and interval lines for piano-roll editing",
	Long: `intervision converts bars of notation to piano-roll segments and back,
lays bars out in beats and beams, and draws harmonic and melodic interval
lines between segments.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			logrus.Debug("no .env file found, using environment variables")
		}
		path := configPath
		if path == "" {
			path = constants.GetConfigPath()
		}
		var err error
		cfg, err = config.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		return logger.Setup(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $INTERVISION_CONFIG or ./intervision.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// Run executes the command line args writing results to out.
func Run(args []string, out io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	defer rootCmd.SetOut(nil)
	return rootCmd.Execute()
}
