package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	problems "whisk/problemfix/pkg"
)

const DEFAULT_PROBLEMS_FILE = "problems.json"

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "problemfix",
	Short: "Maintain a problems.json collection",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case verbosity >= 2:
			zerolog.SetGlobalLevel(zerolog.TraceLevel)
		case verbosity == 1:
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		default:
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

func main() {
	// logs go to stderr so reports on stdout stay machine-readable
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase logging verbosity")
	rootCmd.PersistentFlags().StringP("file", "f", DEFAULT_PROBLEMS_FILE, "path to the problems file")
	_ = viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file"))
	viper.SetDefault("default_type", problems.DefaultProblemType)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetConfigName(".problemfix")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("problemfix")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil {
		log.Debug().Msgf("Using config file %s", viper.ConfigFileUsed())
	}
}
