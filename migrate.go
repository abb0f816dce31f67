package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	problems "whisk/problemfix/pkg"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [file]",
	Short: "Backfill problemType on every problem missing it",
	Long: "Reads the problems file, sets problemType to the configured default " +
		"on every problem that has none, and rewrites the file in place.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file := problemsFileFromArgs(args)
		count, err := migrate(file, viper.GetString("default_type"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to migrate the problems file")
		}
		fmt.Printf("Updated %d problems.\n", count)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// migrate runs the whole load/transform/persist pass over a single file and
// returns how many problems it holds. The file is overwritten in place, no
// backup is kept. On any error before the write the file is left untouched.
func migrate(file string, problemType string) (int, error) {
	log.Info().Msgf("Migrating problems in %s ...", file)

	collection, err := problems.Read(file)
	if err != nil {
		return 0, err
	}

	defaulted, err := collection.EnsureProblemType(problemType)
	if err != nil {
		return 0, err
	}
	log.Debug().Msgf("Defaulted %d/%d", defaulted, collection.Len())

	err = collection.Save(file)
	if err != nil {
		return 0, err
	}

	return collection.Len(), nil
}
