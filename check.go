package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	problems "whisk/problemfix/pkg"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Report problems missing problemType without modifying anything",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		check(problemsFileFromArgs(args))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func check(file string) {
	if ok, err := fileExists(file); err != nil || !ok {
		log.Fatal().Err(err).Msgf("problems file %s not found", file)
	}

	collection, err := problems.Read(file)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read the problems file")
	}

	for i, record := range collection.Records() {
		if !record.Has(problems.ProblemTypeKey) {
			log.Debug().Msgf("problem %d has no %s", i, problems.ProblemTypeKey)
		}
	}

	fmt.Printf("%d/%d problems are missing %s.\n",
		collection.MissingProblemType(), collection.Len(), problems.ProblemTypeKey)
}
