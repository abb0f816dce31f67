package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	problems "whisk/problemfix/pkg"
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print one line per problem with its common fields",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		show(problemsFileFromArgs(args))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func show(file string) {
	collection, err := problems.Read(file)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read the problems file")
		return
	}

	for _, record := range collection.Records() {
		fmt.Printf("%s\t%s\t%s\t%s\n",
			record.Get("id").String(),
			record.Get("title").String(),
			record.Get("difficulty").String(),
			record.Get(problems.ProblemTypeKey).String(),
		)
	}
}
