package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	problems "whisk/problemfix/pkg"
)

const SEPARATOR = "\t"

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List problems, optionally filtered by a jq expression",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		whereExpr, _ := cmd.Flags().GetString("where")
		printExpr, _ := cmd.Flags().GetString("print")
		printHeader, _ := cmd.Flags().GetBool("header")
		list(problemsFileFromArgs(args), whereExpr, printExpr, printHeader)
	},
}

func init() {
	listCmd.Flags().StringP("where", "w", "", "jq filter expression, must return a boolean")
	listCmd.Flags().StringP("print", "p", ".id, .title, .problemType", "jq expression for the printed columns")
	listCmd.Flags().Bool("header", false, "print a header row")
	rootCmd.AddCommand(listCmd)
}

func list(file string, whereExpr string, printExpr string, printHeader bool) {
	if whereExpr == "" {
		whereExpr = "true"
	}

	whereQuery, err := gojq.Parse(whereExpr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse where query")
		return
	}

	printQuery, err := gojq.Parse(printExpr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse print query")
		return
	}

	collection, err := problems.Read(file)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read the problems file")
		return
	}

	if printHeader {
		var s strings.Builder
		queryToHeaderRow(printQuery, &s)
		fmt.Println(s.String())
	}

outerLoop:
	for idx, record := range collection.Records() {
		rMap, err := record.Map()
		if err != nil {
			log.Err(err).Msgf("failed to convert problem %d to map (this is a bug)", idx)
			break outerLoop
		}

		match := false
		iterWhere := whereQuery.Run(rMap)
		i := 0
		for {
			i += 1
			v, ok := iterWhere.Next()
			if !ok {
				break
			}
			if err, ok := v.(error); ok {
				log.Err(err).Msg("failed to match")
				continue outerLoop
			}
			if _, ok := v.(bool); !ok {
				log.Error().Msgf("where expression must return boolean, got %T", v)
				continue outerLoop
			} else {
				log.Trace().Msgf("where clause %d = %v", i, v)
				match = v.(bool)
			}
		}

		if !match {
			continue
		}

		iterPrint := printQuery.Run(rMap)
		for {
			v, ok := iterPrint.Next()
			if !ok {
				break
			}
			if err, ok := v.(error); ok {
				if err, ok := err.(*gojq.HaltError); ok && err.Value() == nil {
					break outerLoop
				}
				log.Err(err).Msg("failed to print")
				continue outerLoop
			}
			if jsonVal, ok := v.(map[string]any); ok {
				// seems like a json output, print it as a json on a single line
				jsonBytes, err := json.Marshal(jsonVal)
				if err != nil {
					log.Err(err).Msg("failed to marshal json")
					continue outerLoop
				}
				fmt.Print(string(jsonBytes))
			} else {
				// print the value as is
				fmt.Printf("%v"+SEPARATOR, v)
			}
		}
		fmt.Println()
	}
}

// convert the "print" query into a format suitable for a header row, allowing for nicely named columns
// e.g., "a,b,c" -> "a b c"
func queryToHeaderRow(e *gojq.Query, s *strings.Builder) {
	if e.Term != nil {
		s.WriteString(e.Term.String())
	} else if e.Right != nil {
		queryToHeaderRow(e.Left, s)
		if e.Op == gojq.OpComma {
			s.WriteString(SEPARATOR)
		} else {
			s.WriteByte(' ')
			s.WriteString(e.Op.String())
			s.WriteByte(' ')
		}
		queryToHeaderRow(e.Right, s)
	}
}
