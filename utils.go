package main

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

func fileExists(name string) (bool, error) {
	_, err := os.Stat(name)
	if err == nil {
		// file apparently exists
		return true, nil
	} else {
		// got error, let's see
		if errors.Is(err, os.ErrNotExist) {
			// file not exists, so no actual error here
			return false, nil
		} else {
			// other error
			return false, err
		}
	}
}

// problemsFileFromArgs returns the problems file to operate on: the first
// positional argument when given, the configured path otherwise.
func problemsFileFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return viper.GetString("file")
}
