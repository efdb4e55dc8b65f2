package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"

	"pixlife/src/universe"
)

// LoadOptions loads the simulation options from JSON file, missing fields keep their defaults
func LoadOptions(filename string) (universe.Options, error) {
	o := universe.DefaultOptions()

	data, err := os.ReadFile(filename)
	if err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &o); err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] failed to unmarshal data from file: %+v", filename)
	}

	if err = o.Validate(); err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] invalid options in file: %+v", filename)
	}

	return o, nil
}

//configFileArg finds the config file flag before the flags are parsed
func configFileArg(args []string) string {
	for i, a := range args {
		for _, f := range []string{"-c", "--config"} {
			switch {
			case a == f && i+1 < len(args):
				return args[i+1]
			case strings.HasPrefix(a, f+"="):
				return strings.TrimPrefix(a, f+"=")
			}
		}
	}
	return ""
}
