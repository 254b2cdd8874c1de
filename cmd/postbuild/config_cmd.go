package main

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-postbuild/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML: defaults, then
// the config file, then flag overrides.
func runConfig(args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags("config", args, env.Stderr, printConfigUsage)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(positional, " "))
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}
