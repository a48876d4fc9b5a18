package main

import (
	"fmt"
	"mindful/internal/di"
	"mindful/internal/structures"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var flags structures.CliFlags

	flagSet := pflag.NewFlagSet("mindful", pflag.ContinueOnError)
	flagSet.StringVarP(&flags.ConfigPath, "config", "c", "configs/config.yml", "path to the YAML config file")
	flagSet.StringVar(&flags.EnvFile, "env-file", "", "optional .env file loaded before the config")
	flagSet.BoolVarP(&flags.DebugMode, "debug", "d", false, "log to the console as well as the log file")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	_, cleanup, err := di.InitApp(&flags)
	if err != nil {
		return err
	}
	cleanup()
	return nil
}
