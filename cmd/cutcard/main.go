package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version   kong.VersionFlag `short:"v" help:"Show version"`
	EnvFile   string           `kong:"name='env-file',default='.env',help='Environment file loaded before flags are resolved'"`
	Enumerate EnumerateCmd     `cmd:"" default:"withargs" help:"Enumerate round outcomes for every dealer up card"`
	Prompt    PromptCmd        `cmd:"" help:"Ask for the table rules interactively, then enumerate"`
	Rules     RulesCmd         `cmd:"" help:"Print the resolved rule set"`
}

func main() {
	// Environment files feed the env tags, so they load before parsing.
	if err := loadDotEnv(envFileFromArgs(os.Args[1:])); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cutcard"),
		kong.Description("Exhaustive enumeration of blackjack round outcomes against a dealer up card"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// envFileFromArgs finds --env-file ahead of kong so the file is loaded in time.
func envFileFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
		if path, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return path
		}
	}
	return ".env"
}
