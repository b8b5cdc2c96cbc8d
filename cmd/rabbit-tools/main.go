package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	cmd := newRootCommand()
	cmd.SetArgs(invocationArgs(filepath.Base(os.Args[0]), os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// invocationAliases maps the short binary names (installed as symlinks) to
// the subcommand they run.
var invocationAliases = map[string][]string{
	"rabdel":              {"delete"},
	"rabpurge":            {"purge"},
	"rabbit_tools_config": {"config", "init"},
}

func invocationArgs(program string, args []string) []string {
	prefix, ok := invocationAliases[program]
	if !ok {
		return args
	}
	return append(append([]string(nil), prefix...), args...)
}
