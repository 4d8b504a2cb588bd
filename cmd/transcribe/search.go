package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func (a *app) searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Searches examples of a word",
		ArgsUsage: "WORD",
		Action:    a.printWord,
	}
}

// anki shares the search output.
func (a *app) ankiCommand() *cli.Command {
	return &cli.Command{
		Name:      "anki",
		Usage:     "Creates an Anki card for a word",
		ArgsUsage: "WORD",
		Action:    a.printWord,
	}
}

func (a *app) printWord(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return cli.Exit(fmt.Sprintf("Error: %s expects exactly one WORD", cmd.Name), exitError)
	}
	_, err := fmt.Fprintf(a.stdout, "Search for %s\n", cmd.Args().First())
	return err
}
