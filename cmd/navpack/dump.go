package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "Print a human-readable rendering of every record in a file",
		ArgsUsage: "<file>",
		Action:    runDump,
	}
}

func runDump(_ context.Context, cmd *cli.Command) error {
	path, err := singleArg(cmd)
	if err != nil {
		return err
	}

	records, err := readRecords(path)
	if err != nil {
		return err
	}

	for _, rec := range records {
		rec.buf.Dump(os.Stdout)
	}

	return nil
}
