package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Re-emit records with a different hex-word layout",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "words-per-line",
				Aliases: []string{"w"},
				Value:   5,
				Usage:   "hex words per output line",
			},
			&cli.StringFlag{
				Name:    "delimiter",
				Aliases: []string{"d"},
				Value:   "",
				Usage:   "text written before each hex word",
			},
			&cli.IntFlag{
				Name:    "bits-per-word",
				Aliases: []string{"b"},
				Value:   32,
				Usage:   "bits flushed into each hex word (1-32)",
			},
		},
		Action: runConvert,
	}
}

func runConvert(_ context.Context, cmd *cli.Command) error {
	path, err := singleArg(cmd)
	if err != nil {
		return err
	}

	records, err := readRecords(path)
	if err != nil {
		return err
	}

	for _, rec := range records {
		err := rec.buf.ExportHexWords(
			os.Stdout,
			int(cmd.Int("words-per-line")),
			cmd.String("delimiter"),
			int(cmd.Int("bits-per-word")),
		)
		if err != nil {
			return fmt.Errorf("record at line %d: %w", rec.line, err)
		}

		fmt.Println()
	}

	return nil
}
