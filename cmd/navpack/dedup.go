package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/mycophonic/primordium/fault"

	"github.com/gnsskit/navpack/navbits"
)

func dedupCommand() *cli.Command {
	return &cli.Command{
		Name:      "dedup",
		Usage:     "Drop records whose bit pattern duplicates an earlier record",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-malformed",
				Usage: "log and skip unparseable records instead of failing",
			},
		},
		Action: runDedup,
	}
}

func runDedup(_ context.Context, cmd *cli.Command) error {
	path, err := singleArg(cmd)
	if err != nil {
		return err
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	skipMalformed := cmd.Bool("skip-malformed")

	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified record files
	if err != nil {
		return fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	var kept []*navbits.Buffer

	seen, dropped := 0, 0

	err = forEachLine(file, func(line int, text string) error {
		buf := navbits.New()
		if importErr := buf.ImportText(text); importErr != nil {
			if skipMalformed {
				log.Warn().Int("line", line).Err(importErr).Msg("skipping malformed record")

				return nil
			}

			return fmt.Errorf("%s:%d: %w", path, line, importErr)
		}

		seen++

		var inserted bool

		kept, inserted = insertUnique(kept, buf)
		if !inserted {
			dropped++

			return nil
		}

		if exportErr := buf.ExportHexWords(os.Stdout, 5, "", 32); exportErr != nil {
			return exportErr
		}

		fmt.Println()

		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("seen", seen).Int("unique", len(kept)).Int("dropped", dropped).Msg("dedup complete")

	return nil
}

// insertUnique keeps buffers ordered by their bit-pattern ordering so each
// lookup is a binary search. A buffer neither less than nor greater than an
// existing entry has the same pattern and is not inserted.
func insertUnique(kept []*navbits.Buffer, buf *navbits.Buffer) ([]*navbits.Buffer, bool) {
	idx := sort.Search(len(kept), func(i int) bool {
		return !kept[i].Less(buf)
	})

	if idx < len(kept) && !buf.Less(kept[idx]) {
		return kept, false
	}

	kept = append(kept, nil)
	copy(kept[idx+1:], kept[idx:])
	kept[idx] = buf

	return kept, true
}
