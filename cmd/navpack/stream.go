package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	serial "github.com/tarm/goserial"
	"github.com/urfave/cli/v3"

	"github.com/mycophonic/primordium/fault"

	"github.com/gnsskit/navpack/navbits"
)

func streamCommand() *cli.Command {
	return &cli.Command{
		Name:  "stream",
		Usage: "Dump interchange records arriving line-by-line on a serial port",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "port",
				Aliases:  []string{"p"},
				Usage:    "serial device, e.g. /dev/ttyUSB0",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "baud",
				Aliases: []string{"b"},
				Value:   115200,
				Usage:   "baud rate",
			},
		},
		Action: runStream,
	}
}

func runStream(_ context.Context, cmd *cli.Command) error {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	port := cmd.String("port")

	conn, err := serial.OpenPort(&serial.Config{Name: port, Baud: int(cmd.Int("baud"))})
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", fault.ErrReadFailure, port, err)
	}
	defer conn.Close()

	log.Info().Str("port", port).Msg("reading records")

	return forEachLine(conn, func(line int, text string) error {
		buf := navbits.New()
		if importErr := buf.ImportText(text); importErr != nil {
			log.Warn().Int("line", line).Err(importErr).Msg("skipping malformed record")

			return nil
		}

		buf.Dump(os.Stdout)

		return nil
	})
}
