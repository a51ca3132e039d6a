package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mycophonic/primordium/fault"

	"github.com/gnsskit/navpack/navbits"
)

var errInvalidArgCount = errors.New("expected exactly one argument: file path")

// record is one interchange line plus where it came from, for reporting.
type record struct {
	line int
	buf  *navbits.Buffer
}

// forEachLine feeds every non-blank, non-comment line of r to fn with its
// 1-based line number.
func forEachLine(r io.Reader, fn func(line int, text string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if err := fn(lineNo, text); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	return nil
}

// readRecords parses every record in the file at path. A malformed line
// fails the whole read; callers wanting skip semantics use forEachLine.
func readRecords(path string) ([]record, error) {
	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified record files
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	var records []record

	err = forEachLine(file, func(line int, text string) error {
		buf := navbits.New()
		if err := buf.ImportText(text); err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}

		records = append(records, record{line: line, buf: buf})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// singleArg extracts the one file-path argument most commands take.
func singleArg(cmd *cli.Command) (string, error) {
	if cmd.NArg() != 1 {
		return "", fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	return cmd.Args().First(), nil
}
