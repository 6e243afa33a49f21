package model

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedInput is returned when a grid file does not follow the text format
var ErrMalformedInput = errors.New("malformed grid input")

const (
	aliveMarker = '='
	deadMarker  = '-'

	// maxLineBytes caps a single input line
	maxLineBytes = 16 << 20
)

// LoadBoardFile opens path and loads a board from it
func LoadBoardFile(path string, strict bool) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadBoardFile] failed to open file: %+v", path)
	}
	defer f.Close()

	b, err := LoadBoard(f, strict)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadBoardFile] %+v", path)
	}
	return b, nil
}

/*
LoadBoard reads a board in the text grid format:

	<width> <height>
	followed by height rows of exactly width characters

'=' marks a live cell and '-' a dead one. Other characters become dead cells,
unless strict is set, in which case they are rejected. Trailing blank lines are
ignored. Every loaded cell is unresolved.

Rows are read and checked before the board is allocated, so memory use is
bounded by the input rather than by the header.
*/
func LoadBoard(r io.Reader, strict bool) (*Board, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineBytes)

	if !scanner.Scan() {
		if err := scanErr(scanner, "[LoadBoard] failed to read header"); err != nil {
			return nil, err
		}
		return nil, errors.Wrap(ErrMalformedInput, "[LoadBoard] missing header")
	}
	width, height, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, err
	}
	if err := checkSize(width, height); err != nil {
		return nil, errors.Wrapf(ErrMalformedInput, "[LoadBoard] line 1: %v", err)
	}

	var (
		statuses []Status
		line     = 1
	)
	for y := range height {
		if !scanner.Scan() {
			if err := scanErr(scanner, "[LoadBoard] failed to read row %d", y); err != nil {
				return nil, err
			}
			return nil, errors.Wrapf(ErrMalformedInput, "[LoadBoard] expected %d rows, got %d", height, y)
		}
		line++

		row := []rune(strings.TrimSuffix(scanner.Text(), "\r"))
		if len(row) != width {
			return nil, errors.Wrapf(ErrMalformedInput, "[LoadBoard] line %d: expected %d characters, got %d", line, width, len(row))
		}

		for x, ch := range row {
			status, err := parseMarker(ch, strict)
			if err != nil {
				return nil, errors.Wrapf(err, "[LoadBoard] line %d column %d", line, x+1)
			}
			statuses = append(statuses, status)
		}
	}

	for scanner.Scan() {
		line++
		if strings.TrimSpace(scanner.Text()) != "" {
			return nil, errors.Wrapf(ErrMalformedInput, "[LoadBoard] line %d: unexpected row beyond height %d", line, height)
		}
	}
	if err := scanErr(scanner, "[LoadBoard] failed to read trailing input"); err != nil {
		return nil, err
	}

	b, err := NewBoard(width, height)
	if err != nil {
		return nil, errors.Wrap(err, "[LoadBoard]")
	}
	for i, status := range statuses {
		b.cells[i] = NewCell(status)
	}
	return b, nil
}

// scanErr wraps a scanner failure; over-long lines count as malformed input
func scanErr(scanner *bufio.Scanner, format string, args ...any) error {
	err := scanner.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, bufio.ErrTooLong) {
		return errors.Wrapf(ErrMalformedInput, format+": line longer than %d bytes", append(args, maxLineBytes)...)
	}
	return errors.Wrapf(err, format, args...)
}

func parseHeader(header string) (int, int, error) {
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return 0, 0, errors.Wrapf(ErrMalformedInput, "[LoadBoard] line 1: expected \"<width> <height>\", got %q", header)
	}

	width, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errors.Wrapf(ErrMalformedInput, "[LoadBoard] line 1: bad width %q", fields[0])
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errors.Wrapf(ErrMalformedInput, "[LoadBoard] line 1: bad height %q", fields[1])
	}
	return width, height, nil
}

func parseMarker(ch rune, strict bool) (Status, error) {
	switch ch {
	case aliveMarker:
		return Alive, nil
	case deadMarker:
		return Dead, nil
	}
	if strict {
		return Dead, errors.Wrapf(ErrMalformedInput, "unknown cell marker %q", ch)
	}
	return Dead, nil
}
