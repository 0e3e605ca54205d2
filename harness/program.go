// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package harness

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// ParseHex reads a program as one hex word per line. Everything after a
// '#' is a comment; blank lines are skipped; a '0x' prefix and '_'
// separators are allowed.
func ParseHex(r io.Reader) (program []uint32, err error) {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if n := strings.IndexByte(text, '#'); n >= 0 {
			text = text[:n]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		digits := strings.ReplaceAll(text, "_", "")
		digits = strings.TrimPrefix(strings.ToLower(digits), "0x")
		var word uint64
		word, err = strconv.ParseUint(digits, 16, 32)
		if err != nil {
			err = &ErrProgramLine{Line: line, Text: text, Err: err}
			return
		}
		program = append(program, uint32(word))
	}

	err = errors.Trace(scanner.Err())
	return
}

// ParseBinary reads a program as little-endian words.
func ParseBinary(r io.Reader) (program []uint32, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		err = errors.Trace(err)
		return
	}

	if len(data)%4 != 0 {
		err = ErrProgramLength(len(data))
		return
	}

	program = make([]uint32, len(data)/4)
	err = binary.Read(bytes.NewReader(data), binary.LittleEndian, program)
	return
}

// ReadProgram reads a program file. Files ending in '.bin' are flat
// little-endian binaries, anything else is hex text.
func ReadProgram(path string) (program []uint32, err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = errors.Trace(err)
		return
	}
	defer inf.Close()

	if strings.EqualFold(filepath.Ext(path), ".bin") {
		program, err = ParseBinary(inf)
	} else {
		program, err = ParseHex(inf)
	}
	if err != nil {
		err = errors.Annotatef(err, "%s", path)
	}

	return
}
