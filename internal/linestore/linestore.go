package linestore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// ErrDecode reports file content that is not valid UTF-8.
var ErrDecode = errors.New("invalid UTF-8 content")

const defaultFileMode fs.FileMode = 0644

// ReadLines reads a file into its ordered raw lines. Line terminators
// ("\n" or "\r\n") are not part of the returned strings and a leading
// byte order mark is dropped.
//
// Content that cannot be decoded yields an error wrapping ErrDecode; any
// other error comes from the filesystem.
func ReadLines(path string) ([]string, error) {
	_, lines, err := ReadFile(path)
	return lines, err
}

// ReadFile is ReadLines that also returns the bytes as stored on disk.
func ReadFile(path string) ([]byte, []string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !utf8.Valid(raw) {
		return raw, nil, fmt.Errorf("decode %s: %w", path, ErrDecode)
	}

	data, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return raw, nil, fmt.Errorf("decode %s: %w", path, ErrDecode)
	}

	return raw, SplitLines(data), nil
}

// SplitLines splits raw content into lines without terminators.
func SplitLines(data []byte) []string {
	lines := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	bufSize := len(data) + 1
	if bufSize < bufio.MaxScanTokenSize {
		bufSize = bufio.MaxScanTokenSize
	}
	scanner.Buffer(make([]byte, 0, bufSize), bufSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// Render joins lines into file content, terminating every line with "\n".
func Render(lines []string) []byte {
	if len(lines) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// WriteLines replaces the whole content of path with lines. An existing
// file keeps its permission bits.
func WriteLines(path string, lines []string) error {
	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, Render(lines), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
