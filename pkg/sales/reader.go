package sales

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fallbackEncodings are tried in order when the input is not valid UTF-8.
var fallbackEncodings = []*charmap.Charmap{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

// ReadSalesFile reads a pipe-delimited sales file and returns its data
// lines in order. The header line is skipped and blank lines are dropped.
// The file encoding is auto-detected: UTF-8 first, then Latin-1, then
// CP1252.
func ReadSalesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales file: %w", err)
	}

	text, err := decodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sales file: %w", err)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(text))
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			// Header row is layout only, never data.
			first = false
			continue
		}
		if len(bytes.TrimSpace([]byte(line))) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sales file: %w", err)
	}

	return lines, nil
}

// decodeBytes returns the file content as UTF-8 text, transcoding from a
// legacy encoding when needed.
func decodeBytes(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}

	var lastErr error
	for _, enc := range fallbackEncodings {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err == nil {
			return decoded, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("no supported encoding matched: %w", lastErr)
}
