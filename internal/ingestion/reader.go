package ingestion

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReadSalesLines reads a pipe-delimited sales file, skipping the header row
// and blank lines. Production exports are not guaranteed to be UTF-8, so
// decoding tries UTF-8 first and then the legacy Western code pages.
// It returns the data lines and the name of the encoding that decoded them.
func ReadSalesLines(path string) ([]string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	text, encName, err := decodeWithFallback(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}

	return splitDataLines(text), encName, nil
}

func decodeWithFallback(data []byte) (string, string, error) {
	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	fallbacks := []struct {
		name string
		cm   *charmap.Charmap
	}{
		{"latin-1", charmap.ISO8859_1},
		{"cp1252", charmap.Windows1252},
	}

	for _, fb := range fallbacks {
		out, err := fb.cm.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		return string(out), fb.name, nil
	}

	return "", "", fmt.Errorf("no supported encoding could decode the input")
}

// splitDataLines drops the header line and any line whose fields are all
// empty after trimming.
func splitDataLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}

	var out []string
	for _, line := range lines {
		if hasContent(line) {
			out = append(out, line)
		}
	}
	return out
}

func hasContent(line string) bool {
	for _, field := range strings.Split(line, "|") {
		if strings.TrimSpace(field) != "" {
			return true
		}
	}
	return false
}
