// Package resume loads résumé text from files or standard input.
package resume

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// StdinPath makes Load read from standard input.
const StdinPath = "-"

var (
	// ErrUnsupportedFormat is returned for files that are not plain text.
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	// ErrInvalidText is returned when the content is not valid UTF-8.
	ErrInvalidText = errors.New("resume is not valid UTF-8 text")
)

var textExtensions = map[string]struct{}{
	"":      {},
	".txt":  {},
	".md":   {},
	".text": {},
}

// Load returns the trimmed résumé text stored at path. Only plain text files
// are accepted; StdinPath reads standard input.
func Load(path string) (string, error) {
	return load(path, os.Stdin)
}

func load(path string, stdin io.Reader) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("resume path is not configured")
	}

	if path == StdinPath {
		text, err := Read(stdin)
		if err != nil {
			return "", fmt.Errorf("reading resume from stdin: %w", err)
		}
		return text, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := textExtensions[ext]; !ok {
		return "", fmt.Errorf("%w %q: convert %s to plain text first", ErrUnsupportedFormat, ext, filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading resume from file %q: %w", path, err)
	}
	defer file.Close()

	text, err := Read(file)
	if err != nil {
		return "", fmt.Errorf("reading resume from file %q: %w", path, err)
	}
	return text, nil
}

// Read returns the trimmed text of r.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidText
	}
	return strings.TrimSpace(string(data)), nil
}
