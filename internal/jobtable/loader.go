// Package jobtable reads job tables from CSV files into a corpus.Table.
package jobtable

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spigell/resume-matcher/internal/corpus"
)

var gzipMagic = []byte{0x1f, 0x8b}

// ErrNoHeader is returned when the file has no header row.
var ErrNoHeader = errors.New("job table has no header row")

// Load reads a CSV job table, optionally gzip-compressed. Compression is
// detected by the .gz extension or by the gzip magic bytes.
func Load(path string) (corpus.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return corpus.Table{}, fmt.Errorf("opening job table %q: %w", path, err)
	}
	defer file.Close()

	table, err := Read(file, strings.HasSuffix(strings.ToLower(path), ".gz"))
	if err != nil {
		return corpus.Table{}, fmt.Errorf("reading job table %q: %w", path, err)
	}
	return table, nil
}

// Read parses a CSV job table from r. Empty cells are left out of the row so
// they decode as missing values.
func Read(r io.Reader, compressed bool) (corpus.Table, error) {
	br := bufio.NewReader(r)

	if !compressed {
		magic, _ := br.Peek(len(gzipMagic))
		compressed = bytes.Equal(magic, gzipMagic)
	}

	var src io.Reader = br
	if compressed {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return corpus.Table{}, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return corpus.Table{}, ErrNoHeader
	}
	if err != nil {
		return corpus.Table{}, fmt.Errorf("reading header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
	}

	table := corpus.Table{Columns: columns}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return corpus.Table{}, fmt.Errorf("reading row %d: %w", len(table.Rows)+1, err)
		}

		row := make(map[string]any, len(columns))
		for i, value := range record {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			if strings.TrimSpace(value) == "" {
				continue
			}
			row[columns[i]] = value
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
