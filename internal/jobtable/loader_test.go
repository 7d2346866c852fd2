package jobtable

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spigell/resume-matcher/internal/corpus"
)

const sampleCSV = "\uFEFFtitle,company,skills,domains\n" +
	"Data Analyst,Acme,\"Python, SQL\",\n" +
	"BI Developer,Globex,Power BI,Finance\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func gzipped(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(data)); err != nil {
		t.Fatalf("compressing: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{name: "plain csv", file: "jobs.csv", data: []byte(sampleCSV)},
		{name: "gzip by extension", file: "jobs.csv.gz", data: gzipped(t, sampleCSV)},
		{name: "gzip by magic bytes", file: "jobs.csv", data: gzipped(t, sampleCSV)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(writeFile(t, tt.file, tt.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !slices.Equal(table.Columns, []string{"title", "company", "skills", "domains"}) {
				t.Fatalf("unexpected columns: %v", table.Columns)
			}
			if len(table.Rows) != 2 {
				t.Fatalf("expected 2 rows, got %d", len(table.Rows))
			}
			if table.Rows[0]["skills"] != "Python, SQL" {
				t.Fatalf("unexpected skills cell: %v", table.Rows[0]["skills"])
			}
			if _, ok := table.Rows[0]["domains"]; ok {
				t.Fatalf("expected empty cell to be missing")
			}
		})
	}
}

func TestLoadBuildsIndex(t *testing.T) {
	table, err := Load(writeFile(t, "jobs.csv", []byte(sampleCSV)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx, err := corpus.Build(table)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if got := idx.JobByPosition(0).Text; got != "Data Analyst Python, SQL " {
		t.Fatalf("unexpected job text: %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}

	if _, err := Load(writeFile(t, "empty.csv", nil)); !errors.Is(err, ErrNoHeader) {
		t.Fatalf("expected ErrNoHeader, got %v", err)
	}

	if _, err := Load(writeFile(t, "broken.csv.gz", []byte("not gzip"))); err == nil {
		t.Fatalf("expected error for invalid gzip stream")
	}

	if _, err := Load(writeFile(t, "bad.csv", []byte("title\n\"unterminated\n"))); err == nil {
		t.Fatalf("expected csv parse error")
	}
}
