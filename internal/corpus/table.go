package corpus

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	columnTitle      = "title"
	columnSkills     = "skills"
	columnDomains    = "domains"
	columnSoftSkills = "soft_skills"
)

// skillColumns are the comma-separated skill-bearing columns.
var skillColumns = []string{columnSkills, columnDomains, columnSoftSkills}

// textColumns are joined, in this order, into a job's composite text.
var textColumns = []string{columnTitle, columnSkills, columnDomains, columnSoftSkills}

// ErrEmptyCorpus is returned by Build when the table has no usable rows.
var ErrEmptyCorpus = errors.New("job corpus is empty")

// SchemaError is returned by Build when the table has none of the title or
// skill-bearing columns.
type SchemaError struct {
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("job table has none of the columns %s (got %s)",
		strings.Join(textColumns, ", "), strings.Join(e.Columns, ", "))
}

// Table is a job table already loaded into memory.
type Table struct {
	// Columns lists the table header. When empty, the union of row keys is used.
	Columns []string
	Rows    []map[string]any
}

func (t Table) columnSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, c := range t.Columns {
		set[fold(c)] = struct{}{}
	}
	if len(set) > 0 {
		return set
	}
	for _, row := range t.Rows {
		for c := range row {
			set[fold(c)] = struct{}{}
		}
	}
	return set
}

// decodeRow turns a raw row into a Job. Keys are matched case-insensitively.
func decodeRow(row map[string]any) (*Job, error) {
	normalized := make(map[string]any, len(row))
	for k, v := range row {
		normalized[fold(k)] = v
	}

	job := &Job{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           job,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return nil, err
	}

	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	return job, nil
}

func (j *Job) field(column string) string {
	switch column {
	case columnTitle:
		return j.Title
	case columnSkills:
		return j.Skills
	case columnDomains:
		return j.Domains
	case columnSoftSkills:
		return j.SoftSkills
	default:
		return ""
	}
}

func (j *Job) usable() bool {
	for _, c := range textColumns {
		if strings.TrimSpace(j.field(c)) != "" {
			return true
		}
	}
	return false
}

// composeText joins the present text columns with single spaces.
func composeText(j *Job, present []string) string {
	parts := make([]string, 0, len(present))
	for _, c := range present {
		parts = append(parts, j.field(c))
	}
	return strings.Join(parts, " ")
}

func presentColumns(set map[string]struct{}, wanted []string) []string {
	present := make([]string, 0, len(wanted))
	for _, c := range wanted {
		if _, ok := set[c]; ok {
			present = append(present, c)
		}
	}
	return present
}

func sortedColumns(set map[string]struct{}) []string {
	return slices.Sorted(maps.Keys(set))
}
