package corpus

import (
	"fmt"
	"strings"
)

const (
	JobTitleField    = "Title"
	JobCompanyField  = "Company"
	JobLocationField = "Location"
	JobTypeField     = "Type"
	JobLevelField    = "Level"
)

// Job is a single posting of the corpus. It is never mutated after Build.
type Job struct {
	Title      string `mapstructure:"title" json:"title"`
	Company    string `mapstructure:"company" json:"company"`
	Location   string `mapstructure:"location" json:"location"`
	Type       string `mapstructure:"type" json:"type"`
	Level      string `mapstructure:"level" json:"level"`
	PostedOn   string `mapstructure:"posted_on" json:"posted_on"`
	Skills     string `mapstructure:"skills" json:"skills,omitempty"`
	Domains    string `mapstructure:"domains" json:"domains,omitempty"`
	SoftSkills string `mapstructure:"soft_skills" json:"soft_skills,omitempty"`

	// Text is the composite text used for semantic comparison.
	Text string `mapstructure:"-" json:"-"`
	// Position is the row index in corpus order.
	Position int `mapstructure:"-" json:"-"`
}

// Key identifies a job for deduplication.
func (j *Job) Key() string {
	return j.Title + "\x00" + j.Company
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case JobTitleField:
		return j.Title
	case JobCompanyField:
		return j.Company
	case JobLocationField:
		return j.Location
	case JobTypeField:
		return j.Type
	case JobLevelField:
		return j.Level
	default:
		return ""
	}
}

// Jobs is an ordered list of jobs. Helpers that remove items keep the order.
type Jobs struct {
	Items []*Job
}

func (v *Jobs) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Items)
}

// Titles returns "title @ company" labels in list order.
func (v *Jobs) Titles() []string {
	titles := make([]string, 0, v.Len())
	for _, job := range v.Items {
		titles = append(titles, label(job))
	}
	return titles
}

// Exclude removes jobs whose field equals any of targets (case-insensitive)
// and returns labels of the removed jobs.
func (v *Jobs) Exclude(name string, targets []string) []string {
	set := foldSet(targets)
	return v.retain(func(job *Job) bool {
		_, hit := set[fold(job.GetStringField(name))]
		return !hit
	})
}

// Keep removes jobs whose field does not equal any of targets
// (case-insensitive) and returns labels of the removed jobs. An empty target
// list keeps everything.
func (v *Jobs) Keep(name string, targets []string) []string {
	set := foldSet(targets)
	if len(set) == 0 {
		return nil
	}
	return v.retain(func(job *Job) bool {
		_, hit := set[fold(job.GetStringField(name))]
		return hit
	})
}

// ReportByCompany groups jobs by company for display.
func (v *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range v.Items {
		key := job.Company
		if key == "" {
			key = "(unknown company)"
		}
		report[key] = append(report[key], map[string]string{
			"title":     job.Title,
			"location":  job.Location,
			"type":      job.Type,
			"level":     job.Level,
			"posted_on": job.PostedOn,
		})
	}
	return report
}

func (v *Jobs) retain(keep func(*Job) bool) []string {
	var removed []string
	kept := make([]*Job, 0, len(v.Items))
	for _, job := range v.Items {
		if keep(job) {
			kept = append(kept, job)
			continue
		}
		removed = append(removed, label(job))
	}
	v.Items = kept
	return removed
}

func label(job *Job) string {
	if job.Company == "" {
		return job.Title
	}
	return fmt.Sprintf("%s @ %s", job.Title, job.Company)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func foldSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = fold(v)
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}
