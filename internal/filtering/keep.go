package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/corpus"
)

// keepFilter keeps only jobs whose field matches one of the configured values.
type keepFilter struct {
	name     string
	field    string
	selector func(*Config) []string

	disabled bool
	reason   string
	values   []string
}

// NewLocations creates a filter that keeps jobs in the configured locations.
func NewLocations() Filter {
	return &keepFilter{
		name:     "locations",
		field:    corpus.JobLocationField,
		selector: func(cfg *Config) []string { return cfg.Locations },
	}
}

// NewTypes creates a filter that keeps jobs of the configured employment types.
func NewTypes() Filter {
	return &keepFilter{
		name:     "types",
		field:    corpus.JobTypeField,
		selector: func(cfg *Config) []string { return cfg.Types },
	}
}

// NewLevels creates a filter that keeps jobs of the configured seniority levels.
func NewLevels() Filter {
	return &keepFilter{
		name:     "levels",
		field:    corpus.JobLevelField,
		selector: func(cfg *Config) []string { return cfg.Levels },
	}
}

func (f *keepFilter) Name() string { return f.name }

func (f *keepFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *keepFilter) IsEnabled() bool { return !f.disabled }

func (f *keepFilter) Validate(cfg *Config) error {
	f.values = nil
	if cfg == nil {
		return nil
	}
	for _, value := range f.selector(cfg) {
		if strings.TrimSpace(value) != "" {
			f.values = append(f.values, value)
		}
	}
	return nil
}

func (f *keepFilter) Apply(_ context.Context, deps Deps, jobs *corpus.Jobs) (*corpus.Jobs, Step, error) {
	initial := jobs.Len()
	if len(f.values) == 0 {
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	dropped := jobs.Keep(f.field, f.values)
	if len(dropped) > 0 {
		deps.Logger.Info("keeping jobs by "+f.name,
			zap.Strings("kept_"+f.name, f.values),
			zap.Strings("excluded_jobs", dropped),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(dropped), Left: jobs.Len()}, nil
}

func (f *keepFilter) Status() Status {
	details := map[string]string{}
	if len(f.values) > 0 {
		details[f.name] = strings.Join(f.values, ",")
	}
	return Status{Name: f.name, Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
