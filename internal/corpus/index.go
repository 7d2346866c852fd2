// Package corpus owns the job corpus: decoded job records, their composite
// text, the skill vocabulary, the alias map and the fitted TF-IDF model.
package corpus

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/textvec"
)

// Index is built once per job table and is read-only afterwards, so it can
// serve concurrent requests without locking.
type Index struct {
	jobs    []*Job
	unique  []*Job
	vectors []textvec.Vector

	vocabulary *skills.Vocabulary
	aliases    *skills.Aliases
	model      *textvec.Model
}

type buildOptions struct {
	logger  *zap.Logger
	aliases map[string]string
}

// Option configures Build.
type Option func(*buildOptions)

// WithLogger sets the logger used while building.
func WithLogger(logger *zap.Logger) Option {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// WithAliases merges extra aliases into the built-in alias map.
func WithAliases(aliases map[string]string) Option {
	return func(o *buildOptions) {
		o.aliases = aliases
	}
}

// Build decodes the table, derives per-job text, harvests the skill
// vocabulary and fits the text model over all job texts.
func Build(table Table, opts ...Option) (*Index, error) {
	o := &buildOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	columns := table.columnSet()
	present := presentColumns(columns, textColumns)
	if len(present) == 0 {
		return nil, &SchemaError{Columns: sortedColumns(columns)}
	}

	idx := &Index{}
	var skillFields []string
	presentSkills := presentColumns(columns, skillColumns)

	for i, row := range table.Rows {
		job, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("decoding row %d: %w", i, err)
		}
		if !job.usable() {
			o.logger.Debug("skipping empty job row", zap.Int("row", i))
			continue
		}

		job.Position = len(idx.jobs)
		job.Text = composeText(job, present)
		idx.jobs = append(idx.jobs, job)

		for _, c := range presentSkills {
			skillFields = append(skillFields, job.field(c))
		}
	}

	if len(idx.jobs) == 0 {
		return nil, ErrEmptyCorpus
	}

	aliases, err := skills.NewAliases(o.aliases)
	if err != nil {
		return nil, fmt.Errorf("building alias map: %w", err)
	}
	idx.aliases = aliases
	idx.vocabulary = skills.HarvestVocabulary(skillFields)

	texts := make([]string, len(idx.jobs))
	for i, job := range idx.jobs {
		texts[i] = job.Text
	}

	model, err := textvec.Fit(texts)
	if err != nil {
		return nil, fmt.Errorf("fitting text model: %w", err)
	}
	idx.model = model

	idx.vectors = make([]textvec.Vector, len(idx.jobs))
	for i, text := range texts {
		idx.vectors[i] = model.Transform(text)
	}

	seen := make(map[string]struct{}, len(idx.jobs))
	for _, job := range idx.jobs {
		if _, dup := seen[job.Key()]; dup {
			continue
		}
		seen[job.Key()] = struct{}{}
		idx.unique = append(idx.unique, job)
	}

	o.logger.Info("corpus index built",
		zap.Int("jobs", len(idx.jobs)),
		zap.Int("skipped_rows", len(table.Rows)-len(idx.jobs)),
		zap.Int("unique_jobs", len(idx.unique)),
		zap.Int("skills", idx.vocabulary.Len()),
		zap.Int("aliases", idx.aliases.Len()),
		zap.Int("terms", model.Size()),
		zap.Strings("text_columns", present),
	)

	return idx, nil
}

// Transform projects text into the fitted term space.
func (idx *Index) Transform(text string) textvec.Vector {
	return idx.model.Transform(text)
}

// Similarity returns the cosine similarity of two texts in the fitted space.
func (idx *Index) Similarity(a, b string) float64 {
	return textvec.Cosine(idx.Transform(a), idx.Transform(b))
}

// Ranked is a job paired with its similarity to a query, as a 0-100
// percentage rounded to two decimals.
type Ranked struct {
	Job        *Job    `json:"job"`
	Similarity float64 `json:"similarity"`
}

// RankHeaders are the column names of Ranked.Row.
var RankHeaders = []string{"title", "company", "location", "type", "level", "posted_on", "similarity"}

// Row renders the ranked job as a table row.
func (r Ranked) Row() []string {
	return []string{
		r.Job.Title,
		r.Job.Company,
		r.Job.Location,
		r.Job.Type,
		r.Job.Level,
		r.Job.PostedOn,
		fmt.Sprintf("%.2f", r.Similarity),
	}
}

// Rank returns up to topK deduplicated jobs ordered by descending similarity
// to query. Ties keep corpus order. A blank query or non-positive topK yields
// an empty result.
func (idx *Index) Rank(query string, topK int) []Ranked {
	return idx.RankJobs(query, topK, idx.Unique())
}

// RankJobs is Rank restricted to candidates. Candidates that do not belong to
// this index, and repeated candidates, are ignored.
func (idx *Index) RankJobs(query string, topK int, candidates *Jobs) []Ranked {
	if strings.TrimSpace(query) == "" || topK <= 0 || candidates.Len() == 0 {
		return []Ranked{}
	}

	q := idx.Transform(query)

	type scored struct {
		job *Job
		sim float64
	}
	results := make([]scored, 0, candidates.Len())
	taken := make(map[int]struct{}, candidates.Len())
	for _, job := range candidates.Items {
		if job == nil || job.Position < 0 || job.Position >= len(idx.jobs) || idx.jobs[job.Position] != job {
			continue
		}
		if _, dup := taken[job.Position]; dup {
			continue
		}
		taken[job.Position] = struct{}{}
		results = append(results, scored{job: job, sim: q.Dot(idx.vectors[job.Position])})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].sim != results[j].sim {
			return results[i].sim > results[j].sim
		}
		return results[i].job.Position < results[j].job.Position
	})

	if len(results) > topK {
		results = results[:topK]
	}

	ranked := make([]Ranked, len(results))
	for i, r := range results {
		ranked[i] = Ranked{Job: r.job, Similarity: Percent(r.sim)}
	}
	return ranked
}

// Jobs returns all jobs in corpus order.
func (idx *Index) Jobs() *Jobs {
	return &Jobs{Items: append([]*Job(nil), idx.jobs...)}
}

// Unique returns the jobs deduplicated by (title, company), first occurrence
// first.
func (idx *Index) Unique() *Jobs {
	return &Jobs{Items: append([]*Job(nil), idx.unique...)}
}

// JobByPosition returns the job at position i in corpus order, or nil.
func (idx *Index) JobByPosition(i int) *Job {
	if i < 0 || i >= len(idx.jobs) {
		return nil
	}
	return idx.jobs[i]
}

func (idx *Index) Len() int {
	return len(idx.jobs)
}

func (idx *Index) Vocabulary() *skills.Vocabulary {
	return idx.vocabulary
}

func (idx *Index) Aliases() *skills.Aliases {
	return idx.aliases
}

// Percent scales a 0-1 ratio to a percentage rounded to two decimals.
func Percent(ratio float64) float64 {
	return math.Round(ratio*100*100) / 100
}
