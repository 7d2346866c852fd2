// Package matcher scores résumés against job descriptions by blending skill
// overlap with TF-IDF similarity, and ranks the corpus for a résumé.
package matcher

import (
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/corpus"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/skills"
)

const (
	// DefaultWeightSkills is the share of the final score given to skill overlap.
	DefaultWeightSkills = 0.6
	// DefaultTopK is the default number of similar jobs returned by Rank.
	DefaultTopK = 5

	defaultMaxLogLength = 80
)

// Result is the outcome of a single match request.
type Result struct {
	// Score is the blended match as a 0-100 percentage with two decimals.
	Score              float64  `json:"match_score"`
	SkillScore         float64  `json:"skill_score"`
	SemanticSimilarity float64  `json:"semantic_similarity"`
	DetectedSkills     []string `json:"detected_skills"`
	MatchedSkills      []string `json:"matched_jd_cv"`
	MissingSkills      []string `json:"missing_jd_cv"`
}

func emptyResult() *Result {
	return &Result{
		DetectedSkills: []string{},
		MatchedSkills:  []string{},
		MissingSkills:  []string{},
	}
}

// Matcher holds a built index and the skill patterns derived from it. It has
// no mutable state and can be shared between goroutines.
type Matcher struct {
	index     *corpus.Index
	extractor *skills.Extractor
	logger    *zap.Logger
	maxLogLen int
}

func New(index *corpus.Index, log *zap.Logger) *Matcher {
	return &Matcher{
		index:     index,
		extractor: skills.NewExtractor(index.Vocabulary(), index.Aliases()),
		logger:    logger.WithFields(log),
		maxLogLen: defaultMaxLogLength,
	}
}

// NormalizeText lowercases text, strips punctuation and collapses whitespace.
func (m *Matcher) NormalizeText(text string) string {
	return skills.NormalizeText(text)
}

// ExtractSkills returns the sorted canonical skills found in text.
func (m *Matcher) ExtractSkills(text string) []string {
	return m.extractor.Extract(text)
}

// Score matches a résumé against a job description. weightSkills is expected
// in [0, 1] and is not validated. An empty résumé yields a zero result.
//
// The skill score is relative to the job description's skills only: extra
// résumé skills do not lower it.
func (m *Matcher) Score(resume, jobDescription string, weightSkills float64) *Result {
	if resume == "" {
		m.logger.Debug("empty resume; returning zero result")
		return emptyResult()
	}

	detected := m.ExtractSkills(resume)
	jdSkills := m.ExtractSkills(jobDescription)

	matched := make([]string, 0, len(jdSkills))
	missing := make([]string, 0, len(jdSkills))
	for _, skill := range jdSkills {
		if _, ok := slices.BinarySearch(detected, skill); ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	skillScore := 0.0
	if len(jdSkills) > 0 {
		skillScore = float64(len(matched)) / float64(len(jdSkills))
	}

	similarity := 0.0
	if strings.TrimSpace(jobDescription) != "" {
		similarity = m.index.Similarity(resume, jobDescription)
	}

	final := weightSkills*skillScore + (1-weightSkills)*similarity

	m.logger.Debug("scored resume",
		zap.Int("resume_length", utf8.RuneCountInString(resume)),
		zap.String("resume_preview", logger.TruncateForLog(resume, m.maxLogLen)),
		zap.Int("detected_skills", len(detected)),
		zap.Int("jd_skills", len(jdSkills)),
		zap.Float64("skill_score", skillScore),
		zap.Float64("semantic_similarity", similarity),
		zap.Float64("weight_skills", weightSkills),
	)

	return &Result{
		Score:              corpus.Percent(final),
		SkillScore:         skillScore,
		SemanticSimilarity: similarity,
		DetectedSkills:     detected,
		MatchedSkills:      matched,
		MissingSkills:      missing,
	}
}

// ScoreJob matches a résumé against a corpus job's composite text.
func (m *Matcher) ScoreJob(resume string, job *corpus.Job, weightSkills float64) *Result {
	if job == nil {
		return m.Score(resume, "", weightSkills)
	}
	return m.Score(resume, job.Text, weightSkills)
}

// Rank returns the topK corpus jobs most similar to the résumé.
func (m *Matcher) Rank(resume string, topK int) []corpus.Ranked {
	return m.index.Rank(resume, topK)
}

// RankJobs is Rank restricted to candidates.
func (m *Matcher) RankJobs(resume string, topK int, candidates *corpus.Jobs) []corpus.Ranked {
	return m.index.RankJobs(resume, topK, candidates)
}

// Index returns the corpus index the matcher works on.
func (m *Matcher) Index() *corpus.Index {
	return m.index
}
