package matcher

import (
	"slices"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-matcher/internal/corpus"
)

func newMatcher(t *testing.T, rows ...map[string]any) *Matcher {
	t.Helper()
	idx, err := corpus.Build(corpus.Table{Rows: rows})
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return New(idx, zap.NewNop())
}

func job(title, company, skills string) map[string]any {
	return map[string]any{"title": title, "company": company, "skills": skills}
}

func TestScoreSingleJobScenario(t *testing.T) {
	m := newMatcher(t, job("Data Analyst", "Acme", "Python, SQL"))
	target := m.Index().JobByPosition(0)

	result := m.ScoreJob("I have 3 years of Python and SQL experience.", target, DefaultWeightSkills)

	for _, skill := range []string{"python", "sql"} {
		if !slices.Contains(result.DetectedSkills, skill) {
			t.Fatalf("expected %q in detected skills %v", skill, result.DetectedSkills)
		}
	}
	if !slices.Equal(result.MatchedSkills, []string{"python", "sql"}) {
		t.Fatalf("unexpected matched skills: %v", result.MatchedSkills)
	}
	if len(result.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills, got %v", result.MissingSkills)
	}
	if result.SkillScore != 1.0 {
		t.Fatalf("expected skill score 1, got %v", result.SkillScore)
	}
	if result.SemanticSimilarity <= 0 {
		t.Fatalf("expected positive semantic similarity, got %v", result.SemanticSimilarity)
	}
	if result.Score <= 60 || result.Score > 100 {
		t.Fatalf("unexpected final score %v", result.Score)
	}
}

func TestScoreAliasScenario(t *testing.T) {
	m := newMatcher(t,
		job("ML Engineer", "Acme", "Artificial Intelligence, Python"),
		job("Analyst", "Globex", "Excel"),
	)

	result := m.Score("Experienced in AI research", "We need artificial intelligence expertise", 0.6)

	if !slices.Equal(result.MatchedSkills, []string{"artificial intelligence"}) {
		t.Fatalf("expected artificial intelligence to be matched, got %v", result.MatchedSkills)
	}
	if slices.Contains(result.MissingSkills, "artificial intelligence") {
		t.Fatalf("did not expect artificial intelligence to be missing")
	}
	if slices.Contains(result.DetectedSkills, "ai") {
		t.Fatalf("expected canonical skill only, got %v", result.DetectedSkills)
	}
}

func TestScoreEmptyResume(t *testing.T) {
	m := newMatcher(t, job("Data Analyst", "Acme", "Python, SQL"))

	result := m.Score("", "Python and SQL", 0.6)
	if result.Score != 0 || result.SkillScore != 0 || result.SemanticSimilarity != 0 {
		t.Fatalf("expected zero result, got %+v", result)
	}
	if len(result.DetectedSkills) != 0 || len(result.MatchedSkills) != 0 || len(result.MissingSkills) != 0 {
		t.Fatalf("expected empty skill lists, got %+v", result)
	}
	if result.DetectedSkills == nil || result.MatchedSkills == nil || result.MissingSkills == nil {
		t.Fatalf("expected non-nil empty lists")
	}
}

func TestScoreEmptyJobDescription(t *testing.T) {
	m := newMatcher(t, job("Data Analyst", "Acme", "Python, SQL"))

	result := m.Score("Python developer", "   ", 0.6)
	if result.Score != 0 {
		t.Fatalf("expected zero score, got %v", result.Score)
	}
	if !slices.Equal(result.DetectedSkills, []string{"python"}) {
		t.Fatalf("expected detected skills to be reported, got %v", result.DetectedSkills)
	}
	if len(result.MatchedSkills) != 0 || len(result.MissingSkills) != 0 {
		t.Fatalf("expected no jd skills, got %+v", result)
	}
}

func TestScoreWeightBoundaries(t *testing.T) {
	m := newMatcher(t,
		job("Data Analyst", "Acme", "Python, SQL"),
		job("Java Developer", "Globex", "Java"),
	)

	resume := "Python analyst with reporting background"
	jd := "Data Analyst: Python, SQL"

	skillsOnly := m.Score(resume, jd, 1.0)
	if skillsOnly.SkillScore != 0.5 {
		t.Fatalf("expected skill score 0.5, got %v", skillsOnly.SkillScore)
	}
	if skillsOnly.Score != 50 {
		t.Fatalf("expected score to depend only on skills, got %v", skillsOnly.Score)
	}
	if !slices.Equal(skillsOnly.MissingSkills, []string{"sql"}) {
		t.Fatalf("expected sql to be missing, got %v", skillsOnly.MissingSkills)
	}

	semanticOnly := m.Score(resume, jd, 0.0)
	if semanticOnly.SemanticSimilarity <= 0 {
		t.Fatalf("expected positive similarity, got %v", semanticOnly.SemanticSimilarity)
	}
	if semanticOnly.Score != corpus.Percent(semanticOnly.SemanticSimilarity) {
		t.Fatalf("expected score to depend only on similarity, got %v vs %v",
			semanticOnly.Score, corpus.Percent(semanticOnly.SemanticSimilarity))
	}
}

func TestScoreIgnoresExtraResumeSkills(t *testing.T) {
	m := newMatcher(t,
		job("Data Analyst", "Acme", "Python, SQL, Excel, Tableau"),
	)

	result := m.Score("Python, SQL, Excel and Tableau", "Python required", 1.0)
	if result.SkillScore != 1 {
		t.Fatalf("expected extra resume skills not to lower the score, got %v", result.SkillScore)
	}
	if len(result.DetectedSkills) != 4 {
		t.Fatalf("expected 4 detected skills, got %v", result.DetectedSkills)
	}
}

func TestExtractSkillsWholeWord(t *testing.T) {
	m := newMatcher(t, job("Developer", "Acme", "Java, JavaScript"))

	if got := m.ExtractSkills("Java backend"); !slices.Equal(got, []string{"java"}) {
		t.Fatalf("expected only java, got %v", got)
	}
	if got := m.ExtractSkills("JavaScript frontend"); !slices.Equal(got, []string{"javascript"}) {
		t.Fatalf("expected only javascript, got %v", got)
	}
	if got := m.ExtractSkills(""); len(got) != 0 {
		t.Fatalf("expected no skills for empty text, got %v", got)
	}
}

func TestNormalizeText(t *testing.T) {
	m := newMatcher(t, job("Developer", "Acme", "Go"))

	if got := m.NormalizeText("  Hello,   World!! "); got != "hello world" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestRank(t *testing.T) {
	m := newMatcher(t,
		job("Data Analyst", "Acme", "Python, SQL"),
		job("Java Developer", "Globex", "Java, Spring"),
		job("BI Analyst", "Initech", "SQL, Tableau"),
	)

	ranked := m.Rank("Python SQL analyst", 2)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 results, got %d", len(ranked))
	}
	if ranked[0].Job.Title != "Data Analyst" {
		t.Fatalf("expected Data Analyst first, got %s", ranked[0].Job.Title)
	}

	if got := m.Rank("", 2); len(got) != 0 {
		t.Fatalf("expected empty ranking for empty resume, got %v", got)
	}

	subset := &corpus.Jobs{Items: []*corpus.Job{m.Index().JobByPosition(2)}}
	if got := m.RankJobs("Python SQL analyst", 5, subset); len(got) != 1 || got[0].Job.Title != "BI Analyst" {
		t.Fatalf("unexpected restricted ranking: %v", got)
	}
}

func TestScoreLogsDebugDetails(t *testing.T) {
	idx, err := corpus.Build(corpus.Table{Rows: []map[string]any{job("Data Analyst", "Acme", "Python")}})
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	core, observed := observer.New(zapcore.DebugLevel)
	m := New(idx, zap.New(core))
	m.Score("Python", "Python", 0.5)

	entries := observed.FilterMessage("scored resume").All()
	if len(entries) != 1 {
		t.Fatalf("expected one debug entry, got %d", len(entries))
	}
	if ctx := entries[0].ContextMap(); ctx["jd_skills"] != int64(1) {
		t.Fatalf("unexpected jd_skills: %v", ctx["jd_skills"])
	}
}

func TestScoreConcurrent(t *testing.T) {
	m := newMatcher(t,
		job("Data Analyst", "Acme", "Python, SQL"),
		job("Java Developer", "Globex", "Java"),
	)
	want := m.Score("Python and SQL", "Data analyst with Python", 0.6)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := m.Score("Python and SQL", "Data analyst with Python", 0.6)
			if got.Score != want.Score || !slices.Equal(got.MatchedSkills, want.MatchedSkills) {
				t.Errorf("concurrent score diverged: %+v vs %+v", got, want)
			}
		}()
	}
	wg.Wait()
}
