package textvec

import (
	"errors"
	"math"
	"slices"
	"sync"
	"testing"
)

const eps = 1e-9

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "empty",
			input:  "",
			expect: nil,
		},
		{
			name:   "drops stop words and punctuation",
			input:  "The Python, SQL and Go developer!",
			expect: []string{"python", "sql", "developer"},
		},
		{
			name:   "drops single rune tokens",
			input:  "a b c++ r2",
			expect: []string{"r2"},
		},
		{
			name:   "keeps underscores and digits",
			input:  "snake_case 2024",
			expect: []string{"snake_case", "2024"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Tokenize(tt.input)
			if !slices.Equal(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestFitBuildsSortedVocabularyAndSmoothedIDF(t *testing.T) {
	model, err := Fit([]string{"python sql", "python java"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := model.Terms(); !slices.Equal(got, []string{"java", "python", "sql"}) {
		t.Fatalf("unexpected terms: %v", got)
	}

	if got := model.IDF("python"); math.Abs(got-1) > eps {
		t.Fatalf("expected idf 1 for term in every doc, got %v", got)
	}

	want := math.Log(3.0/2.0) + 1
	if got := model.IDF("sql"); math.Abs(got-want) > eps {
		t.Fatalf("expected idf %v, got %v", want, got)
	}

	if got := model.IDF("kotlin"); got != 0 {
		t.Fatalf("expected zero idf for unknown term, got %v", got)
	}
}

func TestFitEmptyVocabulary(t *testing.T) {
	_, err := Fit([]string{"the and of", ""})
	if !errors.Is(err, ErrEmptyVocabulary) {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestTransform(t *testing.T) {
	model, err := Fit([]string{"python sql", "python java"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := model.Transform("Python python SQL kotlin")
	if v.Len() != 2 {
		t.Fatalf("expected 2 non-zero terms, got %d", v.Len())
	}
	if math.Abs(v.Norm()-1) > eps {
		t.Fatalf("expected unit vector, got norm %v", v.Norm())
	}

	pyCol, _ := model.Column("python")
	sqlCol, _ := model.Column("sql")
	sqlIDF := math.Log(1.5) + 1
	norm := math.Sqrt(4 + sqlIDF*sqlIDF)
	if got := v.Get(pyCol); math.Abs(got-2/norm) > eps {
		t.Fatalf("unexpected python weight %v", got)
	}
	if got := v.Get(sqlCol); math.Abs(got-sqlIDF/norm) > eps {
		t.Fatalf("unexpected sql weight %v", got)
	}

	if !model.Transform("kotlin rust").IsZero() {
		t.Fatalf("expected zero vector for out-of-vocabulary text")
	}
	if !model.Transform("").IsZero() {
		t.Fatalf("expected zero vector for empty text")
	}
}

func TestSimilarity(t *testing.T) {
	model, err := Fit([]string{"python sql", "python java", "excel reporting"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := model.Similarity("python sql", "python sql"); math.Abs(got-1) > eps {
		t.Fatalf("expected identical texts to have similarity 1, got %v", got)
	}

	partial := model.Similarity("python", "python sql")
	if partial <= 0 || partial >= 1 {
		t.Fatalf("expected partial similarity in (0, 1), got %v", partial)
	}

	if got := model.Similarity("python", "excel"); got != 0 {
		t.Fatalf("expected disjoint texts to have similarity 0, got %v", got)
	}

	if got := model.Similarity("", "python"); got != 0 {
		t.Fatalf("expected empty text to have similarity 0, got %v", got)
	}
}

func TestTransformConcurrent(t *testing.T) {
	model, err := Fit([]string{"python sql", "python java", "excel reporting"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := model.Transform("python reporting")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := model.Transform("python reporting")
			if math.Abs(Cosine(got, want)-1) > eps {
				t.Errorf("concurrent transform diverged")
			}
		}()
	}
	wg.Wait()
}
