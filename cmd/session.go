package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/corpus"
	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/jobtable"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matcher"
)

// session holds everything a command needs after the corpus is loaded.
type session struct {
	config     *Config
	logger     *zap.Logger
	matcher    *matcher.Matcher
	candidates *corpus.Jobs
}

// newLogger builds the cli logger or exits, since nothing can be reported without it.
func newLogger() *zap.Logger {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return logger
}

// newSession loads the job table, builds the index and runs the filters.
func newSession(ctx context.Context, cmd *cobra.Command, log *zap.Logger) (*session, error) {
	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	path := strings.TrimSpace(config.Corpus)
	if path == "" {
		return nil, errors.New("job table is not configured")
	}

	log = logger.WithSourceFields(log, path, "")

	table, err := jobtable.Load(path)
	if err != nil {
		return nil, err
	}

	index, err := corpus.Build(table,
		corpus.WithLogger(log),
		corpus.WithAliases(config.Aliases),
	)
	if err != nil {
		return nil, fmt.Errorf("building corpus index: %w", err)
	}

	steps := filtering.Default()
	if cmd.Flags().Lookup("skip-filter") != nil {
		skipped, err := cmd.Flags().GetStringSlice("skip-filter")
		if err != nil {
			return nil, err
		}
		for _, name := range skipped {
			filtering.DisableByName(steps, strings.TrimSpace(name), "skip requested via flag")
		}
	}

	candidates, err := filtering.Run(ctx, config.Filters, filtering.Deps{Logger: log}, steps, index.Unique())
	if err != nil {
		return nil, fmt.Errorf("filtering jobs: %w", err)
	}
	log.Debug("filters", zap.Any("statuses", filtering.Describe(steps)))

	if candidates.Len() == 0 {
		log.Warn("no jobs left after filters; ranking will be empty")
	}

	return &session{
		config:     config,
		logger:     log,
		matcher:    matcher.New(index, log),
		candidates: candidates,
	}, nil
}

// weight returns the skill weight from the flag when set, else from the config.
func (s *session) weight(cmd *cobra.Command) (float64, error) {
	w := s.config.Matching.WeightSkills
	if cmd.Flags().Changed("weight") {
		var err error
		if w, err = cmd.Flags().GetFloat64("weight"); err != nil {
			return 0, err
		}
	}
	if w < 0 || w > 1 {
		return 0, fmt.Errorf("skill weight must be within [0, 1], got %v", w)
	}
	return w, nil
}

// topK returns the number of ranked jobs from the flag when set, else from the config.
func (s *session) topK(cmd *cobra.Command) (int, error) {
	k := s.config.Matching.TopK
	if cmd.Flags().Changed("top-k") {
		var err error
		if k, err = cmd.Flags().GetInt("top-k"); err != nil {
			return 0, err
		}
	}
	if k <= 0 {
		return 0, fmt.Errorf("top-k must be positive, got %d", k)
	}
	return k, nil
}

func (s *session) rank(resume string, topK int) []corpus.Ranked {
	return s.matcher.RankJobs(resume, topK, s.candidates)
}
