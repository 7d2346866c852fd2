package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/corpus"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/resume"
)

const (
	PromptBack              = "back"
	PromptReportByCompanies = "Report by companies"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against a job description and list similar jobs",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("resume", "r", "", "resume in plain text ('-' reads stdin)")
	matchCmd.Flags().String("job-description", "", "file with the job description in plain text")
	matchCmd.Flags().String("job-text", "", "job description text")
	matchCmd.Flags().Float64P("weight", "w", 0, "share of the score given to skill overlap, within [0, 1]")
	matchCmd.Flags().IntP("top-k", "k", 0, "number of similar jobs to list")
	matchCmd.Flags().BoolP("interactive", "i", false, "choose a similar job and score the resume against it")
	matchCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	matchCmd.Flags().StringSlice("skip-filter", nil, "names of job filters to skip (companies, locations, types, levels)")

	matchCmd.MarkFlagRequired("resume")
	matchCmd.MarkFlagsMutuallyExclusive("job-description", "job-text")
}

func match(cmd *cobra.Command) {
	ctx := context.Background()
	log := newLogger()

	resumePath, _ := cmd.Flags().GetString("resume")
	output, _ := cmd.Flags().GetString("output")
	if err := validateOutput(output); err != nil {
		log.Fatal("checking flags", zap.Error(err))
	}

	log.Info("starting the resume-matcher", zap.String("version", version))

	s, err := newSession(ctx, cmd, log)
	if err != nil {
		log.Fatal("preparing the corpus", zap.Error(err))
	}
	log = logger.WithSourceFields(s.logger, "", resumePath)

	weight, err := s.weight(cmd)
	if err != nil {
		log.Fatal("checking flags", zap.Error(err))
	}
	topK, err := s.topK(cmd)
	if err != nil {
		log.Fatal("checking flags", zap.Error(err))
	}

	text, err := resume.Load(resumePath)
	if err != nil {
		log.Fatal("loading resume", zap.Error(err))
	}
	if text == "" {
		log.Warn("resume is empty; all scores will be zero")
	}

	jd, err := jobDescription(cmd)
	if err != nil {
		log.Fatal("loading job description", zap.Error(err))
	}

	similar := s.rank(text, topK)
	report := &matchReport{
		Result:  s.matcher.Score(text, jd, weight),
		Similar: similar,
	}

	log.Info("resume scored",
		zap.Float64("match_score", report.Score),
		zap.Int("detected_skills", len(report.DetectedSkills)),
		zap.Int("similar_jobs", len(similar)),
	)

	if err := writeResult(cmd.OutOrStdout(), output, report); err != nil {
		log.Fatal("writing result", zap.Error(err))
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); !interactive {
		return
	}

	if err := chooseJobs(cmd, s, text, weight, output, similar); err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			log.Info("exiting", zap.String("reason", "prompt closed"))
			return
		}
		log.Fatal("exiting", zap.Error(err))
	}
}

// jobDescription returns the job description from --job-text or
// --job-description. Without either the description is empty.
func jobDescription(cmd *cobra.Command) (string, error) {
	if text, _ := cmd.Flags().GetString("job-text"); strings.TrimSpace(text) != "" {
		return text, nil
	}

	path, _ := cmd.Flags().GetString("job-description")
	if strings.TrimSpace(path) == "" {
		return "", nil
	}

	text, err := resume.Load(path)
	if err != nil {
		return "", fmt.Errorf("job description: %w", err)
	}
	return text, nil
}

// chooseJobs lets the user pick ranked jobs one by one and scores the resume
// against each picked job until they go back.
func chooseJobs(cmd *cobra.Command, s *session, text string, weight float64, output string, ranked []corpus.Ranked) error {
	if len(ranked) == 0 {
		s.logger.Info("nothing to choose from", zap.String("reason", "no similar jobs found"))
		return nil
	}

	for {
		items := make([]string, 0, len(ranked)+2)
		for i, r := range ranked {
			items = append(items, fmt.Sprintf("%d. %s / %s / %s (%.2f)",
				i+1, r.Job.Title, r.Job.Company, r.Job.Location, r.Similarity,
			))
		}
		items = append(items, PromptReportByCompanies, PromptBack)

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: items,
			Size:  10,
		}

		idx, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		switch selected {
		case PromptBack:
			return nil
		case PromptReportByCompanies:
			jobs := &corpus.Jobs{Items: make([]*corpus.Job, 0, len(ranked))}
			for _, r := range ranked {
				jobs.Items = append(jobs.Items, r.Job)
			}
			if err := writeJSON(cmd.OutOrStdout(), jobs.ReportByCompany()); err != nil {
				return err
			}
		default:
			job := ranked[idx].Job
			report := &matchReport{
				Result: s.matcher.ScoreJob(text, job, weight),
				Job:    job,
			}
			s.logger.Info("resume scored against selected job",
				zap.String("title", job.Title),
				zap.String("company", job.Company),
				zap.Float64("match_score", report.Score),
			)
			if err := writeResult(cmd.OutOrStdout(), output, report); err != nil {
				return err
			}
		}
	}
}
