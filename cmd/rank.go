package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/corpus"
	"github.com/spigell/resume-matcher/internal/resume"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the job corpus by similarity to a resume",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("resume", "r", "", "resume in plain text ('-' reads stdin)")
	rankCmd.Flags().IntP("top-k", "k", 0, "number of jobs to list")
	rankCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	rankCmd.Flags().Bool("report", false, "group ranked jobs by company")
	rankCmd.Flags().StringSlice("skip-filter", nil, "names of job filters to skip (companies, locations, types, levels)")

	rankCmd.MarkFlagRequired("resume")
}

func rank(cmd *cobra.Command) {
	log := newLogger()

	resumePath, _ := cmd.Flags().GetString("resume")
	output, _ := cmd.Flags().GetString("output")
	if err := validateOutput(output); err != nil {
		log.Fatal("checking flags", zap.Error(err))
	}

	s, err := newSession(context.Background(), cmd, log)
	if err != nil {
		log.Fatal("preparing the corpus", zap.Error(err))
	}

	topK, err := s.topK(cmd)
	if err != nil {
		log.Fatal("checking flags", zap.Error(err))
	}

	text, err := resume.Load(resumePath)
	if err != nil {
		log.Fatal("loading resume", zap.Error(err), zap.String("resume", resumePath))
	}

	ranked := s.rank(text, topK)
	s.logger.Info("ranked jobs", zap.Int("count", len(ranked)), zap.Int("candidates", s.candidates.Len()))

	if report, _ := cmd.Flags().GetBool("report"); report {
		jobs := &corpus.Jobs{Items: make([]*corpus.Job, 0, len(ranked))}
		for _, r := range ranked {
			jobs.Items = append(jobs.Items, r.Job)
		}
		if err := writeJSON(cmd.OutOrStdout(), jobs.ReportByCompany()); err != nil {
			log.Fatal("writing report", zap.Error(err))
		}
		return
	}

	if err := writeRanked(cmd.OutOrStdout(), output, ranked); err != nil {
		log.Fatal("writing result", zap.Error(err))
	}
}
