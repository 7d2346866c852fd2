package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spigell/resume-matcher/internal/corpus"
	"github.com/spigell/resume-matcher/internal/matcher"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type matchReport struct {
	*matcher.Result
	Job     *corpus.Job     `json:"job,omitempty"`
	Similar []corpus.Ranked `json:"similar_jobs,omitempty"`
}

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use %s or %s)", format, outputText, outputJSON)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResult(w io.Writer, format string, report *matchReport) error {
	if format == outputJSON {
		return writeJSON(w, report)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if report.Job != nil {
		fmt.Fprintf(tw, "Job:\t%s @ %s\n", report.Job.Title, report.Job.Company)
	}
	fmt.Fprintf(tw, "Match score:\t%.2f%%\n", report.Score)
	fmt.Fprintf(tw, "Skill score:\t%.2f\n", report.SkillScore)
	fmt.Fprintf(tw, "Semantic similarity:\t%.4f\n", report.SemanticSimilarity)
	fmt.Fprintf(tw, "Detected skills:\t%s\n", joinSkills(report.DetectedSkills))
	fmt.Fprintf(tw, "Matched skills:\t%s\n", joinSkills(report.MatchedSkills))
	fmt.Fprintf(tw, "Missing skills:\t%s\n", joinSkills(report.MissingSkills))
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.Similar == nil {
		return nil
	}

	fmt.Fprintln(w)
	return writeRanked(w, outputText, report.Similar)
}

func writeRanked(w io.Writer, format string, ranked []corpus.Ranked) error {
	if format == outputJSON {
		return writeJSON(w, ranked)
	}

	if len(ranked) == 0 {
		_, err := fmt.Fprintln(w, "No similar jobs found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(corpus.RankHeaders, "\t")))
	for _, r := range ranked {
		fmt.Fprintln(tw, strings.Join(r.Row(), "\t"))
	}
	return tw.Flush()
}

func joinSkills(skills []string) string {
	if len(skills) == 0 {
		return "-"
	}
	return strings.Join(skills, ", ")
}
