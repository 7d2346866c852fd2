package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/resume"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Print the known skills found in a text",
	Run: func(cmd *cobra.Command, _ []string) {
		detectSkills(cmd)
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().StringP("text", "t", "", "text to search for skills")
	skillsCmd.Flags().StringP("file", "f", "", "plain text file to search for skills ('-' reads stdin)")
	skillsCmd.Flags().Bool("vocabulary", false, "print the whole skill vocabulary of the corpus")

	skillsCmd.MarkFlagsMutuallyExclusive("text", "file", "vocabulary")
}

func detectSkills(cmd *cobra.Command) {
	log := newLogger()

	s, err := newSession(context.Background(), cmd, log)
	if err != nil {
		log.Fatal("preparing the corpus", zap.Error(err))
	}

	var found []string
	switch vocabulary, _ := cmd.Flags().GetBool("vocabulary"); {
	case vocabulary:
		found = s.matcher.Index().Vocabulary().Skills()
	default:
		text, err := skillsInput(cmd)
		if err != nil {
			log.Fatal("reading input", zap.Error(err))
		}
		found = s.matcher.ExtractSkills(text)
		s.logger.Info("skills detected", zap.Int("count", len(found)))
	}

	if len(found) == 0 {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(found, "\n"))
}

func skillsInput(cmd *cobra.Command) (string, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		return text, nil
	}

	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return "", fmt.Errorf("either --text or --file is required")
	}
	return resume.Load(path)
}
