package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/matcher"
)

const (
	app = "resume-matcher"
)

type Config struct {
	Corpus   string            `mapstructure:"corpus"`
	Matching *MatchingConfig   `mapstructure:"matching"`
	Aliases  map[string]string `mapstructure:"aliases"`
	Filters  *filtering.Config `mapstructure:"filters"`
}

type MatchingConfig struct {
	WeightSkills float64 `mapstructure:"weight-skills"`
	TopK         int     `mapstructure:"top-k"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-matcher scores resumes against job descriptions and ranks a job corpus by similarity",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("corpus", "RESUME_MATCHER_CORPUS"); err != nil {
		log.Fatalf("binding RESUME_MATCHER_CORPUS environment variable: %v", err)
	}

	viper.SetDefault("matching.weight-skills", matcher.DefaultWeightSkills)
	viper.SetDefault("matching.top-k", matcher.DefaultTopK)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("corpus", "c", "", "job table in csv or csv.gz format")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("corpus", rootCmd.PersistentFlags().Lookup("corpus"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	err := viper.ReadInConfig()

	// The config file is optional unless it was requested explicitly.
	var notFound viper.ConfigFileNotFoundError
	if err != nil && cfgFile == "" && errors.As(err, &notFound) {
		return
	}

	// We can't proceed if the config file parsed with error.
	if err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{
			WeightSkills: matcher.DefaultWeightSkills,
			TopK:         matcher.DefaultTopK,
		}
	}
	if config.Filters == nil {
		config.Filters = &filtering.Config{}
	}

	return config, nil
}
