package cmd

import (
	"log"

	"github.com/denisxab/finding-favorite-job/internal/headhunter"
	"github.com/denisxab/finding-favorite-job/internal/match"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "finding-favorite-job"
)

type Config struct {
	Search      *headhunter.SearchParams `mapstructure:"search"`
	Preferences *match.Preferences       `mapstructure:"preferences"`
	Server      *ServerConfig            `mapstructure:"server"`
	Tokenizer   *TokenizerConfig         `mapstructure:"tokenizer"`
	Data        *DataConfig              `mapstructure:"data"`
	UserAgent   string                   `mapstructure:"user-agent"`
	TokenFile   string                   `mapstructure:"token-file"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type TokenizerConfig struct {
	// URL is where the api server reaches the text_to_tokens endpoint.
	URL string `mapstructure:"url"`
	// Address is where the tokenizer command listens.
	Address string `mapstructure:"address"`
}

type DataConfig struct {
	// Dir holds the sqlite database and the pipeline snapshots.
	Dir      string `mapstructure:"dir"`
	Database string `mapstructure:"database"`
	Resume   string `mapstructure:"resume"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "finding-favorite-job fetches vacancies from hh.ru and ranks them against your resume",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "HH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding HH_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is finding-favorite-job.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the serve command now. If there is no config, we can skip initialization
	if serveCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// withDefaults fills in everything the config file may omit.
func (c *Config) withDefaults() *Config {
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8912"
	}

	if c.Tokenizer == nil {
		c.Tokenizer = &TokenizerConfig{}
	}
	if c.Tokenizer.Address == "" {
		c.Tokenizer.Address = ":8932"
	}
	if c.Tokenizer.URL == "" {
		c.Tokenizer.URL = "http://localhost:8932/text_to_tokens"
	}

	if c.Data == nil {
		c.Data = &DataConfig{}
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.Database == "" {
		c.Data.Database = "vacancies.db"
	}
	if c.Data.Resume == "" {
		c.Data.Resume = "resume_text.md"
	}

	if c.Preferences == nil {
		c.Preferences = &match.Preferences{}
	}

	return c
}
