package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/denisxab/finding-favorite-job/internal/api"
	"github.com/denisxab/finding-favorite-job/internal/headhunter"
	"github.com/denisxab/finding-favorite-job/internal/ingest"
	"github.com/denisxab/finding-favorite-job/internal/logger"
	"github.com/denisxab/finding-favorite-job/internal/match"
	"github.com/denisxab/finding-favorite-job/internal/secrets"
	"github.com/denisxab/finding-favorite-job/internal/store"
	"github.com/denisxab/finding-favorite-job/internal/tokenize"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the vacancy ingestion and matching api server",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}
	config = config.withDefaults()

	if config.Search == nil {
		logger.Fatal("search parameters are required under the search key")
	}

	logger.Info("starting the "+app, zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	token := ""
	if config.TokenFile != "" {
		token, err = secrets.Load("headhunter token", config.TokenFile)
		if err != nil {
			logger.Fatal("loading headhunter token",
				zap.Error(err),
				zap.String("hint", "unset token-file to use the api anonymously"),
			)
		}
	}

	hh := headhunter.New(ctx, logger, token)
	if config.UserAgent != "" {
		hh.UserAgent = config.UserAgent
	}

	st, err := store.Open(filepath.Join(config.Data.Dir, config.Data.Database), logger)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err))
	}
	defer st.Close()

	state, err := ingest.NewState(config.Data.Dir)
	if err != nil {
		logger.Fatal("preparing the state dir", zap.Error(err))
	}

	resumeFile := filepath.Join(config.Data.Dir, config.Data.Resume)
	tokens := tokenize.NewClient(config.Tokenizer.URL, logger)

	pipeline := ingest.New(hh, tokens, st, state, config.Search, resumeFile, logger)
	scorer := match.NewScorer(*config.Preferences)
	finder := match.NewFinder(st, tokens, scorer, resumeFile, logger)

	server := api.New(config.Server.Address, pipeline, finder, st, logger)
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("api server stopped", zap.Error(err))
	}
}
