package cmd

import (
	"log"

	"github.com/denisxab/finding-favorite-job/internal/logger"
	"github.com/denisxab/finding-favorite-job/internal/tokenize"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var tokenizerCmd = &cobra.Command{
	Use:   "tokenizer",
	Short: "Run the text-to-tokens service",
	Run: func(_ *cobra.Command, _ []string) {
		runTokenizer()
	},
}

func init() {
	rootCmd.AddCommand(tokenizerCmd)

	tokenizerCmd.Flags().String("listen", ":8932", "address for the tokenizer service")
	viper.BindPFlag("tokenizer.address", tokenizerCmd.Flags().Lookup("listen"))
}

func runTokenizer() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	server := tokenize.NewServer(viper.GetString("tokenizer.address"), logger)
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("tokenizer service stopped", zap.Error(err))
	}
}
