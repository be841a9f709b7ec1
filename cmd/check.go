package cmd

import (
	"context"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/suhelali14/influencia-ai-bridge/internal/ai/gemini"
	"github.com/suhelali14/influencia-ai-bridge/internal/logger"
	"github.com/suhelali14/influencia-ai-bridge/internal/utils"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var confirmPrompt = promptui.Select{
	Label: "Send a live request to the Gemini API?",
	Items: []string{PromptYes, PromptNo},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configuration and the Gemini credential",
	Run: func(cmd *cobra.Command, _ []string) {
		check(cmd)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before the live api call")
}

// check verifies the bridge setup: config parses, the credential resolves
// and, after confirmation, Gemini answers a ping. The key value itself is
// never logged.
func check(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	apiKey, err := resolveAPIKey(config)
	if err != nil {
		logger.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	if strings.TrimSpace(apiKey) == "" {
		logger.Warn("no gemini api key configured",
			zap.String("effect", "analyze and generate_report answer from the heuristic engine only"),
		)
		logger.Info("configuration is usable")

		return
	}

	if cmd.Flag("yes").Value.String() != "true" {
		_, action, err := confirmPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if action == PromptNo {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	var model string
	var retries int
	if config != nil && config.AI != nil && config.AI.Gemini != nil {
		model = config.AI.Gemini.Model
		retries = config.AI.Gemini.MaxRetries
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, model, retries, logger)
	if err != nil {
		logger.Fatal("building gemini generator", zap.Error(err))
	}

	reply, err := generator.GenerateContent(ctx, "", "Reply with the single word: ok")
	if err != nil {
		logger.Fatal("gemini api call failed", zap.Error(err))
	}

	logger.Info("gemini api call succeeded",
		zap.String("model", generator.Model()),
		zap.String("reply", utils.TruncateForLog(reply, 64)),
	)
}
