package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/suhelali14/influencia-ai-bridge/internal/ai"
	"github.com/suhelali14/influencia-ai-bridge/internal/bridge"
	"github.com/suhelali14/influencia-ai-bridge/internal/logger"
	"github.com/suhelali14/influencia-ai-bridge/internal/secrets"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Read one bridge request from stdin and write the response to stdout",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// run is the main command for the bridge. Every outcome writes exactly one
// JSON document to stdout; logs go to stderr only.
func run() {
	ctx := context.Background()

	runFields := logger.StringFields(logger.StringField{
		Key:   logger.FieldRunID,
		Value: uuid.NewString(),
	})

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	logger = logger.With(runFields...)

	config, err := getConfig()
	if err != nil {
		bridge.EmitFailure(os.Stdout, bridge.KindConfig, err)
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the ai-bridge", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	apiKey, err := resolveAPIKey(config)
	if err != nil {
		bridge.EmitFailure(os.Stdout, bridge.KindConfig, err)
		logger.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	service, err := newService(ctx, config, apiKey, logger)
	if err != nil {
		bridge.EmitFailure(os.Stdout, bridge.KindConfig, err)
		logger.Fatal("building the ai service", zap.Error(err))
	}

	dispatcher := bridge.New(service, maxLogLength(config), logger)

	if err := dispatcher.Execute(ctx, os.Stdin, os.Stdout); err != nil {
		// The dispatcher has already written the error document.
		var failure *bridge.Failure
		if errors.As(err, &failure) {
			logger.Fatal("request failed",
				zap.String("error_type", string(failure.Kind)),
				zap.Error(failure.Err),
			)
		}

		logger.Fatal("request failed", zap.Error(err))
	}
}

// resolveAPIKey loads the Gemini credential. An empty result is allowed; the
// service then degrades to heuristic answers instead of failing.
func resolveAPIKey(config *Config) (string, error) {
	var value, file string

	if config != nil && config.AI != nil && config.AI.Gemini != nil {
		value = config.AI.Gemini.APIKey
		file = config.AI.Gemini.APIKeyFile
	}

	if strings.TrimSpace(file) == "" {
		file = strings.TrimSpace(viper.GetString("ai.gemini.api-key-file"))
	}

	return secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: value,
		File:  file,
		Env:   geminiAPIKeyEnv,
	})
}

func newService(ctx context.Context, config *Config, apiKey string, log *zap.Logger) (*ai.Service, error) {
	cfg := ai.Config{APIKey: apiKey}

	if config != nil && config.AI != nil {
		provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
		if provider != "" && provider != "gemini" {
			return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
		}

		if config.AI.Gemini != nil {
			cfg.Model = config.AI.Gemini.Model
			cfg.MaxRetries = config.AI.Gemini.MaxRetries
			cfg.MaxLogLength = config.AI.Gemini.MaxLogLength
		}
	}

	return ai.NewService(ctx, cfg, log)
}

func maxLogLength(config *Config) int {
	if config != nil && config.AI != nil && config.AI.Gemini != nil {
		return config.AI.Gemini.MaxLogLength
	}

	return 0
}
