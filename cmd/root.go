package cmd

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suhelali14/influencia-ai-bridge/internal/bridge"
)

const (
	app = "ai-bridge"

	geminiAPIKeyEnv = "GEMINI_API_KEY"
)

type Config struct {
	AI *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	// The json tag keeps the credential out of the config debug dump.
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ai-bridge is a single-shot matching sidecar: it reads one JSON request from stdin and writes one JSON response to stdout",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ai-bridge.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is needed only for the run and check commands.
	if runCmd.CalledAs() == "" && checkCmd.CalledAs() == "" {
		return
	}

	if err := loadConfigFile(); err != nil {
		// The run command owes its caller a response document on stdout for
		// every outcome, config failures included.
		if runCmd.CalledAs() != "" {
			bridge.EmitFailure(os.Stdout, bridge.KindConfig, err)
		}

		log.Fatal(err)
	}
}

// loadConfigFile reads the config file into viper. An explicitly requested
// file must parse; the default ai-bridge.yaml may be absent. The default
// search only considers files with a supported config extension, never the
// bare app name.
func loadConfigFile() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		return viper.ReadInConfig()
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)

	// A missing default config is fine: the bridge can run entirely from
	// environment variables.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	return nil
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
