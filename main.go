package main

import (
	"os"

	// Loads a local .env file before viper reads the environment.
	_ "github.com/joho/godotenv/autoload"

	"github.com/suhelali14/influencia-ai-bridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
