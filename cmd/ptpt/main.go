package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	loadLocalEnv()

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadLocalEnv picks up a .env in the working directory when present,
// so PTPT_* overrides can live next to a test setup.
func loadLocalEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
}
