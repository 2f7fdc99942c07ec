package config

import "github.com/joho/godotenv"

// loadDotEnv reads a .env file from the working directory when present.
// Variables already set in the environment take precedence.
func loadDotEnv() {
	_ = godotenv.Load()
}
