package utils

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/arijiittt/kalp-airdrop/internal/logger"
)

// LoadEnvironment loads environment variables from .env files, first from
// the current directory and then from the directory of the executable.
// Variables already present in the environment always win.
func LoadEnvironment() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found in current directory: %v", err)
	} else {
		logger.Info("Loaded .env file from current directory")
	}

	execPath, err := os.Executable()
	if err != nil {
		logger.Debug("Could not determine executable path: %v", err)
		return
	}

	execDir := filepath.Dir(execPath)
	envPath := filepath.Join(execDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		logger.Debug("No .env file found in app directory (%s): %v", execDir, err)
	} else {
		logger.Info("Loaded .env file from app directory: %s", execDir)
	}
}
