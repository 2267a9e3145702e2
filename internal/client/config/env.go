package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/useradmin/internal/flagx"
)

const defaultEnvFile = ".env"

// loadDotenv exports variables from the dotenv file into the process
// environment. A missing default file is not an error; a missing file that
// was requested explicitly is.
func loadDotenv(args []string) error {
	path := flagx.EnvFile(args, defaultEnvFile)

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && path == defaultEnvFile {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// parseEnv overlays cfg with USERADMIN_* variables that are set.
func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
