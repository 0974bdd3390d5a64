package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DotEnvFiles are read by LoadDotEnv in order; earlier files win because
// godotenv never overrides a variable that is already set.
var DotEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads every file in DotEnvFiles that exists. Missing files are
// skipped; any other read or parse failure is returned.
func LoadDotEnv() error {
	return loadDotEnv(DotEnvFiles...)
}

func loadDotEnv(files ...string) error {
	var errs []error
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("load %s: %w", f, err))
		}
	}
	return errors.Join(errs...)
}
