package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFiles reads KEY=VALUE files into a map. Missing files are skipped;
// later files override earlier ones.
func LoadEnvFiles(filenames ...string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, name := range filenames {
		data, err := godotenv.Read(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("(config-godotenv) %w", err)
		}
		for k, v := range data {
			merged[k] = v
		}
	}
	return merged, nil
}

// ProcessEnv returns the known keys that are set in the process environment.
func ProcessEnv() map[string]string {
	env := make(map[string]string)
	for _, key := range Keys {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env
}

// Load returns defaults overlaid with the env files and then the process
// environment.
func Load(envFiles ...string) (Config, error) {
	cfg := Default()

	fileEnv, err := LoadEnvFiles(envFiles...)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(fileEnv)
	cfg.ApplyEnv(ProcessEnv())

	return cfg, nil
}
