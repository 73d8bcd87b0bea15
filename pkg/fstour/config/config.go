// Package config holds where a tour runs: the working directory, the assets
// it reads, and how it logs. Values come from defaults, env files, the
// process environment and CLI flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fstour/pkg/fstour"
)

// Environment keys understood by ApplyEnv.
const (
	EnvWorkDir        = "FSTOUR_WORKDIR"
	EnvAssetsDir      = "FSTOUR_ASSETS_DIR"
	EnvNotesFile      = "FSTOUR_NOTES_FILE"
	EnvNotesCopyFile  = "FSTOUR_NOTES_COPY_FILE"
	EnvTempDir        = "FSTOUR_TEMP_DIR"
	EnvRelativizeBase = "FSTOUR_RELATIVIZE_BASE"
	EnvLogLevel       = "FSTOUR_LOG_LEVEL"
	EnvSteps          = "FSTOUR_STEPS"
)

// Keys lists every environment key in a stable order.
var Keys = []string{
	EnvWorkDir,
	EnvAssetsDir,
	EnvNotesFile,
	EnvNotesCopyFile,
	EnvTempDir,
	EnvRelativizeBase,
	EnvLogLevel,
	EnvSteps,
}

// Config describes a tour run.
type Config struct {
	WorkDir        string
	AssetsDir      string
	NotesFile      string
	NotesCopyFile  string
	TempDir        string
	RelativizeBase string
	LogLevel       string
	Steps          []string
}

// Default returns the configuration of a plain run from the current
// directory.
func Default() Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = string(filepath.Separator)
	}
	base, err := os.UserHomeDir()
	if err != nil || base == "" {
		base = string(filepath.Separator)
	}
	return Config{
		WorkDir:        wd,
		AssetsDir:      "assets",
		NotesFile:      "notes.txt",
		NotesCopyFile:  "notes-copy.txt",
		RelativizeBase: base,
		LogLevel:       "warn",
	}
}

// ApplyEnv overlays any known, non-empty keys from env.
func (c *Config) ApplyEnv(env map[string]string) {
	set := func(key string, dst *string) {
		if v := strings.TrimSpace(env[key]); v != "" {
			*dst = v
		}
	}
	set(EnvWorkDir, &c.WorkDir)
	set(EnvAssetsDir, &c.AssetsDir)
	set(EnvNotesFile, &c.NotesFile)
	set(EnvNotesCopyFile, &c.NotesCopyFile)
	set(EnvTempDir, &c.TempDir)
	set(EnvRelativizeBase, &c.RelativizeBase)
	set(EnvLogLevel, &c.LogLevel)
	if v := strings.TrimSpace(env[EnvSteps]); v != "" {
		c.Steps = SplitList(v)
	}
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	var errs []error
	if !filepath.IsAbs(c.WorkDir) {
		errs = append(errs, fmt.Errorf("work dir must be absolute, got %q", c.WorkDir))
	}
	if !filepath.IsAbs(c.RelativizeBase) {
		errs = append(errs, fmt.Errorf("relativize base must be absolute, got %q", c.RelativizeBase))
	}
	if c.AssetsDir == "" {
		errs = append(errs, errors.New("assets dir must not be empty"))
	}
	if c.NotesFile == "" || c.NotesCopyFile == "" {
		errs = append(errs, errors.New("notes file names must not be empty"))
	}
	if _, err := fstour.LogLevelFromString(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err))
	}
	return errors.Join(errs...)
}
