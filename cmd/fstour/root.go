package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/fstour/pkg/fstour"
	"github.com/arthur-debert/fstour/pkg/fstour/config"
	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fstour",
		Short: "A guided tour of everyday filesystem operations",
		Long: `fstour walks through common filesystem operations against an assets
directory: paths and metadata, content comparison, temp entries, writes and
reads, listings, moves and recursive deletion. Each step prints what it did.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringSlice("env-file", []string{".env"}, "env files to read FSTOUR_* settings from")
	flags.String("workdir", "", "directory the tour runs in (default is the current directory)")
	flags.String("assets-dir", "", "assets directory, relative to the workdir")
	flags.String("temp-dir", "", "where temp entries are created (default is the system temp dir)")
	flags.String("relativize-base", "", "absolute base the paths step relativizes against")
	flags.String("log-level", "", "log level: trace, debug, info, warn or error")

	cmd.AddCommand(newVersionCommand())

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newStepsCommand())
	cmd.AddCommand(newStatCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newRemoveTreeCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of fstour`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fstour version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// loadConfig layers flags over the environment, the env files and the
// defaults, then validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	envFiles, err := flags.GetStringSlice("env-file")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return cfg, err
	}

	overrides := map[string]*string{
		"workdir":         &cfg.WorkDir,
		"assets-dir":      &cfg.AssetsDir,
		"temp-dir":        &cfg.TempDir,
		"relativize-base": &cfg.RelativizeBase,
		"log-level":       &cfg.LogLevel,
	}
	for name, dst := range overrides {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return cfg, err
		}
		*dst = v
	}
	if flags.Changed("workdir") {
		abs, err := filepath.Abs(cfg.WorkDir)
		if err != nil {
			return cfg, fmt.Errorf("failed to resolve workdir: %w", err)
		}
		cfg.WorkDir = abs
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup returns the configuration, a filesystem rooted at its workdir and a
// logger writing to the command's stderr.
func setup(cmd *cobra.Command) (config.Config, *filesystem.OSFileSystem, zerolog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, nil, zerolog.Nop(), err
	}
	level, err := fstour.LogLevelFromString(cfg.LogLevel)
	if err != nil {
		return cfg, nil, zerolog.Nop(), err
	}
	logger := fstour.NewLogger(cmd.ErrOrStderr(), level)
	return cfg, filesystem.NewOSFileSystem(cfg.WorkDir), logger, nil
}
