package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/akrisanov/docstring-verifier/internal/slogutil"
	"github.com/akrisanov/docstring-verifier/internal/version"
)

var (
	// repoRootFlag is the CLI --repo-root flag value
	repoRootFlag string

	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "dsv",
	Short: "DSV - Docstring Verifier",
	Long: `DSV (Docstring Verifier) statically checks Python docstrings against
function signatures and bodies: parameters, types, optionality, returns,
yields, raised exceptions, and undocumented side effects.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("dsv version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoRootFlag, "repo-root", ".",
		"Repository root (location of the .dsv directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default from config)")
}

// newLogger builds the process logger from the CLI flag, env var, and
// config value. Precedence: --log-level > DSV_LOG_LEVEL > config.
func newLogger(configLevel string) *slog.Logger {
	level := configLevel
	if env := os.Getenv("DSV_LOG_LEVEL"); env != "" {
		level = env
	}
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return slogutil.NewLogger(os.Stderr, slogutil.LevelFromString(level))
}
