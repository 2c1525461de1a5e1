package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/nihei9/jqlex/config"
	"github.com/nihei9/jqlex/diag"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	config  *string
	locale  *string
	format  *string
	verbose *bool
}{}

// env is set up before any subcommand runs.
var env = struct {
	cfg      *config.Config
	log      *slog.Logger
	renderer *diag.Renderer
}{}

var rootCmd = &cobra.Command{
	Use:   "jqlex",
	Short: "Check the lexical structure of JQL queries",
	Long: `jqlex tokenizes JQL queries and explains lexical errors:
- Reports the position and the offending text of an error.
- Prints the tokens of a query.
- Runs regression cases written in YAML.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setUp,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (YAML, or JSON by the .json extension)")
	rootFlags.locale = rootCmd.PersistentFlags().StringP("locale", "l", "", "language of messages, e.g. en or de (default from the config)")
	rootFlags.format = rootCmd.PersistentFlags().StringP("format", "f", "", "output format: text or json (default from the config)")
	rootFlags.verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func setUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(*rootFlags.config)
	if err != nil {
		return errors.Wrap(err, "cannot load the config")
	}
	if *rootFlags.locale != "" {
		cfg.Locale = *rootFlags.locale
	}
	if *rootFlags.format != "" {
		cfg.Format = *rootFlags.format
	}
	if *rootFlags.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	env.cfg = cfg
	env.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.Logging.Level),
	}))
	env.renderer = diag.NewRenderer(cfg.Locale)
	env.log.Debug("set up", "config", *rootFlags.config, "locale", env.renderer.Language().String(), "format", cfg.Format)
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func Execute() error {
	return rootCmd.Execute()
}
