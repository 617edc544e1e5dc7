// Package cmd implements the logsweep command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yokitheyo/logsweep/internal/config"
	"github.com/yokitheyo/logsweep/internal/logging"
	"github.com/yokitheyo/logsweep/internal/output"
	"github.com/yokitheyo/logsweep/internal/server"
	"github.com/yokitheyo/logsweep/internal/service"
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
}

// NewRootCmd builds the command tree. Flags may also be set through
// LOGSWEEP_* environment variables, e.g. LOGSWEEP_LOG_LEVEL=debug.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "logsweep",
		Short: "Search, count, archive and prune rotated log files",
		Long: `logsweep scans directory trees of rotated log files. It searches lines,
counts repeated lines, filters files by size or modification date, and
archives or deletes the files of a date range.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "config.yaml", "config file (.yaml, .yml or .toml)")
	flags.StringP("output", "o", "text", "output format: text, json")
	flags.String("log-level", "", "log level: debug, info, warn, error (default from config)")
	flags.String("pattern", "", "log file name pattern (default from config)")

	_ = a.v.BindPFlags(flags)
	a.v.SetEnvPrefix("LOGSWEEP")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.searchCmd(),
		a.searchDirCmd(),
		a.countCmd(),
		a.countDuplicatesCmd(),
		a.totalCmd(),
		a.bySizeCmd(),
		a.deleteCmd(),
		a.archiveCmd(),
		a.serveCmd(),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// settings merges the config file with flag and environment overrides.
func (a *app) settings() (*config.Config, error) {
	cfg, err := config.LoadConfig(a.v.GetString("config"))
	if err != nil {
		return nil, err
	}
	if p := a.v.GetString("pattern"); p != "" {
		cfg.Scan.Pattern = p
	}
	if l := a.v.GetString("log-level"); l != "" {
		cfg.Logging.Level = l
	}
	return cfg, cfg.Validate()
}

func (a *app) logger(cfg *config.Config) *slog.Logger {
	return logging.New(a.stderr, cfg.Logging.Format, logging.LevelFromString(cfg.Logging.Level))
}

func (a *app) engine() (*service.Engine, error) {
	cfg, err := a.settings()
	if err != nil {
		return nil, err
	}
	return server.NewEngine(cfg, a.logger(cfg))
}

func (a *app) renderer() output.Renderer {
	return output.New(a.v.GetString("output"), a.stdout)
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the operations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.settings()
			if err != nil {
				return err
			}
			return server.Run(cfg, a.logger(cfg))
		},
	}
}
