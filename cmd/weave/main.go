// Command weave runs the sample components on an in-memory host, with an
// optional HTTP inspector, and writes HTML snapshots of them.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/weave/internal/config"
	"github.com/vango-dev/weave/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦ ╦┌─┐┌─┐┬  ┬┌─┐
  ║║║├┤ ├─┤└┐┌┘├┤
  ╚╩╝└─┘┴ ┴ └┘ └─┘
`

// skipConfig marks commands that run without loading weave.yaml.
const skipConfig = "weave/skip-config"

func main() {
	if os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stderr) {
		errors.DisableColors()
	}
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// app is the state shared by every command.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "weave",
		Short: "A minimal reactive UI engine",
		Long: `Weave renders component trees onto a host document and keeps
the document in sync as component state changes.

The weave command drives the sample components on an in-memory
document. Use "weave run" with the inspector enabled to look at the
live tree, dispatch events and watch render passes, or "weave snapshot"
to save the rendered HTML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.noColor {
				errors.DisableColors()
			}
			if cmd.Annotations[skipConfig] != "" {
				return nil
			}
			return a.load(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to weave.yaml (default: nearest one above the working directory)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text, json")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		runCmd(a),
		snapshotCmd(a),
		componentsCmd(a),
		explainCmd(),
		initCmd(),
		versionCmd(),
	)

	return rootCmd
}

// load reads the configuration, applies flag overrides and builds the
// logger.
func (a *app) load(logOut io.Writer) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		a.cfg.Log.Format = a.logFormat
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.logger = newLogger(logOut, a.cfg)
	return nil
}

// newLogger builds the slog handler selected by the log section.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level, _ := cfg.LogLevel()
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.Log.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("app", cfg.App.Name)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
