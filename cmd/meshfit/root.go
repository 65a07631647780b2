package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/chazu/meshfit/pkg/config"
	"github.com/chazu/meshfit/pkg/logging"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds global CLI flags.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// cliContext carries initialized dependencies through the command tree.
type cliContext struct {
	Config *config.Config
	Logger logging.Logger
}

type cliContextKey struct{}

var errNoContext = errors.New("meshfit: command context not initialized")

// newRootCommand creates the root command with its global flags and
// subcommands.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "meshfit",
		Short: "Fit bounding spheres to scenes and point clouds",
		Long: `meshfit evaluates scene descriptions written in a small Lisp dialect,
tessellates them, and computes an approximate minimum enclosing sphere of
the resulting geometry and any extra point clouds.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if cc, err := getCLIContext(cmd); err == nil {
				_ = cc.Logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (YAML)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format (console, json)")

	cmd.AddCommand(newSphereCommand(), newVersionCommand())
	return cmd
}

// persistentPreRun loads configuration, applies flag overrides, and builds
// the logger.
func persistentPreRun(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, &cliContext{Config: cfg, Logger: log}))
	return nil
}

// getCLIContext extracts the cliContext installed by persistentPreRun.
func getCLIContext(cmd *cobra.Command) (*cliContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errNoContext
	}
	cc, ok := ctx.Value(cliContextKey{}).(*cliContext)
	if !ok || cc == nil {
		return nil, errNoContext
	}
	return cc, nil
}
