package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raptor-dev/raptor/internal/config"
	"github.com/raptor-dev/raptor/internal/errors"
	"github.com/raptor-dev/raptor/internal/logging"
	"github.com/raptor-dev/raptor/pkg/engine"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every command needs once flags are parsed.
type app struct {
	configDir string
	noColor   bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "raptor",
		Short: "Build and render component tree documents",
		Long: `Raptor builds declarative component trees into HTML.

A tree document declares components and a root element in YAML
or JSON. Raptor resolves the components, mounts the tree and
serializes it, either once, over HTTP, or into an S3 bucket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configDir, "config", "c", ".", "Directory containing "+config.ConfigFileName)
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		renderCmd(a),
		serveCmd(a),
		publishCmd(a),
		versionCmd(),
	)
	return rootCmd
}

// setup loads the configuration with flag overrides and installs the
// engine logger.
func (a *app) setup(stderr io.Writer, overrides map[string]any) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(a.configDir, overrides)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return nil, nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	engine.SetLogger(logger)
	return cfg, logger, nil
}

// override records a flag value when the user set it explicitly.
func override(cmd *cobra.Command, overrides map[string]any, flag, key string, value any) {
	if cmd.Flags().Changed(flag) {
		overrides[key] = value
	}
}

var green = color.New(color.FgGreen).SprintFunc()

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}
