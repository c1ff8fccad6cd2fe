// Package cli implements the margin-sim command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/careflow/margin-simulator/internal/calculation"
	"github.com/careflow/margin-simulator/internal/config"
	"github.com/careflow/margin-simulator/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	version string

	envFiles []string
	settings *config.Settings
	logger   *zap.Logger
	engine   *calculation.SimulationEngine
}

// NewCLIApp creates the CLI application. envFiles are the .env candidates read
// before the environment is parsed; none means ".env".
func NewCLIApp(version string, envFiles ...string) *CLIApp {
	app := &CLIApp{
		version:  version,
		envFiles: envFiles,
	}

	rootCmd := &cobra.Command{
		Use:               "margin-sim",
		Short:             "Contribution margin simulator for clinic procedures",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "margin-sim version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("catalog", "C", "", "Path to a YAML, JSON or TOML procedure catalog (default: embedded catalog)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: console or json")

	rootCmd.AddCommand(
		app.newProceduresCmd(),
		app.newShowCmd(),
		app.newSimulateCmd(),
		app.newCalculateCmd(),
		app.newBreakEvenCmd(),
		app.newServeCmd(),
		app.newCatalogCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args for the next Execute.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// SetOutput redirects standard and error output.
func (app *CLIApp) SetOutput(out, errOut io.Writer) {
	app.rootCmd.SetOut(out)
	app.rootCmd.SetErr(errOut)
}

// setup loads settings, applies flag overrides and builds the logger.
func (app *CLIApp) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(app.envFiles...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		settings.CatalogPath, _ = flags.GetString("catalog")
	}
	if flags.Changed("log-level") {
		settings.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		settings.LogFormat, _ = flags.GetString("log-format")
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return err
	}

	app.settings = settings
	app.logger = logger
	return nil
}

// loadEngine loads the configured catalog on first use.
func (app *CLIApp) loadEngine() (*calculation.SimulationEngine, error) {
	if app.engine != nil {
		return app.engine, nil
	}
	c, err := config.NewCatalogParser().Load(app.settings.CatalogPath)
	if err != nil {
		return nil, err
	}
	source := app.settings.CatalogPath
	if source == "" {
		source = "embedded"
	}
	app.logger.Debug("catalog loaded", zap.String("source", source), zap.Int("procedures", c.Len()))

	app.engine = calculation.NewSimulationEngine(c)
	app.engine.SetLogger(app.logger.Sugar())
	return app.engine, nil
}

func (app *CLIApp) out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
