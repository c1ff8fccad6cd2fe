package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/careflow/margin-simulator/internal/calculation"
	"github.com/careflow/margin-simulator/internal/config"
	"github.com/careflow/margin-simulator/internal/domain"
	"github.com/careflow/margin-simulator/internal/output"
	"github.com/careflow/margin-simulator/internal/server"
	"github.com/spf13/cobra"
)

func (app *CLIApp) newProceduresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "procedures [search term]",
		Aliases: []string{"list", "ls"},
		Short:   "List catalog procedures, optionally filtered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := app.loadEngine()
			if err != nil {
				return err
			}
			page, _ := cmd.Flags().GetInt("page")
			perPage := app.settings.PageSize
			if cmd.Flags().Changed("per-page") {
				perPage, _ = cmd.Flags().GetInt("per-page")
			}

			text, err := output.RenderCatalogPage(engine.Catalog.Paginate(strings.Join(args, " "), page, perPage))
			if err != nil {
				return err
			}
			printf(app.out(cmd), "%s", text)
			return nil
		},
	}
	cmd.Flags().IntP("page", "p", 1, "Page number (1-based)")
	cmd.Flags().Int("per-page", 0, "Procedures per page (default from MARGIN_PAGE_SIZE)")
	return cmd
}

func (app *CLIApp) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <procedure-id>",
		Short: "Show a procedure and its per-session cost breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			engine, err := app.loadEngine()
			if err != nil {
				return err
			}
			proc, err := engine.Catalog.Find(id)
			if err != nil {
				return err
			}
			text, err := output.RenderProcedure(proc, calculation.CostBreakdown(proc))
			if err != nil {
				return err
			}
			printf(app.out(cmd), "%s", text)
			return nil
		},
	}
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format: %s (default from MARGIN_OUTPUT_FORMAT)",
		strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringP("output", "o", "", "Write the report to this file")
	cmd.Flags().StringP("dir", "d", ".", "Directory for timestamped report files")
}

func (app *CLIApp) newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <procedure-id>",
		Short: "Simulate a catalog procedure, optionally overriding price and sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			engine, err := app.loadEngine()
			if err != nil {
				return err
			}

			var o calculation.Overrides
			if cmd.Flags().Changed("price") {
				price, _ := cmd.Flags().GetFloat64("price")
				o.SessionPrice = &price
			}
			if cmd.Flags().Changed("sessions") {
				sessions, _ := cmd.Flags().GetInt("sessions")
				o.Sessions = &sessions
			}

			report, err := engine.Simulate(id, o)
			if err != nil {
				return app.reportFailure(cmd, err)
			}
			return app.writeReport(cmd, report)
		},
	}
	cmd.Flags().Float64("price", 0, "Price per session (default: procedure's suggested price)")
	cmd.Flags().Int("sessions", 0, "Number of sessions (default: procedure's session count)")
	addReportFlags(cmd)
	return cmd
}

func (app *CLIApp) newCalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate margins for a free-form input without the catalog",
		Example: "  margin-sim calculate --price 100 --sessions 10 --minutes 30 --professional 20 \\\n" +
			"    --consumable \"Máscara calmante=10\"",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			raw, _ := flags.GetStringArray("consumable")
			consumables, err := parseConsumables(raw)
			if err != nil {
				return err
			}
			in := domain.SimulationInput{Consumables: consumables}
			in.SessionPrice, _ = flags.GetFloat64("price")
			in.Sessions, _ = flags.GetInt("sessions")
			in.SessionMinutes, _ = flags.GetFloat64("minutes")
			in.ProfessionalCostPerSession, _ = flags.GetFloat64("professional")
			name, _ := flags.GetString("name")

			engine := calculation.NewSimulationEngine(nil)
			engine.SetLogger(app.logger.Sugar())
			report, err := engine.CalculateReport(name, in)
			if err != nil {
				return app.reportFailure(cmd, err)
			}
			return app.writeReport(cmd, report)
		},
	}
	cmd.Flags().Float64("price", 0, "Price per session")
	cmd.Flags().Int("sessions", 0, "Number of sessions")
	cmd.Flags().Float64("minutes", 0, "Duration of one session in minutes")
	cmd.Flags().Float64("professional", 0, "Professional cost per session")
	cmd.Flags().StringArray("consumable", nil, "Consumable as name=value (repeatable)")
	cmd.Flags().String("name", "Simulação avulsa", "Label for the report")
	addReportFlags(cmd)
	return cmd
}

func (app *CLIApp) newBreakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven <procedure-id>",
		Short: "Show the break-even session price and the price for a target margin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			engine, err := app.loadEngine()
			if err != nil {
				return err
			}
			proc, err := engine.Catalog.Find(id)
			if err != nil {
				return err
			}
			targetPercent, _ := cmd.Flags().GetFloat64("target")
			target, err := engine.BreakEven(id, targetPercent)
			if err != nil {
				return err
			}

			breakEven, err := output.FormatCurrency(calculation.BreakEvenPrice(proc.Seed()))
			if err != nil {
				return err
			}
			price, err := output.FormatCurrency(target.SessionPrice)
			if err != nil {
				return err
			}
			pct, err := output.FormatPercentage(target.TargetPercent)
			if err != nil {
				return err
			}
			margin, err := output.FormatCurrency(target.Result.ContributionMargin)
			if err != nil {
				return err
			}

			w := app.out(cmd)
			printf(w, "%s\n", proc.Name)
			printf(w, "Preço de equilíbrio por sessão: %s\n", breakEven)
			printf(w, "Preço para margem de %s: %s (margem total %s em %d sessões)\n",
				pct, price, margin, proc.Sessions)
			return nil
		},
	}
	cmd.Flags().Float64P("target", "t", 30, "Target contribution margin percentage per session")
	return cmd
}

func (app *CLIApp) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator as a JSON HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := app.loadEngine()
			if err != nil {
				return err
			}
			addr := app.settings.HTTPAddr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(engine, app.logger, app.settings.PageSize).Run(ctx, addr)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default from MARGIN_HTTP_ADDR)")
	return cmd
}

func (app *CLIApp) newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and export procedure catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write the active catalog to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := app.loadEngine()
			if err != nil {
				return err
			}
			if err := config.SaveCatalog(engine.Catalog.All(), args[0]); err != nil {
				return fmt.Errorf("failed to export catalog: %w", err)
			}
			printf(app.out(cmd), "%d procedimentos exportados para %s\n", engine.Catalog.Len(), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Parse and validate a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.NewCatalogParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			printf(app.out(cmd), "%s: %d procedimentos válidos\n", args[0], c.Len())
			return nil
		},
	})
	return cmd
}

// writeReport renders report in the selected format. Console output goes to
// stdout; file formats print the written path.
func (app *CLIApp) writeReport(cmd *cobra.Command, report *domain.SimulationReport) error {
	format := app.settings.OutputFormat
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}
	path, _ := cmd.Flags().GetString("output")
	dir, _ := cmd.Flags().GetString("dir")

	written, err := output.GenerateReport(app.out(cmd), report, format, dir, path)
	if err != nil {
		return err
	}
	if written != "" {
		printf(app.out(cmd), "Relatório salvo em %s\n", written)
	}
	return nil
}

// reportFailure shows the empty-state placeholder for invalid inputs before
// returning the error.
func (app *CLIApp) reportFailure(cmd *cobra.Command, err error) error {
	if errors.Is(err, calculation.ErrInvalidInput) {
		_ = output.WritePlaceholder(app.out(cmd), err)
	}
	return err
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid procedure id %q: must be an integer", s)
	}
	return id, nil
}

// parseConsumables reads "name=value" pairs. Values accept a comma decimal separator.
func parseConsumables(raw []string) ([]domain.Consumable, error) {
	out := make([]domain.Consumable, 0, len(raw))
	for _, r := range raw {
		i := strings.LastIndex(r, "=")
		if i <= 0 {
			return nil, fmt.Errorf("invalid consumable %q: expected name=value", r)
		}
		name := strings.TrimSpace(r[:i])
		value, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(r[i+1:]), ",", ".", 1), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid consumable %q: %w", r, err)
		}
		out = append(out, domain.Consumable{Name: name, Value: value})
	}
	return out, nil
}
