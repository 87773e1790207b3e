// Package cli is the liencalc command tree: global flags, configuration and
// logger initialization, service wiring and output formatting.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/LienDeadline/internal/application/calculation"
	"github.com/turtacn/LienDeadline/internal/config"
	"github.com/turtacn/LienDeadline/internal/domain/calendar"
	"github.com/turtacn/LienDeadline/internal/domain/lien"
	"github.com/turtacn/LienDeadline/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LienDeadline/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputTable = "table"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Today        string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Engine       *lien.Engine
	Service      calculation.Service
	Metrics      prometheus.MetricsCollector // nil when metrics are disabled
	OutputFormat string
}

// NewRootCommand creates the root command with all global flags and
// subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "liencalc",
		Short: "Mechanics lien deadline calculator for the 50 US states and DC",
		Long: `liencalc computes preliminary notice and lien filing deadlines for
construction material suppliers, contractors and subcontractors.

Results are informational only and are not legal advice.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: environment and built-in defaults)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputText, "output format (text, json, table)")
	pf.StringVar(&opts.Today, "today", "", "reference date YYYY-MM-DD (default: today in engine.timezone)")

	cmd.AddCommand(
		newCalculateCmd(),
		newBatchCmd(),
		newJurisdictionsCmd(),
		newVersionCmd(),
	)
	return cmd
}

// persistentPreRun initializes config, logger and services, then stores the
// CLIContext on the command.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	format := strings.ToLower(opts.OutputFormat)
	switch format {
	case OutputText, OutputJSON, OutputTable:
	default:
		return errors.Newf(errors.ErrCodeBadRequest, "output format %q is not one of text, json, table", opts.OutputFormat).
			WithField("output")
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(cfg, opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	logging.SetDefault(logger)
	logger.Debug("configuration loaded", logging.String("config", cfg.String()))

	clock, err := initClock(cfg, opts)
	if err != nil {
		return err
	}

	engine, err := calculation.NewEngine(cfg.Engine, logger)
	if err != nil {
		return fmt.Errorf("engine initialization failed: %w", err)
	}

	var collector prometheus.MetricsCollector
	metrics := prometheus.NewNoopLienMetrics()
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: cfg.Metrics.Namespace}, logger)
		if err != nil {
			return fmt.Errorf("metrics initialization failed: %w", err)
		}
		metrics = prometheus.NewLienMetrics(collector)
	}

	svc, err := calculation.NewService(engine, clock, logger, metrics, calculation.ServiceConfig{
		BatchConcurrency: cfg.Batch.Concurrency,
		MaxBatchItems:    cfg.Batch.MaxItems,
	})
	if err != nil {
		return err
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		Engine:       engine,
		Service:      svc,
		Metrics:      collector,
		OutputFormat: format,
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

// initLogger creates a console logger on the configured output.  The
// --log-level flag wins over the configuration.
func initLogger(cfg *config.Config, opts *RootOptions) (logging.Logger, error) {
	logCfg := cfg.Log
	logCfg.Format = "console"
	if opts.LogLevel != "" {
		logCfg.Level = opts.LogLevel
	}
	return logging.NewLogger(logCfg)
}

// initClock pins the reference date when --today is set and otherwise reads
// the wall clock in the engine's timezone.
func initClock(cfg *config.Config, opts *RootOptions) (calculation.Clock, error) {
	if opts.Today != "" {
		today, err := calendar.ParseDate(opts.Today)
		if err != nil {
			return nil, errors.InvalidDate("today", opts.Today, err)
		}
		return calculation.FixedClock{Date: today}, nil
	}
	loc, err := cfg.Engine.Location()
	if err != nil {
		return nil, err
	}
	return calculation.SystemClock{Location: loc}, nil
}

// GetCLIContext extracts CLIContext from a command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Internal("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.Internal("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI with ctx; cancelling ctx stops pending batch
// items.
func ExecuteContext(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// ExitCode maps an Execute error to a process exit status: 0 on success, 2
// for rejected input and 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsClientError(errors.GetCode(err)):
		return 2
	default:
		return 1
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Output
// ─────────────────────────────────────────────────────────────────────────────

// PrintResult outputs data in the format selected by --output.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return printJSON(cmd, data)
	}

	switch cliCtx.OutputFormat {
	case OutputJSON:
		return printJSON(cmd, data)
	case OutputTable:
		return printTable(cmd, data)
	default:
		return printText(cmd, data)
	}
}

func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printText(cmd *cobra.Command, data interface{}) error {
	switch v := data.(type) {
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
	case fmt.Stringer:
		fmt.Fprint(cmd.OutOrStdout(), v.String())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}

// tableProvider is implemented by views that render as rows.
type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

func printTable(cmd *cobra.Command, data interface{}) error {
	if tp, ok := data.(tableProvider); ok {
		fmt.Fprint(cmd.OutOrStdout(), FormatTable(tp.TableHeaders(), tp.TableRows()))
		return nil
	}
	return printText(cmd, data)
}

// PrintError writes err to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, widths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
