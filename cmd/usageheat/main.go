// Package main provides the CLI entrypoint for usageheat.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/usageheat/internal/config"
	"github.com/verte-zerg/usageheat/internal/generator"
	"github.com/verte-zerg/usageheat/internal/model"
	"github.com/verte-zerg/usageheat/internal/stats"
	"github.com/verte-zerg/usageheat/internal/statsui"
)

const (
	defaultFacility  = string(model.FacilityAll)
	defaultTier      = string(model.TierAll)
	defaultTimeframe = string(model.TimeframeWeek)
	defaultSeed      = 0
	defaultNoise     = generator.DefaultNoise
)

var (
	filterFacility  string
	filterTier      string
	filterTimeframe string
	genSeed         int64
	genNoise        float64
	verbose         bool

	gridColor     bool
	summaryCharts bool
	summaryWidth  int
)

// runOptions is the resolved command-line and config-file state.
type runOptions struct {
	filter model.FilterState
	seed   int64
	noise  float64
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "usageheat",
		Short:         "Facility usage heatmap dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		setLogLevel(verbose)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&filterFacility, "facility", defaultFacility, "facility filter (all or a facility name)")
	flags.StringVar(&filterTier, "tier", defaultTier, "member tier filter (all or a tier name)")
	flags.StringVar(&filterTimeframe, "timeframe", defaultTimeframe, "reporting period (week, month, quarter)")
	flags.Int64Var(&genSeed, "seed", defaultSeed, "generator seed (0 picks a time-based seed)")
	flags.Float64Var(&genNoise, "noise", defaultNoise, "noise amplitude added to each usage score (0-10)")
	flags.BoolVar(&verbose, "verbose", false, "log debug diagnostics to stderr")

	rootCmd.AddCommand(newGridCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newInsightsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	regen := func() []model.UsageFact {
		return generator.New(opts.noise).Generate()
	}
	facts := generator.NewSeeded(opts.seed, opts.noise).Generate()
	dashboard := statsui.NewModel(facts, opts.filter, regen)
	program := tea.NewProgram(dashboard, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newGridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the day x hour usage heatmap",
		Args:  cobra.NoArgs,
		RunE:  runGridCmd,
	}
	cmd.Flags().BoolVar(&gridColor, "color", false, "force colored cells")
	return cmd
}

func runGridCmd(cmd *cobra.Command, _ []string) error {
	report, err := buildReport(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := writeFilterLine(out, report.Filter); err != nil {
		return err
	}
	useColor := gridColor || isTerminal(out)
	if os.Getenv("NO_COLOR") != "" {
		useColor = false
	}
	if err := stats.RenderGrid(out, report.Views.Grid[:], useColor); err != nil {
		return fmt.Errorf("failed to render grid: %w", err)
	}
	return nil
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print hourly, daily, facility and tier summaries",
		Args:  cobra.NoArgs,
		RunE:  runSummaryCmd,
	}
	cmd.Flags().BoolVar(&summaryCharts, "charts", false, "include bar charts")
	cmd.Flags().IntVar(&summaryWidth, "width", 0, "chart width (0 uses the terminal width)")
	return cmd
}

func runSummaryCmd(cmd *cobra.Command, _ []string) error {
	if summaryWidth < 0 {
		return fmt.Errorf("--width must be >= 0")
	}
	report, err := buildReport(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := writeFilterLine(out, report.Filter); err != nil {
		return err
	}
	if err := stats.RenderSummary(out, report.Views); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if !summaryCharts {
		return nil
	}
	if err := stats.RenderChartsWithSize(out, report.Views, summaryWidth, false); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}

func newInsightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Print peak hours, boosts and busiest slots",
		Args:  cobra.NoArgs,
		RunE:  runInsightsCmd,
	}
}

func runInsightsCmd(cmd *cobra.Command, _ []string) error {
	report, err := buildReport(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := writeFilterLine(out, report.Filter); err != nil {
		return err
	}
	alert := stats.AlertFor(time.Now().Hour())
	if err := stats.RenderInsights(out, report.Insights, report.Views.Grid[:], alert); err != nil {
		return fmt.Errorf("failed to render insights: %w", err)
	}
	if report.Insights.FactCount > 0 {
		if _, err := fmt.Fprintf(out, "Hourly trend: %s\n", stats.HourlySparkline(report.Views.Hourly[:])); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	created, err := config.WriteDefaultConfig(path)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("path", path).Msg("Wrote default config")
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func buildReport(cmd *cobra.Command) (stats.Report, error) {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return stats.Report{}, err
	}
	facts := generator.NewSeeded(opts.seed, opts.noise).Generate()
	report, err := stats.BuildReport(facts, opts.filter)
	if err != nil {
		return stats.Report{}, fmt.Errorf("failed to aggregate usage: %w", err)
	}
	log.Debug().
		Int("facts", len(facts)).
		Int("selected", report.Insights.FactCount).
		Str("facility", string(opts.filter.Facility)).
		Str("tier", string(opts.filter.MemberTier)).
		Msg("Aggregated usage")
	return report, nil
}

// resolveOptions layers config file values under explicitly set flags.
func resolveOptions(cmd *cobra.Command) (runOptions, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return runOptions{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "facility", &filterFacility, fileCfg.Filter.Facility)
	applyStringConfig(cmd, "tier", &filterTier, fileCfg.Filter.Tier)
	applyStringConfig(cmd, "timeframe", &filterTimeframe, fileCfg.Filter.Timeframe)
	applyInt64Config(cmd, "seed", &genSeed, fileCfg.Generator.Seed)
	applyFloatConfig(cmd, "noise", &genNoise, fileCfg.Generator.Noise)

	opts, err := parseOptions(filterFacility, filterTier, filterTimeframe, genSeed, genNoise)
	if err != nil {
		return runOptions{}, err
	}
	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
		log.Debug().Int64("seed", opts.seed).Msg("Using time-based seed")
	}
	return opts, nil
}

func parseOptions(facility, tier, timeframe string, seed int64, noise float64) (runOptions, error) {
	parsedFacility, err := model.ParseFacility(facility)
	if err != nil {
		return runOptions{}, fmt.Errorf("invalid --facility value: %w", err)
	}
	parsedTier, err := model.ParseTier(tier)
	if err != nil {
		return runOptions{}, fmt.Errorf("invalid --tier value: %w", err)
	}
	parsedTimeframe, err := model.ParseTimeframe(timeframe)
	if err != nil {
		return runOptions{}, fmt.Errorf("invalid --timeframe value: %w", err)
	}
	opts := runOptions{
		filter: model.FilterState{
			Facility:   parsedFacility,
			MemberTier: parsedTier,
			Timeframe:  parsedTimeframe,
		},
		seed:  seed,
		noise: noise,
	}
	if err := validateOptions(opts); err != nil {
		return runOptions{}, err
	}
	return opts, nil
}

func validateOptions(opts runOptions) error {
	if opts.noise < 0 || opts.noise > generator.DefaultNoise {
		return fmt.Errorf("--noise must be between 0 and %.0f", generator.DefaultNoise)
	}
	if opts.seed < 0 {
		return fmt.Errorf("--seed must be >= 0")
	}
	return nil
}

func writeFilterLine(w io.Writer, filter model.FilterState) error {
	_, err := fmt.Fprintf(w, "Facility: %s  Tier: %s  Period: %s\n\n", filter.Facility, filter.MemberTier, filter.Timeframe.Label())
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func setLogLevel(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
