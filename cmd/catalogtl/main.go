// Command catalogtl translates the customer-facing columns of a product
// catalog export.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"

	"github.com/ZaguanLabs/catalogtl"
	"github.com/ZaguanLabs/catalogtl/cache"
	"github.com/ZaguanLabs/catalogtl/classify"
	"github.com/ZaguanLabs/catalogtl/config"
	"github.com/ZaguanLabs/catalogtl/dialect"
	"github.com/ZaguanLabs/catalogtl/internal/logging"
	"github.com/ZaguanLabs/catalogtl/processor"
	"github.com/ZaguanLabs/catalogtl/provider"
	"github.com/ZaguanLabs/catalogtl/table"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = catalogtl.Version
	commit    = catalogtl.GitCommit
	buildDate = catalogtl.BuildDate
)

var (
	heading = color.New(color.Bold, color.FgCyan).SprintFunc()
	good    = color.New(color.FgGreen).SprintFunc()
	warn    = color.New(color.Bold, color.FgYellow).SprintFunc()
)

// providerFactory builds the translation backend from configuration.
type providerFactory func(cfg *config.Config) (catalogtl.Provider, error)

type options struct {
	in, out            string
	targetLang         string
	estimate           bool
	onlyCols           string
	categoryContains   string
	categoryColumn     string
	limitRows          int
	sep                string
	encoding           string
	excludeIngredients bool
	includeIngredients bool
	keepSep            bool
	backend            string
	jsonOut            bool
	quiet              bool
	showVersion        bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	return runWith(args, stdout, stderr, newProvider)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var o options
	fs := pflag.NewFlagSet("catalogtl", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.in, "in", "", "Input catalog export (CSV)")
	fs.StringVar(&o.out, "out", "", "Output file for the translated catalog")
	fs.StringVar(&o.targetLang, "to", "HU", "Target language (e.g. HU, DE, EN-GB, PT-BR, 'german')")
	fs.StringVar(&o.targetLang, "target-lang", "HU", "Alias for --to")
	fs.BoolVar(&o.estimate, "estimate", false, "Only report the characters that would be sent, per column")
	fs.StringVar(&o.onlyCols, "only-cols", "", "Comma-separated columns to translate (overrides all rules)")
	fs.StringVar(&o.categoryContains, "category-contains", "", "Translate only rows whose category contains this text (case-insensitive)")
	fs.StringVar(&o.categoryColumn, "category-column", table.DefaultFilterColumn, "Column inspected by --category-contains")
	fs.IntVar(&o.limitRows, "limit-rows", 0, "Translate at most this many rows (0 = all)")
	fs.StringVar(&o.sep, "sep", "", "Delimiter override (e.g. ',' ';' '\\t' '|')")
	fs.StringVar(&o.encoding, "encoding", "", "Encoding override (e.g. 'utf-8-sig', 'cp1250')")
	fs.BoolVar(&o.excludeIngredients, "exclude-ingredients", false, "Do not translate ingredient columns")
	fs.BoolVar(&o.includeIngredients, "include-ingredients", false, "Deprecated: ingredient columns are translated by default")
	fs.BoolVar(&o.keepSep, "keep-sep", false, "Write the output with the input delimiter instead of a comma")
	fs.StringVar(&o.backend, "backend", "", "Translation backend: deepl or openai (default: CATALOGTL_BACKEND)")
	fs.BoolVar(&o.jsonOut, "json", false, "Print the estimate or run summary as JSON")
	fs.BoolVar(&o.quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&o.showVersion, "version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &o, nil
}

func runWith(args []string, stdout, stderr io.Writer, factory providerFactory) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if o.showVersion {
		fmt.Fprintf(stdout, "%s %s\n", catalogtl.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	if o.in == "" {
		return fmt.Errorf("--in is required")
	}
	if o.out == "" && !o.estimate {
		return fmt.Errorf("--out is required")
	}

	targetLang, err := catalogtl.NormalizeLanguage(o.targetLang)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.backend != "" {
		cfg.Backend = strings.ToLower(o.backend)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.LogLevel
	if o.quiet {
		level = "warn"
	}
	logger, runID := logging.WithRun(logging.Setup(level, cfg.LogFormat, stderr))

	if _, err := os.Stat(o.in); err != nil {
		return fmt.Errorf("input file does not exist: %s", o.in)
	}

	delim, err := dialect.ParseDelimiter(o.sep)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(o.in) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	d, err := dialect.Sniff(raw, dialect.Options{Encoding: o.encoding, Delimiter: delim})
	if err != nil {
		return fmt.Errorf("%w (try --sep ';' or --sep '\\t' and/or --encoding utf-8 or cp1250)", err)
	}
	tbl, err := table.Load(raw, d)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded",
		"file", o.in,
		"dialect", d.String(),
		"rows", tbl.Len(),
		"columns", tbl.Width())

	filter := table.Filter{Column: o.categoryColumn, Contains: o.categoryContains, Limit: o.limitRows}
	if filter.ColumnMissing(tbl) {
		logger.Warn("filter column not found, translating every row", "column", o.categoryColumn)
	}
	rows := table.Select(tbl, filter)
	if o.categoryContains != "" || o.limitRows > 0 {
		logger.Info("rows selected", "selected", len(rows), "rows", tbl.Len())
	}

	if o.includeIngredients {
		logger.Info("--include-ingredients has no effect, ingredient columns are translated by default")
	}

	roles := classify.Classify(tbl.Keys(), classify.Options{
		Only:               splitList(o.onlyCols),
		ExcludeIngredients: o.excludeIngredients,
	})

	if !o.quiet && !o.jsonOut {
		reportColumns(stderr, targetLang, roles)
	}

	if o.estimate {
		return printEstimate(stdout, o.jsonOut, targetLang, d, catalogtl.Estimate(tbl, rows, roles))
	}

	writeOpts := table.WriteOptions{}
	if o.keepSep {
		writeOpts.Delimiter = d.Delimiter
	}

	if len(roles.Translatable()) == 0 {
		logger.Warn("no translatable columns found, copying input through; check the column names or --only-cols")
		if err := table.WriteFile(o.out, tbl, writeOpts); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	p, err := factory(cfg)
	if err != nil {
		return err
	}
	p = catalogtl.NewRateLimitedProvider(p, cfg.RateLimitConfig())

	translatorOpts := []catalogtl.TranslatorOption{
		catalogtl.WithCache(cache.NewInMemoryCache()),
		catalogtl.WithBatchLimits(cfg.BatchLimits()),
		catalogtl.WithRetryConfig(cfg.RetryConfig()),
		catalogtl.WithLogger(logger),
	}
	if !o.quiet {
		var bar *progressbar.ProgressBar
		translatorOpts = append(translatorOpts, catalogtl.WithProgress(func(done, total int, b *catalogtl.Batch) {
			if bar == nil {
				bar = newProgressBar(stderr, total, targetLang)
			}
			_ = bar.Set(done)
		}))
	}
	translator := catalogtl.NewTranslator(targetLang, p, translatorOpts...)

	start := time.Now()
	result, err := translator.Translate(context.Background(), tbl, rows, roles)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	elapsed := time.Since(start)

	if err := table.WriteFile(o.out, tbl, writeOpts); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if o.jsonOut {
		return outputJSON(stdout, runSummary{
			RunID:         runID,
			Input:         o.in,
			Output:        o.out,
			TargetLang:    targetLang,
			Dialect:       d.String(),
			Rows:          tbl.Len(),
			Selected:      len(rows),
			Units:         result.Units,
			Submitted:     result.Submitted,
			Reused:        result.Reused,
			Batches:       result.Batches,
			Characters:    result.Characters,
			DetectedLangs: result.DetectedLangs,
			ElapsedMs:     elapsed.Milliseconds(),
		})
	}

	if !o.quiet {
		printSummary(stderr, o.out, result, elapsed)
	}
	return nil
}

// newProvider builds the configured backend. OpenAI only translates plain
// text, so markup cells are split into text nodes first.
func newProvider(cfg *config.Config) (catalogtl.Provider, error) {
	switch cfg.Backend {
	case config.BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is not set")
		}
		p := provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		return catalogtl.NewMarkupProvider(p, processor.NewHTMLProcessor()), nil
	default:
		if cfg.DeepLAPIKey == "" {
			return nil, errors.New("DEEPL_API_KEY is not set (e.g. export DEEPL_API_KEY='xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx:fx')")
		}
		return provider.NewDeepLProvider(provider.DeepLConfig{
			APIKey:  cfg.DeepLAPIKey,
			URL:     cfg.DeepLURL,
			Timeout: cfg.HTTPTimeout,
		}), nil
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func reportColumns(w io.Writer, targetLang string, roles *classify.Result) {
	translatable := roles.Translatable()
	var markup []string
	for _, col := range translatable {
		if roles.Markup(col) {
			markup = append(markup, col)
		}
	}

	fmt.Fprintf(w, "%s %s (%s)\n", heading("Target language:"), targetLang, catalogtl.GetLanguageName(targetLang))
	fmt.Fprintf(w, "%s %d: %s\n", heading("Translating columns"), len(translatable), strings.Join(translatable, ", "))
	if len(markup) > 0 {
		fmt.Fprintf(w, "%s %s\n", heading("Markup preserved in:"), strings.Join(markup, ", "))
	}
	if skipped := roles.PassThrough(); len(skipped) > 0 {
		fmt.Fprintf(w, "%s %d columns (taxonomies, IDs, SKUs...)\n", warn("Skipping"), len(skipped))
	}
}

type estimateOutput struct {
	TargetLang string `json:"target_lang"`
	Dialect    string `json:"dialect"`
	*catalogtl.CostReport
}

func printEstimate(w io.Writer, jsonOut bool, targetLang string, d dialect.Dialect, report *catalogtl.CostReport) error {
	if jsonOut {
		return outputJSON(w, estimateOutput{TargetLang: targetLang, Dialect: d.String(), CostReport: report})
	}

	fmt.Fprintf(w, "Estimated characters per column (%d rows):\n", report.Rows)
	for _, c := range report.Columns {
		fmt.Fprintf(w, "  %s: %d\n", c.Column, c.Characters)
	}
	fmt.Fprintf(w, "\nTotal: %d\n", report.Total)
	return nil
}

func newProgressBar(w io.Writer, total int, targetLang string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", targetLang)),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func printSummary(w io.Writer, out string, result *catalogtl.RunResult, elapsed time.Duration) {
	fmt.Fprintf(w, "\n%s %s in %v\n", good("Done:"), out, elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  Cells translated: %d\n", result.Units)
	fmt.Fprintf(w, "  Texts sent:       %d\n", result.Submitted)
	fmt.Fprintf(w, "  Reused:           %d\n", result.Reused)
	fmt.Fprintf(w, "  Characters:       %d\n", result.Characters)

	langs := result.SortedDetectedLangs()
	if len(langs) == 0 {
		fmt.Fprintln(w, "  No source language detected (cells may have been empty)")
		return
	}
	parts := make([]string, len(langs))
	for i, l := range langs {
		parts[i] = fmt.Sprintf("%s=%d", l, result.DetectedLangs[l])
	}
	fmt.Fprintf(w, "  Detected source:  %s | most frequent: %s\n", strings.Join(parts, ", "), result.TopDetectedLang())
}

// runSummary is the JSON output of a translation run.
type runSummary struct {
	RunID         string         `json:"run_id"`
	Input         string         `json:"input"`
	Output        string         `json:"output"`
	TargetLang    string         `json:"target_lang"`
	Dialect       string         `json:"dialect"`
	Rows          int            `json:"rows"`
	Selected      int            `json:"selected"`
	Units         int            `json:"units"`
	Submitted     int            `json:"submitted"`
	Reused        int            `json:"reused"`
	Batches       int            `json:"batches"`
	Characters    int            `json:"characters"`
	DetectedLangs map[string]int `json:"detected_langs"`
	ElapsedMs     int64          `json:"elapsed_ms"`
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
