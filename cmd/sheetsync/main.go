// Command sheetsync synchronizes a product spreadsheet (CSV or XLSX) into a
// Shopify catalog. Each row is reconciled independently: lookup by handle,
// create or update, variant match by SKU, idempotent image attach.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mkravets/shopify-sheet-sync/internal/catalog"
	"github.com/mkravets/shopify-sheet-sync/internal/config"
	"github.com/mkravets/shopify-sheet-sync/internal/run"
	"github.com/mkravets/shopify-sheet-sync/internal/sheet"
	"github.com/mkravets/shopify-sheet-sync/internal/shopify"
	"github.com/mkravets/shopify-sheet-sync/internal/syncer"
	"github.com/mkravets/shopify-sheet-sync/internal/version"
)

func main() {
	var (
		sheetName   = flag.String("sheet", "", "worksheet name for XLSX files (default: first sheet)")
		dryRun      = flag.Bool("dry-run", false, "perform lookups but record mutations instead of sending them")
		encoding    = flag.String("encoding", "utf-8", "CSV file encoding (utf-8 or windows-1251)")
		delimiter   = flag.String("delimiter", ",", "CSV field delimiter")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file.csv|file.xlsx>\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()
	logger.Debug("build info", zap.Any("info", version.Info()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	if err := runSync(cfg, logger, sigCh, path, *sheetName, *encoding, *delimiter, *dryRun); err != nil {
		logger.Error("run aborted", zap.Error(err))
		os.Exit(1)
	}
}

// runSync wires the reader, client and driver, runs the sheet to completion
// and prints the summary. It returns an error only for setup and reader
// failures; row-level failures are reported in the summary and do not change
// the exit code. The first signal on sigCh stops the driver after the row in
// flight; a second signal falls back to default handling and kills the
// process.
func runSync(cfg *config.Config, logger *zap.Logger, sigCh chan os.Signal, path, sheetName, encoding, delimiter string, dryRun bool) error {
	reader, err := sheet.Open(path, sheet.Options{
		Sheet:     sheetName,
		Encoding:  encoding,
		Delimiter: delimiter,
	})
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer reader.Close()

	norm, err := catalog.NewNormalizer(reader.Header())
	if err != nil {
		var colErr *catalog.MissingColumnError
		if errors.As(err, &colErr) && colErr.Structural() {
			return fmt.Errorf("sheet is unusable: %w", err)
		}
		return fmt.Errorf("header check: %w", err)
	}

	report := run.NewReport(dryRun)
	client := shopify.NewClient(shopify.Config{
		Shop:            cfg.Shop,
		Token:           cfg.AdminToken,
		APIVersion:      cfg.APIVersion,
		TimeoutSeconds:  cfg.TimeoutSeconds,
		Policy:          cfg.RetryPolicy(),
		MutationsPerSec: cfg.MutationsPerSec,
		Logger:          logger,
		Timings:         report.Timings,
	})

	var (
		exec syncer.Executor = client
		dry  *syncer.DryRunExecutor
	)
	if dryRun {
		dry = &syncer.DryRunExecutor{Lookup: client}
		exec = dry
	}

	logger.Info("starting sync",
		zap.String("run_id", report.RunID),
		zap.String("file", path),
		zap.Bool("dry_run", dryRun),
	)

	driver := syncer.NewDriver(reader, norm, syncer.NewProcessor(exec, logger), report, report.Timings, logger)

	// The driver runs on an uncancelled context so a signal never aborts the
	// row in flight; it only stops the loop before the next row.
	go func() {
		s, ok := <-sigCh
		if !ok {
			return
		}
		logger.Warn("interrupt received, finishing current row", zap.String("signal", s.String()))
		driver.RequestStop()
		signal.Stop(sigCh)
	}()
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()

	if err := driver.Run(context.Background()); err != nil {
		return err
	}

	logger.Info("sync finished", zap.String("summary", report.Summary()))
	fmt.Println(report.Summary())
	for _, o := range report.FailedOutcomes() {
		fmt.Printf("  row %d (%s): %s\n", o.Row, o.Handle, o.Reason)
	}
	if dry != nil {
		for _, a := range dry.Actions {
			fmt.Printf("  would %s %s: %s\n", a.Op, a.Target, a.Detail)
		}
	}
	logger.Debug("stage timings", zap.String("timings", report.Timings.String()))
	return nil
}

func newLogger(level string) *zap.Logger {
	zcfg := zap.NewDevelopmentConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		zcfg.Level = lvl
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
