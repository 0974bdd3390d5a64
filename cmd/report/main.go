package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/papudim/sales-report/internal/business/report"
	"github.com/papudim/sales-report/internal/platform/config"
	firestoreclient "github.com/papudim/sales-report/internal/platform/firestore"
	"github.com/papudim/sales-report/internal/platform/logging"
	"github.com/papudim/sales-report/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outDir  string
	topN    int
	title   string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sales-report",
	Short: "Build the sales PDF report and xlsx workbook from paid orders",
	Long: `Reads every order in the Firestore orders collection, aggregates the paid
ones into total revenue, units and revenue per item and revenue per day,
and writes a PDF report with charts plus an xlsx workbook.

Either both files are written or neither is.`,
	SilenceUsage: true,
	RunE:         runReport,
}

func init() {
	rootCmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "output directory (default REPORT_OUTPUT_DIR)")
	rootCmd.Flags().IntVarP(&topN, "top", "n", 0, "number of best sellers listed in the PDF (default REPORT_TOP_ITEMS)")
	rootCmd.Flags().StringVar(&title, "title", "", "report title (default REPORT_TITLE)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	applyFlags(&cfg)

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err = logging.New(level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	client, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		logger.Error("firestore init failed", zap.Error(err))
		return err
	}
	defer client.Close()
	logger.Info("connected to Firestore",
		zap.String("project", cfg.FirebaseProjectID),
		zap.String("credentials", credsSource),
		zap.String("collection", cfg.OrdersCollection),
	)

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	orders := repository.NewOrderRepository(client, cfg.OrdersCollection)
	svc := report.NewService(orders, logger, report.Options{Title: cfg.ReportTitle, TopN: cfg.ReportTopItems})
	rep, err := svc.Build(fetchCtx)
	if err != nil {
		logger.Error("report failed, no files written", zap.Error(err))
		return err
	}

	if err := report.WriteFiles(rep, cfg.OutputDir, cfg.PDFName, cfg.WorkbookName); err != nil {
		logger.Error("writing report failed", zap.Error(err))
		return err
	}

	logger.Info("report written",
		zap.String("runId", rep.Summary.RunID),
		zap.String("pdf", filepath.Join(cfg.OutputDir, cfg.PDFName)),
		zap.String("workbook", filepath.Join(cfg.OutputDir, cfg.WorkbookName)),
	)
	fmt.Fprintln(cmd.OutOrStdout(), "PDF report and xlsx workbook generated successfully.")
	return nil
}

func applyFlags(cfg *config.Config) {
	if outDir != "" {
		cfg.OutputDir = outDir
	}
	if topN > 0 {
		cfg.ReportTopItems = topN
	}
	if title != "" {
		cfg.ReportTitle = title
	}
}
