package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Idenfo/UK-PEP-scrape/internal/config"
	"github.com/Idenfo/UK-PEP-scrape/internal/export"
	"github.com/Idenfo/UK-PEP-scrape/internal/logging"
	"github.com/Idenfo/UK-PEP-scrape/internal/parliament"
	"github.com/Idenfo/UK-PEP-scrape/internal/scrape"
)

var (
	exportType    string
	exportCurrent bool
	exportFrom    string
	exportTo      string
	exportOn      string
	exportOutput  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export UK Parliament data to CSV files",
	Long: `Export fetches parliamentary data and writes it to timestamped CSV
files, one per sub-collection.

Examples:
  # Export everything
  ./ukparl export

  # Export current MPs only
  ./ukparl export --type mps --current

  # Export Lords serving during 2023 into a custom directory
  ./ukparl export --type lords --from-date 2023-01-01 --to-date 2023-12-31 --output /tmp/exports`,
	Run: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportType, "type", "t", "all", "Data type to export (all, mps, lords, government-roles, committees)")
	exportCmd.Flags().BoolVar(&exportCurrent, "current", false, "Export only currently serving records")
	exportCmd.Flags().StringVar(&exportFrom, "from-date", "", "Only members serving on or after this date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to-date", "", "Only members serving on or before this date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportOn, "on-date", "", "Only members serving on this date (YYYY-MM-DD)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output directory (default from config)")
}

func runExport(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(cfg.LogLevel)

	cat, err := scrape.ParseCategory(exportType)
	if err != nil {
		log.Fatalf("Invalid --type: %v", err)
	}

	for _, d := range []struct{ flag, value string }{
		{"--from-date", exportFrom},
		{"--to-date", exportTo},
		{"--on-date", exportOn},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d.value); err != nil {
			log.Fatalf("Invalid %s: %q is not a YYYY-MM-DD date", d.flag, d.value)
		}
	}

	if exportOutput != "" {
		cfg.OutputDir = exportOutput
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	client := parliament.NewClient(cfg.UpstreamBaseURL, cfg.Timeout())
	scraper := scrape.New(client, slog.Default())
	exporter := export.NewExporter(cfg.OutputDir)

	opts := scrape.Options{
		CurrentOnly: exportCurrent,
		FromDate:    exportFrom,
		ToDate:      exportTo,
		OnDate:      exportOn,
	}

	log.Printf("Starting %s export...", exportType)
	datasets, err := scraper.Datasets(ctx, cat, opts)
	if err != nil {
		if ctx.Err() != nil {
			log.Println("Export cancelled")
			os.Exit(1)
		}
		log.Fatalf("Export failed: %v", err)
	}

	files, err := exporter.Export(datasets, export.Timestamp(time.Now()))
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	log.Println("")
	log.Println("=== Export Summary ===")
	log.Printf("Data type:        %s", exportType)
	log.Printf("Output directory: %s", cfg.OutputDir)
	log.Printf("Files written:    %d", len(files))
	for _, f := range files {
		log.Printf("  %s", f)
	}
}
