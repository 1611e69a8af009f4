package cmd

import (
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Idenfo/UK-PEP-scrape/internal/config"
	"github.com/Idenfo/UK-PEP-scrape/internal/export"
	"github.com/Idenfo/UK-PEP-scrape/internal/handlers"
	"github.com/Idenfo/UK-PEP-scrape/internal/logging"
	"github.com/Idenfo/UK-PEP-scrape/internal/parliament"
	"github.com/Idenfo/UK-PEP-scrape/internal/scrape"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the UK Parliament members scraper API",
	Long:  `Start the HTTP server that scrapes UK Parliament membership data and serves it as JSON or CSV exports.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// An explicit --port beats config file and PORT env var
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}

		logging.Setup(cfg.LogLevel)

		client := parliament.NewClient(cfg.UpstreamBaseURL, cfg.Timeout())
		scraper := scrape.New(client, slog.Default())
		exporter := export.NewExporter(cfg.OutputDir)

		app := handlers.NewApp(scraper, exporter)

		slog.Info("starting server", "port", cfg.Port, "upstream", cfg.UpstreamBaseURL)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
}
