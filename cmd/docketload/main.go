package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexiflow/docketload/internal/config"
	"github.com/lexiflow/docketload/internal/database"
	"github.com/lexiflow/docketload/internal/docket"
	"github.com/lexiflow/docketload/internal/ingest"
	"github.com/lexiflow/docketload/pkg/logger"
)

var (
	caseNumber string
	sqlOut     string
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "docketload <docket-export>",
	Short: "Load a court docket export into the case database",
	Long: `docketload ingests a semi-structured docket export from a court's
electronic filing system: it extracts case, party, attorney, and docket-event
records, resolves them against the case database by natural key, and loads
them idempotently inside one transaction.

The run exits 0 when it completes, even with per-row errors; it exits
non-zero only on a fatal error (unreadable source, connection failure, or an
unresolvable case).`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&caseNumber, "case-number", "", "target case number when the export has no case summary")
	rootCmd.Flags().StringVar(&sqlOut, "sql-out", "", "write an idempotent SQL load script to this file instead of the database")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "extract and report without writing anything")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	data, err := docket.ReadSource(args[0])
	if err != nil {
		return err
	}

	doc, err := docket.NewExtractor(log).Extract(data)
	if err != nil {
		return fmt.Errorf("failed to extract source document: %w", err)
	}
	log.Info("Extracted source document",
		"source", args[0],
		"parties", len(doc.Parties),
		"entries", len(doc.Events),
		"has_summary", doc.Summary != nil,
	)

	classifier, err := docket.LoadClassifier(cfg.RulesPath)
	if err != nil {
		return err
	}
	normalizer := docket.NewNormalizer(classifier, cfg.TitleMaxLen, cfg.FilerMaxLen)

	if dryRun {
		report := ingest.Preview(doc, normalizer, caseNumber)
		report.Render(log, cfg.TopFilerCount)
		return nil
	}

	if sqlOut != "" {
		f, err := os.Create(sqlOut)
		if err != nil {
			return fmt.Errorf("failed to create script file %s: %w", sqlOut, err)
		}
		defer f.Close()

		report, err := ingest.NewSQLGenerator(normalizer).WriteScript(f, doc, caseNumber)
		report.Render(log, cfg.TopFilerCount)
		if err != nil {
			return err
		}
		log.Info("Script written", "path", sqlOut)
		return nil
	}

	db, err := database.Initialize(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database connection: %w", err)
	}
	defer sqlDB.Close()

	loader := ingest.NewLoader(db, cfg, log, normalizer)
	report, err := loader.Run(doc, caseNumber)
	report.Render(log, cfg.TopFilerCount)
	if err != nil {
		return err
	}

	log.Info("Run complete", "errors", len(report.Errors))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "docketload:", err)
		os.Exit(1)
	}
}
