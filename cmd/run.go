package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesworks/salespipe/internal/catalog"
	"github.com/salesworks/salespipe/internal/ingestion"
	"github.com/salesworks/salespipe/internal/logging"
	"github.com/salesworks/salespipe/internal/pipeline"
	"github.com/salesworks/salespipe/internal/repository"
)

var (
	runInput     string
	runRegion    string
	runMinAmount float64
	runMaxAmount float64
	runNoDB      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the pipeline once",
	Long: `Reads the sales data file, validates and filters the transactions,
enriches them against the product catalog, writes the enriched dataset
and the text report, and records the run in the local database.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "input file (overrides config)")
	runCmd.Flags().StringVar(&runRegion, "region", "", "keep only this region (case-insensitive)")
	runCmd.Flags().Float64Var(&runMinAmount, "min-amount", 0, "keep only transactions with amount >= this")
	runCmd.Flags().Float64Var(&runMaxAmount, "max-amount", 0, "keep only transactions with amount <= this")
	runCmd.Flags().BoolVar(&runNoDB, "no-db", false, "skip persisting the run")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel)

	filter := ingestion.FilterOptions{}
	if cmd.Flags().Changed("region") {
		filter.Region = &runRegion
	}
	if cmd.Flags().Changed("min-amount") {
		filter.MinAmount = &runMinAmount
	}
	if cmd.Flags().Changed("max-amount") {
		filter.MaxAmount = &runMaxAmount
	}

	var repo *repository.RunRepo
	if !runNoDB {
		db, err := repository.InitDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("init db: %w", err)
		}
		defer db.Close()
		repo = repository.NewRunRepo(db)
	}

	source := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout(),
		cfg.Catalog.PageLimit, logging.Component(logger, "catalog"))

	p := pipeline.New(cfg, source, repo, logger)
	res, err := p.Execute(cmd.Context(), pipeline.Options{
		InputFile: runInput,
		Filter:    filter,
	})
	if err != nil {
		return err
	}

	logger.Info().
		Str("run_id", res.Run.ID).
		Int("final_count", res.Summary.FinalCount).
		Float64("total_revenue", res.Run.TotalRevenue).
		Msg("pipeline complete")
	return nil
}
