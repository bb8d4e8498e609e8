// Package pipeline orchestrates one end-to-end run: read, parse, validate
// and filter, aggregate, enrich, persist, report. Each stage runs to
// completion; downstream best-effort failures (catalog fetch, file writes,
// persistence) are logged and absorbed so the in-memory result is always
// returned.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/salesworks/salespipe/internal/catalog"
	"github.com/salesworks/salespipe/internal/config"
	"github.com/salesworks/salespipe/internal/domain"
	"github.com/salesworks/salespipe/internal/enrichment"
	"github.com/salesworks/salespipe/internal/ingestion"
	"github.com/salesworks/salespipe/internal/logging"
	"github.com/salesworks/salespipe/internal/report"
	"github.com/salesworks/salespipe/internal/repository"
)

// CatalogSource yields the external product catalog. Implementations must
// return an empty sequence on failure, never an error.
type CatalogSource interface {
	FetchAll(ctx context.Context) []domain.CatalogProduct
}

// Pipeline wires the stages together.
type Pipeline struct {
	cfg     *config.Config
	catalog CatalogSource
	repo    *repository.RunRepo
	log     zerolog.Logger
}

// New creates a pipeline. repo may be nil to skip persistence.
func New(cfg *config.Config, source CatalogSource, repo *repository.RunRepo, logger zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, catalog: source, repo: repo, log: logger}
}

// Options are the per-run inputs on top of the static configuration.
type Options struct {
	InputFile string
	Filter    ingestion.FilterOptions
}

// Result is the in-memory outcome of one run.
type Result struct {
	Run      domain.Run
	Summary  ingestion.FilterSummary
	Valid    []domain.Transaction
	Enriched []domain.EnrichedTransaction
	Report   *report.Report
}

// Execute runs the full pipeline once. It fails only when the input file
// cannot be read or decoded; everything after that is best-effort per the
// error model.
func (p *Pipeline) Execute(ctx context.Context, opts Options) (*Result, error) {
	startedAt := time.Now()

	inputFile := opts.InputFile
	if inputFile == "" {
		inputFile = p.cfg.InputFile
	}

	// Read and parse.
	lines, encName, err := ingestion.ReadSalesLines(inputFile)
	if err != nil {
		return nil, fmt.Errorf("read sales data: %w", err)
	}
	p.log.Info().Str("file", inputFile).Str("encoding", encName).
		Int("lines", len(lines)).Msg("read sales data")

	records, dropped := ingestion.ParseTransactions(lines)
	p.log.Info().Int("parsed", len(records)).Msg("parsed transactions")
	if dropped > 0 {
		// Dropped lines are not part of the invalid count, by contract.
		p.log.Debug().Int("dropped", dropped).Msg("lines dropped during parsing")
	}

	// Validate and filter.
	validator := ingestion.NewValidator(logging.Component(p.log, "validator"))
	valid, invalid, summary := validator.ValidateAndFilter(records, opts.Filter)
	p.log.Info().Int("valid", len(valid)).Int("invalid", invalid).Msg("validation and filtering complete")

	// Enrich against the catalog. A dead catalog yields an empty lookup
	// and every transaction unmatched.
	lookup := catalog.BuildLookup(p.catalog.FetchAll(ctx))
	enriched := enrichment.Enrich(valid, lookup)

	if err := enrichment.WriteDelimited(p.cfg.EnrichedFile, enriched); err != nil {
		p.log.Warn().Err(err).Msg("failed to write enriched data file")
	} else {
		p.log.Info().Str("file", p.cfg.EnrichedFile).Msg("enriched data saved")
	}

	if p.cfg.EnrichedXLSX != "" {
		if err := enrichment.WriteXLSX(p.cfg.EnrichedXLSX, enriched); err != nil {
			p.log.Warn().Err(err).Msg("failed to write enriched xlsx")
		} else {
			p.log.Info().Str("file", p.cfg.EnrichedXLSX).Msg("enriched xlsx saved")
		}
	}

	// Assemble and render the report.
	rep := report.Build(valid, enriched, report.Options{
		TopProducts:     p.cfg.Analysis.TopProducts,
		TopCustomers:    p.cfg.Analysis.TopCustomers,
		LowQtyThreshold: p.cfg.Analysis.LowQtyThreshold,
	})

	if err := report.WriteFile(p.cfg.ReportFile, rep); err != nil {
		p.log.Warn().Err(err).Msg("failed to write report file")
	} else {
		p.log.Info().Str("file", p.cfg.ReportFile).Msg("report saved")
	}

	run := domain.Run{
		ID:                uuid.NewString(),
		StartedAt:         startedAt,
		InputFile:         inputFile,
		TotalInput:        summary.TotalInput,
		Invalid:           summary.Invalid,
		ValidRecords:      summary.ValidRecords,
		FilteredByRegion:  summary.FilteredByRegion,
		FilteredByAmount:  summary.FilteredByAmount,
		FinalCount:        summary.FinalCount,
		TotalRevenue:      rep.Summary.TotalRevenue,
		EnrichAttempted:   rep.Enrichment.Attempted,
		EnrichMatched:     rep.Enrichment.Matched,
		EnrichSuccessRate: rep.Enrichment.SuccessRate,
	}

	p.persist(&run, rep, enriched)

	return &Result{
		Run:      run,
		Summary:  summary,
		Valid:    valid,
		Enriched: enriched,
		Report:   rep,
	}, nil
}

// persist stores the run and its enriched rows. Persistence failures are
// reported but never abort the run.
func (p *Pipeline) persist(run *domain.Run, rep *report.Report, enriched []domain.EnrichedTransaction) {
	if p.repo == nil {
		return
	}

	reportJSON, err := json.Marshal(rep)
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to marshal report for persistence")
		return
	}

	if err := p.repo.InsertRun(run, reportJSON); err != nil {
		p.log.Warn().Err(err).Msg("failed to persist run")
		return
	}

	if n, err := p.repo.BulkInsertEnriched(run.ID, enriched); err != nil {
		p.log.Warn().Err(err).Int("inserted", n).Msg("failed to persist enriched transactions")
	} else {
		p.log.Info().Str("run_id", run.ID).Int("rows", n).Msg("run persisted")
	}
}
