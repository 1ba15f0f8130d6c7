package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hr-records-api/internal/ai"
	"github.com/hr-records-api/internal/config"
	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/repository"
	"github.com/rs/zerolog"
)

// dashboardService is the concrete implementation of DashboardService
type dashboardService struct {
	queries   repository.QueryRepository
	generator ai.Generator
	cfg       config.AIConfig
	log       zerolog.Logger
}

// newDashboardService creates a new DashboardService
func newDashboardService(queries repository.QueryRepository, generator ai.Generator, cfg config.AIConfig, log zerolog.Logger) *dashboardService {
	return &dashboardService{
		queries:   queries,
		generator: generator,
		cfg:       cfg,
		log:       log.With().Str("service", "dashboard").Logger(),
	}
}

// Query turns a question into a single SELECT, executes it read-only and
// returns the rows. Every failure is reported in the result, never as an error.
func (s *dashboardService) Query(ctx context.Context, question string) *models.QueryResult {
	if strings.TrimSpace(question) == "" {
		return failure(models.QueryFailureInput, "Question cannot be empty.")
	}
	if s.generator == nil {
		return failure(models.QueryFailureGeneration, "Text generation is not configured.")
	}

	genCtx, cancel := withTimeout(ctx, s.cfg.Timeout)
	raw, err := s.generator.Generate(genCtx, ai.BuildPrompt(question))
	cancel()
	if err != nil {
		s.log.Error().Err(err).Str("question", question).Msg("SQL generation failed")
		return failure(models.QueryFailureGeneration, fmt.Sprintf("Error generating the SQL query: %v", err))
	}

	query := ai.CleanSQL(raw)
	if query == "" {
		s.log.Error().Str("question", question).Msg("Model returned no SQL")
		return failure(models.QueryFailureGeneration, "Could not generate a SQL query for the question.")
	}

	if !ai.IsSelectQuery(query) {
		s.log.Warn().Str("question", question).Str("query", query).Msg("Generated SQL rejected")
		return failure(models.QueryFailureRejected, "Only SELECT queries are allowed.")
	}

	queryCtx, cancel := withTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	rows, err := s.queries.RunReadOnly(queryCtx, query)
	if err != nil {
		s.log.Error().Err(err).Str("question", question).Str("query", query).Msg("Generated SQL failed")
		return failure(models.QueryFailureExecution, fmt.Sprintf("Error executing the query: %v", err))
	}
	if rows == nil {
		rows = []map[string]any{}
	}

	s.log.Info().Str("query", query).Int("rows", len(rows)).Msg("Dashboard query executed")

	return &models.QueryResult{
		Success: true,
		Query:   query,
		Result:  rows,
		Message: fmt.Sprintf("Query executed successfully. %d result(s) found.", len(rows)),
	}
}

func failure(kind models.QueryFailure, message string) *models.QueryResult {
	return &models.QueryResult{Success: false, Message: message, Failure: kind}
}

// withTimeout derives a deadline only when d is positive
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
