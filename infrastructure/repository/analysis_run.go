package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/paid-search-advisor/infrastructure/database/postgres"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
)

//go:generate mockgen -source=analysis_run.go -destination=mocks/analysis_run_mock.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	analysisRunsTable = "analysis_runs"

	analysisRunSummaryColumns = "id, origin, location, language, brand_domains, keyword_count, summary, insight, created_at"
	analysisRunDetailColumns  = analysisRunSummaryColumns + ", results, collection_errors"
)

type AnalysisRunRepository interface {
	Save(ctx context.Context, run *domain.AnalysisRun) error
	// GetByID retorna nil, nil quando a análise não existe
	GetByID(ctx context.Context, id string) (*domain.AnalysisRun, error)
	// List devolve as análises mais recentes primeiro, sem os resultados por keyword
	List(ctx context.Context, filters domain.AnalysisFilters) ([]*domain.AnalysisRun, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type analysisRunRepository struct {
	conn *postgres.Connection
	now  func() time.Time
}

func NewAnalysisRunRepository(conn *postgres.Connection) AnalysisRunRepository {
	return &analysisRunRepository{
		conn: conn,
		now:  time.Now,
	}
}

func (r *analysisRunRepository) Save(ctx context.Context, run *domain.AnalysisRun) error {
	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("erro ao serializar summary para JSON: %w", err)
	}

	resultsJSON, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("erro ao serializar results para JSON: %w", err)
	}

	var insightJSON, errorsJSON []byte
	if run.Insight != nil {
		if insightJSON, err = json.Marshal(run.Insight); err != nil {
			return fmt.Errorf("erro ao serializar insight para JSON: %w", err)
		}
	}
	if len(run.CollectionErrors) > 0 {
		if errorsJSON, err = json.Marshal(run.CollectionErrors); err != nil {
			return fmt.Errorf("erro ao serializar collection_errors para JSON: %w", err)
		}
	}

	brandDomains := run.BrandDomains
	if brandDomains == nil {
		brandDomains = []string{}
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(analysisRunsTable).
		Columns("id", "origin", "location", "language", "brand_domains", "keyword_count",
			"summary", "insight", "results", "collection_errors", "created_at").
		Values(
			run.ID,
			run.Origin,
			run.Location,
			run.Language,
			pq.Array(brandDomains),
			run.KeywordCount,
			summaryJSON,
			nullableJSON(insightJSON),
			resultsJSON,
			nullableJSON(errorsJSON),
			run.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar análise %s: %w", run.ID, err)
	}

	return nil
}

func (r *analysisRunRepository) GetByID(ctx context.Context, id string) (*domain.AnalysisRun, error) {
	query, args, err := squirrel.
		Select(analysisRunDetailColumns).
		From(analysisRunsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		run         domain.AnalysisRun
		summaryJSON []byte
		insightJSON []byte
		resultsJSON []byte
		errorsJSON  []byte
	)

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&run.ID,
		&run.Origin,
		&run.Location,
		&run.Language,
		pq.Array(&run.BrandDomains),
		&run.KeywordCount,
		&summaryJSON,
		&insightJSON,
		&run.CreatedAt,
		&resultsJSON,
		&errorsJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear análise: %w", err)
	}

	if err := decodeRunSummary(&run, summaryJSON, insightJSON); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(resultsJSON, &run.Results); err != nil {
		return nil, fmt.Errorf("erro ao deserializar results: %w", err)
	}

	if len(errorsJSON) > 0 {
		if err := json.Unmarshal(errorsJSON, &run.CollectionErrors); err != nil {
			return nil, fmt.Errorf("erro ao deserializar collection_errors: %w", err)
		}
	}

	return &run, nil
}

func (r *analysisRunRepository) List(ctx context.Context, filters domain.AnalysisFilters) ([]*domain.AnalysisRun, error) {
	builder := squirrel.
		Select(analysisRunSummaryColumns).
		From(analysisRunsTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.Since != nil {
		builder = builder.Where(squirrel.GtOrEq{"created_at": *filters.Since})
	}
	if filters.Limit > 0 {
		builder = builder.Limit(filters.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.AnalysisRun, 0)
	for rows.Next() {
		var (
			run         domain.AnalysisRun
			summaryJSON []byte
			insightJSON []byte
		)

		if err := rows.Scan(
			&run.ID,
			&run.Origin,
			&run.Location,
			&run.Language,
			pq.Array(&run.BrandDomains),
			&run.KeywordCount,
			&summaryJSON,
			&insightJSON,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear análises: %w", err)
		}

		if err := decodeRunSummary(&run, summaryJSON, insightJSON); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return runs, nil
}

func (r *analysisRunRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := r.now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete(analysisRunsTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao deletar análises antigas: %w", err)
	}

	return result.RowsAffected()
}

func decodeRunSummary(run *domain.AnalysisRun, summaryJSON, insightJSON []byte) error {
	if err := json.Unmarshal(summaryJSON, &run.Summary); err != nil {
		return fmt.Errorf("erro ao deserializar summary: %w", err)
	}

	if len(insightJSON) > 0 {
		run.Insight = &domain.Insight{}
		if err := json.Unmarshal(insightJSON, run.Insight); err != nil {
			return fmt.Errorf("erro ao deserializar insight: %w", err)
		}
	}

	return nil
}

// nullableJSON grava NULL em vez de um JSON vazio
func nullableJSON(payload []byte) any {
	if len(payload) == 0 {
		return nil
	}
	return payload
}
