package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-search-advisor/infrastructure/database/postgres"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func setupRepository(t *testing.T) (*analysisRunRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewAnalysisRunRepository(&postgres.Connection{DB: db}).(*analysisRunRepository)
	repo.now = func() time.Time { return testNow }

	return repo, mock
}

func TestAnalysisRunRepository_Save(t *testing.T) {
	tests := []struct {
		name     string
		run      *domain.AnalysisRun
		setup    func(mock sqlmock.Sqlmock)
		validate func(t *testing.T, err error)
	}{
		{
			name: "Salva análise com insight",
			run: &domain.AnalysisRun{
				ID:           "V1StGXR8_Z5j",
				Origin:       domain.AnalysisOriginAPI,
				Location:     "Italy",
				Language:     "it",
				BrandDomains: []string{"brandx.it"},
				KeywordCount: 1,
				Results: []domain.ClassifiedKeyword{
					{KeywordMetricRecord: domain.KeywordMetricRecord{Keyword: "a"}, Recommendation: domain.RecommendationTest},
				},
				Summary:   domain.Summary{Total: 1, Test: 1},
				Insight:   &domain.Insight{Summary: "ok", Source: domain.InsightSourceFallback},
				CreatedAt: testNow,
			},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analysis_runs (id,origin,location,language,brand_domains,keyword_count,summary,insight,results,collection_errors,created_at)")).
					WithArgs("V1StGXR8_Z5j", "api", "Italy", "it", sqlmock.AnyArg(), 1,
						[]byte(`{"total":1,"yes_paid":0,"no_paid":0,"test":1,"opportunity":0,"total_budget":0}`),
						sqlmock.AnyArg(), sqlmock.AnyArg(), nil, testNow).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "Erro do banco",
			run:  &domain.AnalysisRun{ID: "x", CreatedAt: testNow},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO analysis_runs").WillReturnError(errors.New("connection refused"))
			},
			validate: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "erro ao salvar análise x")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupRepository(t)
			tt.setup(mock)

			err := repo.Save(context.Background(), tt.run)
			tt.validate(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAnalysisRunRepository_GetByID(t *testing.T) {
	columns := []string{"id", "origin", "location", "language", "brand_domains", "keyword_count",
		"summary", "insight", "created_at", "results", "collection_errors"}

	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		validate func(t *testing.T, run *domain.AnalysisRun, err error)
	}{
		{
			name: "Análise encontrada",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, origin, location, language, brand_domains, keyword_count, summary, insight, created_at, results, collection_errors FROM analysis_runs WHERE id = $1")).
					WithArgs("run1").
					WillReturnRows(sqlmock.NewRows(columns).AddRow(
						"run1", "scheduler", "Italy", "it", "{brandx.it,brandx.com}", 2,
						[]byte(`{"total":2,"yes_paid":1,"test":1,"total_budget":420}`),
						[]byte(`{"summary":"ok","source":"gemini"}`),
						testNow,
						[]byte(`[{"keyword":"a","recommendation":"YES_PAID","estimated_monthly_budget":400},{"keyword":"b","recommendation":"TEST","estimated_monthly_budget":20}]`),
						[]byte(`[{"keyword":"c","message":"timeout"}]`),
					))
			},
			validate: func(t *testing.T, run *domain.AnalysisRun, err error) {
				require.NoError(t, err)
				require.NotNil(t, run)
				assert.Equal(t, domain.AnalysisOriginScheduler, run.Origin)
				assert.Equal(t, []string{"brandx.it", "brandx.com"}, run.BrandDomains)
				assert.Equal(t, 420.0, run.Summary.TotalBudget)
				assert.Equal(t, domain.InsightSourceGemini, run.Insight.Source)
				require.Len(t, run.Results, 2)
				assert.Equal(t, domain.RecommendationYesPaid, run.Results[0].Recommendation)
				assert.Equal(t, []domain.KeywordCollectionError{{Keyword: "c", Message: "timeout"}}, run.CollectionErrors)
			},
		},
		{
			name: "Análise sem insight nem erros",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM analysis_runs").
					WillReturnRows(sqlmock.NewRows(columns).AddRow(
						"run1", "api", "Italy", "it", "{}", 0, []byte(`{}`), nil, testNow, []byte(`[]`), nil,
					))
			},
			validate: func(t *testing.T, run *domain.AnalysisRun, err error) {
				require.NoError(t, err)
				assert.Nil(t, run.Insight)
				assert.Empty(t, run.CollectionErrors)
			},
		},
		{
			name: "Análise não encontrada",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM analysis_runs").WillReturnRows(sqlmock.NewRows(columns))
			},
			validate: func(t *testing.T, run *domain.AnalysisRun, err error) {
				assert.NoError(t, err)
				assert.Nil(t, run)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupRepository(t)
			tt.setup(mock)

			run, err := repo.GetByID(context.Background(), "run1")
			tt.validate(t, run, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAnalysisRunRepository_List(t *testing.T) {
	columns := []string{"id", "origin", "location", "language", "brand_domains", "keyword_count", "summary", "insight", "created_at"}
	since := testNow.AddDate(0, 0, -7)

	repo, mock := setupRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, origin, location, language, brand_domains, keyword_count, summary, insight, created_at FROM analysis_runs WHERE created_at >= $1 ORDER BY created_at DESC LIMIT 10")).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("run2", "api", "Italy", "it", "{}", 3, []byte(`{"total":3}`), nil, testNow).
			AddRow("run1", "api", "Italy", "it", "{}", 1, []byte(`{"total":1}`), nil, since))

	runs, err := repo.List(context.Background(), domain.AnalysisFilters{Since: &since, Limit: 10})

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run2", runs[0].ID)
	assert.Equal(t, 3, runs[0].Summary.Total)
	assert.Nil(t, runs[0].Results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRunRepository_DeleteOlderThan(t *testing.T) {
	repo, mock := setupRepository(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM analysis_runs WHERE created_at < $1")).
		WithArgs(testNow.AddDate(0, 0, -90)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := repo.DeleteOlderThan(context.Background(), 90)

	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
