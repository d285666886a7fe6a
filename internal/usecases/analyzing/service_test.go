package analyzing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cachemocks "github.com/vfg2006/paid-search-advisor/infrastructure/cache/mocks"
	dataforseodomain "github.com/vfg2006/paid-search-advisor/infrastructure/integrator/dataforseo/domain"
	dataforseomocks "github.com/vfg2006/paid-search-advisor/infrastructure/integrator/dataforseo/mocks"
	"github.com/vfg2006/paid-search-advisor/infrastructure/repository"
	repositorymocks "github.com/vfg2006/paid-search-advisor/infrastructure/repository/mocks"
	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
	insightmocks "github.com/vfg2006/paid-search-advisor/internal/usecases/insighting/mocks"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/recommending"
	"github.com/vfg2006/paid-search-advisor/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type analyzerMocks struct {
	collector  *dataforseomocks.MockDataForSEOIntegrator
	cache      *cachemocks.MockSnapshotCache
	insights   *insightmocks.MockGenerator
	repository *repositorymocks.MockAnalysisRunRepository
	waits      []time.Duration
	waitErr    error
}

func testConfig() *config.Config {
	return &config.Config{
		DataForSEO: config.DataForSEO{Location: "Italy", Language: "it"},
		Analysis:   config.Analysis{MaxKeywords: 5, RequestDelayMS: 1000, Workers: 1},
		History:    config.History{ListLimit: 50},
	}
}

func newTestService(cfg *config.Config, m *analyzerMocks, withHistory bool) *Service {
	var repo repository.AnalysisRunRepository
	if withHistory {
		repo = m.repository
	}

	return &Service{
		cfg:         cfg,
		recommender: recommending.New(recommending.DefaultThresholds(), recommending.DefaultBudgetModel(), 1),
		collector:   m.collector,
		cache:       m.cache,
		insights:    m.insights,
		repository:  repo,
		now:         func() time.Time { return fixedNow },
		wait: func(ctx context.Context, d time.Duration) error {
			m.waits = append(m.waits, d)
			return m.waitErr
		},
		newID: func() (string, error) { return "run123456789", nil },
	}
}

func paidSnapshot(keyword string) *domain.KeywordSnapshot {
	advertisers := make([]domain.Advertiser, 10)
	return &domain.KeywordSnapshot{
		Keyword:     keyword,
		Location:    "Italy",
		Language:    "it",
		Metrics:     domain.KeywordMetrics{SearchVolume: 10000, CPC: 2.0, Competition: 0.8},
		Advertisers: advertisers,
	}
}

func TestService_Analyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		request     domain.AnalyzeRequest
		withHistory bool
		cfg         func(cfg *config.Config)
		setup       func(m *analyzerMocks)
		validate    func(t *testing.T, m *analyzerMocks, run *domain.AnalysisRun, err error)
	}{
		{
			name: "Análise completa com cache, insight e histórico",
			request: domain.AnalyzeRequest{
				Keywords:     []string{"scarpe running", "Scarpe Running", "brandx"},
				BrandDomains: []string{"https://www.brandx.it"},
				Credentials:  domain.Credentials{DataForSEOLogin: "l", DataForSEOPassword: "p", GeminiAPIKey: "g"},
			},
			withHistory: true,
			setup: func(m *analyzerMocks) {
				m.cache.EXPECT().Get(gomock.Any(), "keyword-snapshot:italy:it:scarpe running").Return(nil, false, nil)
				m.collector.EXPECT().
					CollectKeyword(gomock.Any(), "scarpe running", dataforseodomain.CollectParams{
						Location:    "Italy",
						Language:    "it",
						Credentials: dataforseodomain.Credentials{Login: "l", Password: "p"},
					}).
					Return(paidSnapshot("scarpe running"), nil)
				m.cache.EXPECT().Set(gomock.Any(), "keyword-snapshot:italy:it:scarpe running", gomock.Any()).Return(nil)

				m.cache.EXPECT().Get(gomock.Any(), "keyword-snapshot:italy:it:brandx").Return(&domain.KeywordSnapshot{
					Keyword: "BrandX",
					Metrics: domain.KeywordMetrics{SearchVolume: 5000, CPC: 0.4, Competition: 0.2},
					Organic: []domain.OrganicResult{
						{Rank: 1, Domain: "brandx.it"},
						{Rank: 2, Domain: "www.brandx.it"},
						{Rank: 3, Domain: "shop.brandx.it"},
					},
				}, true, nil)

				m.insights.EXPECT().
					GenerateInsights(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, request domain.InsightRequest) (*domain.Insight, error) {
						assert.Equal(t, "brandx.it", request.BrandDomain)
						assert.Equal(t, "g", request.Credentials.GeminiAPIKey)
						assert.Len(t, request.Classified, 2)
						return &domain.Insight{Summary: "ok", Source: domain.InsightSourceGemini}, nil
					})

				m.repository.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, run *domain.AnalysisRun) error {
						assert.Equal(t, "run123456789", run.ID)
						return nil
					})
			},
			validate: func(t *testing.T, m *analyzerMocks, run *domain.AnalysisRun, err error) {
				require.NoError(t, err)
				assert.Equal(t, "run123456789", run.ID)
				assert.Equal(t, domain.AnalysisOriginAPI, run.Origin)
				assert.Equal(t, []string{"brandx.it"}, run.BrandDomains)
				assert.Equal(t, 2, run.KeywordCount)
				assert.Equal(t, fixedNow, run.CreatedAt)
				assert.Empty(t, m.waits)

				require.Len(t, run.Results, 2)
				assert.Equal(t, "scarpe running", run.Results[0].Keyword)
				assert.Equal(t, domain.RecommendationYesPaid, run.Results[0].Recommendation)
				assert.Equal(t, 400.0, run.Results[0].EstimatedMonthlyBudget)

				assert.Equal(t, "brandx", run.Results[1].Keyword)
				assert.True(t, run.Results[1].IsBrandKeyword)
				assert.Equal(t, []int{1, 2, 3}, run.Results[1].OrganicPositions)
				assert.Equal(t, domain.RecommendationNoPaid, run.Results[1].Recommendation)

				assert.Equal(t, domain.Summary{Total: 2, YesPaid: 1, NoPaid: 1, TotalBudget: 400}, run.Summary)
				assert.Equal(t, domain.InsightSourceGemini, run.Insight.Source)
				assert.Empty(t, run.CollectionErrors)
			},
		},
		{
			name: "Falha de coleta mantém a keyword com métricas zeradas",
			request: domain.AnalyzeRequest{
				Keywords:     []string{"a", "b", "brandx shoes"},
				BrandDomains: []string{"brandx.com"},
				SkipInsight:  true,
				Origin:       domain.AnalysisOriginScheduler,
			},
			setup: func(m *analyzerMocks) {
				m.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil).Times(3)
				m.collector.EXPECT().CollectKeyword(gomock.Any(), "a", gomock.Any()).Return(nil, errors.New("all endpoints failed"))
				m.collector.EXPECT().CollectKeyword(gomock.Any(), "b", gomock.Any()).Return(paidSnapshot("b"), nil)
				m.collector.EXPECT().CollectKeyword(gomock.Any(), "brandx shoes", gomock.Any()).Return(nil, errors.New("timeout"))
				m.cache.EXPECT().Set(gomock.Any(), "keyword-snapshot:italy:it:b", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, m *analyzerMocks, run *domain.AnalysisRun, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.AnalysisOriginScheduler, run.Origin)
				assert.Equal(t, []time.Duration{time.Second, time.Second}, m.waits)
				assert.Nil(t, run.Insight)

				require.Len(t, run.Results, 3)
				assert.Equal(t, domain.KeywordMetricRecord{Keyword: "a"}, run.Results[0].KeywordMetricRecord)
				assert.Equal(t, domain.RecommendationNoPaid, run.Results[0].Recommendation)
				assert.Equal(t, domain.RecommendationYesPaid, run.Results[1].Recommendation)
				assert.Equal(t, domain.KeywordMetricRecord{Keyword: "brandx shoes", IsBrandKeyword: true}, run.Results[2].KeywordMetricRecord)
				assert.Equal(t, domain.RecommendationTest, run.Results[2].Recommendation)
				assert.Equal(t, []domain.KeywordCollectionError{
					{Keyword: "a", Message: "all endpoints failed"},
					{Keyword: "brandx shoes", Message: "timeout"},
				}, run.CollectionErrors)
			},
		},
		{
			name:    "Métricas padrão não são gravadas no cache",
			request: domain.AnalyzeRequest{Keywords: []string{"x"}, SkipInsight: true, Location: "Germany", Language: "de"},
			setup: func(m *analyzerMocks) {
				m.cache.EXPECT().Get(gomock.Any(), "keyword-snapshot:germany:de:x").Return(nil, false, nil)
				m.collector.EXPECT().CollectKeyword(gomock.Any(), "x", gomock.Any()).Return(&domain.KeywordSnapshot{
					Keyword:          "x",
					Metrics:          domain.DefaultMetrics,
					MetricsDefaulted: true,
				}, nil)
			},
			validate: func(t *testing.T, m *analyzerMocks, run *domain.AnalysisRun, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Germany", run.Location)
				assert.Equal(t, 1000, run.Results[0].SearchVolume)
				assert.Equal(t, domain.RecommendationTest, run.Results[0].Recommendation)
			},
		},
		{
			name:    "Erro ao salvar no histórico não falha a análise",
			request: domain.AnalyzeRequest{Keywords: []string{"x"}, SkipInsight: true},
			withHistory: true,
			setup: func(m *analyzerMocks) {
				m.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paidSnapshot("x"), true, nil)
				m.repository.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			validate: func(t *testing.T, m *analyzerMocks, run *domain.AnalysisRun, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, run.Summary.YesPaid)
			},
		},
		{
			name:    "Insight com erro segue sem insight",
			request: domain.AnalyzeRequest{Keywords: []string{"x"}},
			setup: func(m *analyzerMocks) {
				m.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paidSnapshot("x"), true, nil)
				m.insights.EXPECT().GenerateInsights(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
			validate: func(t *testing.T, m *analyzerMocks, run *domain.AnalysisRun, err error) {
				require.NoError(t, err)
				assert.Nil(t, run.Insight)
			},
		},
		{
			name:    "Sem keywords",
			request: domain.AnalyzeRequest{Keywords: []string{" ", ""}},
			setup:   func(m *analyzerMocks) {},
			validate: func(t *testing.T, m *analyzerMocks, run *domain.AnalysisRun, err error) {
				assert.ErrorIs(t, err, ErrNoKeywords)
				assert.Nil(t, run)

				var analysisErr *AnalysisError
				require.ErrorAs(t, err, &analysisErr)
				assert.Equal(t, apiErrors.ErrNoKeywords, analysisErr.Code)
			},
		},
		{
			name:    "Acima do limite de keywords",
			request: domain.AnalyzeRequest{Keywords: []string{"a", "b", "c"}},
			cfg: func(cfg *config.Config) {
				cfg.Analysis.MaxKeywords = 2
			},
			setup: func(m *analyzerMocks) {},
			validate: func(t *testing.T, m *analyzerMocks, run *domain.AnalysisRun, err error) {
				assert.ErrorIs(t, err, ErrTooManyKeywords)
				assert.Contains(t, err.Error(), "recebidas 3")
			},
		},
		{
			name:    "Cancelamento durante o intervalo entre chamadas",
			request: domain.AnalyzeRequest{Keywords: []string{"a", "b"}},
			setup: func(m *analyzerMocks) {
				m.waitErr = context.Canceled
				m.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil).Times(2)
				m.collector.EXPECT().CollectKeyword(gomock.Any(), "a", gomock.Any()).Return(paidSnapshot("a"), nil)
				m.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, m *analyzerMocks, run *domain.AnalysisRun, err error) {
				assert.ErrorIs(t, err, ErrCollectionAborted)
				assert.Nil(t, run)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &analyzerMocks{
				collector:  dataforseomocks.NewMockDataForSEOIntegrator(ctrl),
				cache:      cachemocks.NewMockSnapshotCache(ctrl),
				insights:   insightmocks.NewMockGenerator(ctrl),
				repository: repositorymocks.NewMockAnalysisRunRepository(ctrl),
			}
			tt.setup(m)

			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(cfg)
			}

			service := newTestService(cfg, m, tt.withHistory)
			run, err := service.Analyze(context.Background(), tt.request)
			tt.validate(t, m, run, err)
		})
	}
}

func TestService_Classify(t *testing.T) {
	service := newTestService(testConfig(), &analyzerMocks{}, false)

	t.Run("Registros válidos", func(t *testing.T) {
		result, err := service.Classify([]domain.KeywordMetricRecord{
			{Keyword: "a", SearchVolume: 10000, CPC: 2.0, Competition: 0.8, AdvertiserCount: 10},
			{Keyword: "b", SearchVolume: 1000, CPC: 1.0, Competition: 0.5, AdvertiserCount: 4},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.Summary{Total: 2, YesPaid: 1, Test: 1, TotalBudget: 420}, result.Summary)
	})

	t.Run("Registro inválido informa a posição", func(t *testing.T) {
		_, err := service.Classify([]domain.KeywordMetricRecord{
			{Keyword: "a"},
			{Keyword: "b", Competition: 1.5},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.ErrorIs(t, err, domain.ErrInvalidRecord)
		assert.Contains(t, err.Error(), "registro 1")

		var analysisErr *AnalysisError
		require.ErrorAs(t, err, &analysisErr)
		assert.Equal(t, apiErrors.ErrInvalidRecord, analysisErr.Code)
	})

	t.Run("Lote vazio", func(t *testing.T) {
		result, err := service.Classify(nil)

		require.NoError(t, err)
		assert.Empty(t, result.Classified)
		assert.Equal(t, 0, result.Summary.Total)
	})
}

func TestService_GetAnalysis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := &analyzerMocks{repository: repositorymocks.NewMockAnalysisRunRepository(ctrl)}

	tests := []struct {
		name        string
		withHistory bool
		setup       func()
		expectedErr error
	}{
		{
			name:        "Histórico desativado",
			withHistory: false,
			setup:       func() {},
			expectedErr: ErrHistoryDisabled,
		},
		{
			name:        "Análise encontrada",
			withHistory: true,
			setup: func() {
				m.repository.EXPECT().GetByID(gomock.Any(), "abc").Return(&domain.AnalysisRun{ID: "abc"}, nil)
			},
		},
		{
			name:        "Análise inexistente",
			withHistory: true,
			setup: func() {
				m.repository.EXPECT().GetByID(gomock.Any(), "abc").Return(nil, nil)
			},
			expectedErr: ErrAnalysisNotFound,
		},
		{
			name:        "Erro no banco",
			withHistory: true,
			setup: func() {
				m.repository.EXPECT().GetByID(gomock.Any(), "abc").Return(nil, errors.New("timeout"))
			},
			expectedErr: ErrFetchHistory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			service := newTestService(testConfig(), m, tt.withHistory)

			run, err := service.GetAnalysis(context.Background(), "abc")
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, run)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "abc", run.ID)
		})
	}
}

func TestService_ListAnalyses_LimitIsCapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := &analyzerMocks{repository: repositorymocks.NewMockAnalysisRunRepository(ctrl)}
	service := newTestService(testConfig(), m, true)

	tests := []struct {
		requested uint64
		expected  uint64
	}{
		{requested: 0, expected: 50},
		{requested: 500, expected: 50},
		{requested: 10, expected: 10},
	}

	for _, tt := range tests {
		m.repository.EXPECT().
			List(gomock.Any(), domain.AnalysisFilters{Limit: tt.expected}).
			Return([]*domain.AnalysisRun{}, nil)

		runs, err := service.ListAnalyses(context.Background(), domain.AnalysisFilters{Limit: tt.requested})
		require.NoError(t, err)
		assert.Empty(t, runs)
	}
}
