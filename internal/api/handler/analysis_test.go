package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-search-advisor/internal/api/handler/router"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/analyzing"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/analyzing/mocks"
	"github.com/vfg2006/paid-search-advisor/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var createdAt = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func classifiedFixture() []domain.ClassifiedKeyword {
	return []domain.ClassifiedKeyword{
		{
			KeywordMetricRecord: domain.KeywordMetricRecord{
				Keyword:         "scarpe running",
				SearchVolume:    3000,
				CPC:             2.0,
				Competition:     0.8,
				AdvertiserCount: 10,
			},
			Recommendation:         domain.RecommendationYesPaid,
			EstimatedMonthlyBudget: 120,
		},
		{
			KeywordMetricRecord: domain.KeywordMetricRecord{
				Keyword:          "scarpe trail",
				SearchVolume:     800,
				CPC:              1.0,
				Competition:      0.4,
				AdvertiserCount:  4,
				OrganicPositions: []int{1, 2},
			},
			Recommendation:         domain.RecommendationOpportunity,
			EstimatedMonthlyBudget: 16,
		},
	}
}

func runFixture() *domain.AnalysisRun {
	return &domain.AnalysisRun{
		ID:           "run123456789",
		Origin:       domain.AnalysisOriginAPI,
		Location:     "Italy",
		Language:     "it",
		KeywordCount: 2,
		Results:      classifiedFixture(),
		Summary: domain.Summary{
			Total:       2,
			YesPaid:     1,
			Opportunity: 1,
			TotalBudget: 136,
		},
		CreatedAt: createdAt,
	}
}

func newAnalysisRouter(service analyzing.Analyzer) http.Handler {
	return router.New(router.WithRoutes(Analyses(service)...))
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestAnalyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalyzer := mocks.NewMockAnalyzer(ctrl)
	handler := newAnalysisRouter(mockAnalyzer)

	tests := []struct {
		name     string
		query    string
		body     string
		setup    func()
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Análise completa com credenciais do usuário",
			body: `{"keywords":["scarpe running","scarpe trail"],"brand_domains":["brandx.it"],"location":"Italy","credentials":{"dataforseo_login":"l","dataforseo_password":"p"}}`,
			setup: func() {
				mockAnalyzer.EXPECT().
					Analyze(gomock.Any(), domain.AnalyzeRequest{
						Keywords:     []string{"scarpe running", "scarpe trail"},
						BrandDomains: []string{"brandx.it"},
						Location:     "Italy",
						Credentials: domain.Credentials{
							DataForSEOLogin:    "l",
							DataForSEOPassword: "p",
						},
						Origin: domain.AnalysisOriginAPI,
					}).
					Return(runFixture(), nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

				var run domain.AnalysisRun
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
				assert.Equal(t, "run123456789", run.ID)
				require.Len(t, run.Results, 2)
				assert.Equal(t, domain.RecommendationOpportunity, run.Results[1].Recommendation)
				assert.Equal(t, 1, run.Summary.Opportunity)
			},
		},
		{
			name:  "Projeção em três rótulos",
			query: "?labels=3",
			body:  `{"keywords":["scarpe running","scarpe trail"]}`,
			setup: func() {
				mockAnalyzer.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(runFixture(), nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var run domain.AnalysisRun
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
				assert.Equal(t, domain.RecommendationTest, run.Results[1].Recommendation)
				assert.Equal(t, 0, run.Summary.Opportunity)
				assert.Equal(t, 1, run.Summary.Test)
			},
		},
		{
			name:  "Parâmetro labels inválido",
			query: "?labels=5",
			body:  `{"keywords":["a"]}`,
			setup: func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:  "JSON inválido",
			body:  `{"keywords":`,
			setup: func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code)
			},
		},
		{
			name: "Lote vazio",
			body: `{"keywords":[]}`,
			setup: func() {
				mockAnalyzer.EXPECT().
					Analyze(gomock.Any(), gomock.Any()).
					Return(nil, analyzing.NewAnalysisError(analyzing.ErrNoKeywords, apiErrors.ErrNoKeywords, "Informe ao menos uma keyword"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)

				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, apiErrors.ErrNoKeywords, apiErr.Code)
				assert.Contains(t, apiErr.Message, "Informe ao menos uma keyword")
			},
		},
		{
			name: "Coleta interrompida",
			body: `{"keywords":["a"]}`,
			setup: func() {
				mockAnalyzer.EXPECT().
					Analyze(gomock.Any(), gomock.Any()).
					Return(nil, analyzing.NewAnalysisError(analyzing.ErrCollectionAborted, apiErrors.ErrCollectionAborted, context.DeadlineExceeded.Error()))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
				assert.Equal(t, apiErrors.ErrCollectionAborted, decodeAPIError(t, rec).Code)
			},
		},
		{
			name: "Erro inesperado vira erro interno",
			body: `{"keywords":["a"]}`,
			setup: func() {
				mockAnalyzer.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)

				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, apiErrors.ErrInternalServer, apiErr.Code)
				assert.NotContains(t, apiErr.Message, "boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := httptest.NewRequest(http.MethodPost, "/v1/analyze"+tt.query, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			tt.validate(t, rec)
		})
	}
}

func TestClassify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalyzer := mocks.NewMockAnalyzer(ctrl)
	handler := newAnalysisRouter(mockAnalyzer)

	result := &domain.ClassificationResult{
		Classified: classifiedFixture(),
		Summary:    runFixture().Summary,
	}

	tests := []struct {
		name     string
		path     string
		body     string
		setup    func()
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "competition_index é convertido para a escala 0-1",
			path: "/v1/classify",
			body: `{"records":[{"keyword":"scarpe running","search_volume":3000,"cpc":2,"competition_index":80,"advertiser_count":10}]}`,
			setup: func() {
				mockAnalyzer.EXPECT().
					Classify([]domain.KeywordMetricRecord{{
						Keyword:         "scarpe running",
						SearchVolume:    3000,
						CPC:             2,
						Competition:     0.8,
						AdvertiserCount: 10,
					}}).
					Return(result, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var got domain.ClassificationResult
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Len(t, got.Classified, 2)
				assert.Equal(t, 136.0, got.Summary.TotalBudget)
			},
		},
		{
			name: "Registro inválido",
			path: "/v1/classify",
			body: `{"records":[{"keyword":"x","competition":70}]}`,
			setup: func() {
				mockAnalyzer.EXPECT().
					Classify(gomock.Any()).
					Return(nil, analyzing.NewAnalysisError(analyzing.ErrInvalidRecord, apiErrors.ErrInvalidRecord, "registro 0"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, apiErrors.ErrInvalidRecord, apiErr.Code)
				assert.Contains(t, apiErr.Message, "registro 0")
			},
		},
		{
			name: "Export devolve CSV na ordem recebida",
			path: "/v1/export",
			body: `{"records":[{"keyword":"scarpe running"},{"keyword":"scarpe trail"}]}`,
			setup: func() {
				mockAnalyzer.EXPECT().Classify(gomock.Len(2)).Return(result, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
				assert.Equal(t, `attachment; filename="keywords.csv"`, rec.Header().Get("Content-Disposition"))
				assert.Equal(t,
					"Keyword,Advertisers,CPC,Competition,Volume,Recommendation,Budget\n"+
						"scarpe running,10,2.00,80%,3000,YES_PAID,120.00\n"+
						"scarpe trail,4,1.00,40%,800,OPPORTUNITY,16.00\n",
					rec.Body.String())
			},
		},
		{
			name: "Export em três rótulos",
			path: "/v1/export?labels=3",
			body: `{"records":[{"keyword":"scarpe running"},{"keyword":"scarpe trail"}]}`,
			setup: func() {
				mockAnalyzer.EXPECT().Classify(gomock.Any()).Return(result, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), "scarpe trail,4,1.00,40%,800,TEST,16.00\n")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			tt.validate(t, rec)
		})
	}
}

func TestAnalysisHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalyzer := mocks.NewMockAnalyzer(ctrl)
	handler := newAnalysisRouter(mockAnalyzer)

	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		path     string
		setup    func()
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Lista com filtros",
			path: "/v1/analyses?since=2024-05-01&limit=10",
			setup: func() {
				mockAnalyzer.EXPECT().
					ListAnalyses(gomock.Any(), domain.AnalysisFilters{Since: &since, Limit: 10}).
					Return([]*domain.AnalysisRun{runFixture()}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var runs []domain.AnalysisRun
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
				require.Len(t, runs, 1)
				assert.Equal(t, "run123456789", runs[0].ID)
			},
		},
		{
			name: "Lista vazia devolve array",
			path: "/v1/analyses",
			setup: func() {
				mockAnalyzer.EXPECT().
					ListAnalyses(gomock.Any(), domain.AnalysisFilters{}).
					Return(nil, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `[]`, rec.Body.String())
			},
		},
		{
			name:  "Data since inválida",
			path:  "/v1/analyses?since=01/05/2024",
			setup: func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:  "Limite inválido",
			path:  "/v1/analyses?limit=-1",
			setup: func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name: "Histórico desativado",
			path: "/v1/analyses",
			setup: func() {
				mockAnalyzer.EXPECT().
					ListAnalyses(gomock.Any(), gomock.Any()).
					Return(nil, analyzing.NewAnalysisError(analyzing.ErrHistoryDisabled, apiErrors.ErrHistoryDisabled, ""))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotImplemented, rec.Code)
			},
		},
		{
			name: "Busca por ID",
			path: "/v1/analyses/run123456789",
			setup: func() {
				mockAnalyzer.EXPECT().GetAnalysis(gomock.Any(), "run123456789").Return(runFixture(), nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var run domain.AnalysisRun
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
				assert.Equal(t, createdAt, run.CreatedAt)
			},
		},
		{
			name: "Análise inexistente",
			path: "/v1/analyses/missing",
			setup: func() {
				mockAnalyzer.EXPECT().
					GetAnalysis(gomock.Any(), "missing").
					Return(nil, analyzing.NewAnalysisError(analyzing.ErrAnalysisNotFound, apiErrors.ErrAnalysisNotFound, "Análise missing não encontrada"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Equal(t, apiErrors.ErrAnalysisNotFound, decodeAPIError(t, rec).Code)
			},
		},
		{
			name: "Export de análise gravada",
			path: "/v1/analyses/run123456789/export",
			setup: func() {
				mockAnalyzer.EXPECT().GetAnalysis(gomock.Any(), "run123456789").Return(runFixture(), nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, `attachment; filename="analysis-run123456789.csv"`, rec.Header().Get("Content-Disposition"))

				lines := strings.Split(strings.TrimSuffix(rec.Body.String(), "\n"), "\n")
				require.Len(t, lines, 3)
				assert.Equal(t, "Keyword,Advertisers,CPC,Competition,Volume,Recommendation,Budget", lines[0])
				assert.Equal(t, "scarpe running,10,2.00,80%,3000,YES_PAID,120.00", lines[1])
			},
		},
		{
			name:  "Rota inexistente",
			path:  "/v1/unknown",
			setup: func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Equal(t, apiErrors.ErrNotFound, decodeAPIError(t, rec).Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			tt.validate(t, rec)
		})
	}
}
