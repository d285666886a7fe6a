package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/analyzing"
	"github.com/vfg2006/paid-search-advisor/pkg/apiErrors"
	"github.com/vfg2006/paid-search-advisor/pkg/log"
	"github.com/vfg2006/paid-search-advisor/pkg/utils"
)

// KeywordRecordInput é o registro enviado pelo cliente em /v1/classify e /v1/export.
// competition_index (0-100) tem prioridade sobre competition quando informado.
type KeywordRecordInput struct {
	Keyword          string   `json:"keyword"`
	SearchVolume     int      `json:"search_volume"`
	CPC              float64  `json:"cpc"`
	Competition      float64  `json:"competition"`
	CompetitionIndex *float64 `json:"competition_index,omitempty"`
	AdvertiserCount  int      `json:"advertiser_count"`
	OrganicPositions []int    `json:"organic_positions"`
	IsBrandKeyword   bool     `json:"is_brand_keyword"`
}

type ClassifyRequest struct {
	Records []KeywordRecordInput `json:"records"`
}

func (in KeywordRecordInput) toRecord() domain.KeywordMetricRecord {
	competition := in.Competition
	if in.CompetitionIndex != nil && *in.CompetitionIndex >= 0 {
		competition = domain.NormalizeCompetition(*in.CompetitionIndex / 100)
	}

	return domain.KeywordMetricRecord{
		Keyword:          in.Keyword,
		SearchVolume:     in.SearchVolume,
		CPC:              in.CPC,
		Competition:      competition,
		AdvertiserCount:  in.AdvertiserCount,
		OrganicPositions: in.OrganicPositions,
		IsBrandKeyword:   in.IsBrandKeyword,
	}
}

func (req ClassifyRequest) toRecords() []domain.KeywordMetricRecord {
	records := make([]domain.KeywordMetricRecord, len(req.Records))
	for i, input := range req.Records {
		records[i] = input.toRecord()
	}
	return records
}

// Analyze coleta, classifica e gera o insight de uma lista de keywords
func Analyze(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projectLabels, err := threeLabels(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		var req domain.AnalyzeRequest
		if err := decodeBody(w, r, &req); err != nil {
			logger.WithError(err).Warn("analysis: corpo da requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		req.Origin = domain.AnalysisOriginAPI

		logger.WithFields(log.Fields{
			"keywords":      len(req.Keywords),
			"brand_domains": req.BrandDomains,
			"location":      req.Location,
			"skip_insight":  req.SkipInsight,
		}).Info("analysis: requisição de análise recebida")

		run, err := service.Analyze(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao executar a análise")
			return
		}

		if projectLabels {
			run = projectRun(run)
		}

		writeJSON(w, r, http.StatusOK, run)
	})
}

// Classify classifica registros de métricas já coletados pelo cliente
func Classify(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		projectLabels, err := threeLabels(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		var req ClassifyRequest
		if err := decodeBody(w, r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		result, err := service.Classify(req.toRecords())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao classificar registros")
			return
		}

		if projectLabels {
			projected := result.ThreeLabel()
			result = &projected
		}

		writeJSON(w, r, http.StatusOK, result)
	})
}

// Export classifica os registros enviados e devolve o CSV
func Export(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		projectLabels, err := threeLabels(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		var req ClassifyRequest
		if err := decodeBody(w, r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		result, err := service.Classify(req.toRecords())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao classificar registros")
			return
		}

		if projectLabels {
			projected := result.ThreeLabel()
			result = &projected
		}

		writeCSV(w, r, "keywords.csv", result.Classified)
	})
}

// ListAnalyses lista o histórico, mais recentes primeiro
func ListAnalyses(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		since, err := utils.ParseOptionalDate(query.Get("since"))
		if err != nil {
			logger.WithFields(log.Fields{
				"since": query.Get("since"),
				"error": err.Error(),
			}).Warn("history: parâmetro since inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "since deve estar no formato AAAA-MM-DD", nil)
			return
		}

		filters := domain.AnalysisFilters{Since: since}

		if rawLimit := query.Get("limit"); rawLimit != "" {
			limit, err := strconv.ParseUint(rawLimit, 10, 64)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
				return
			}
			filters.Limit = limit
		}

		runs, err := service.ListAnalyses(r.Context(), filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar análises")
			return
		}

		if runs == nil {
			runs = []*domain.AnalysisRun{}
		}

		writeJSON(w, r, http.StatusOK, runs)
	})
}

// GetAnalysis devolve uma análise gravada, com os resultados por keyword
func GetAnalysis(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		run, err := service.GetAnalysis(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar análise")
			return
		}

		writeJSON(w, r, http.StatusOK, run)
	})
}

// ExportAnalysis devolve o CSV de uma análise gravada
func ExportAnalysis(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		run, err := service.GetAnalysis(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar análise")
			return
		}

		writeCSV(w, r, fmt.Sprintf("analysis-%s.csv", run.ID), run.Results)
	})
}

func projectRun(run *domain.AnalysisRun) *domain.AnalysisRun {
	projected := domain.ClassificationResult{
		Classified: run.Results,
		Summary:    run.Summary,
	}.ThreeLabel()

	copied := *run
	copied.Results = projected.Classified
	copied.Summary = projected.Summary
	return &copied
}
