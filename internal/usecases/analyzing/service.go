package analyzing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-search-advisor/infrastructure/cache"
	"github.com/vfg2006/paid-search-advisor/infrastructure/integrator/dataforseo"
	dataforseodomain "github.com/vfg2006/paid-search-advisor/infrastructure/integrator/dataforseo/domain"
	"github.com/vfg2006/paid-search-advisor/infrastructure/repository"
	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/insighting"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/recommending"
	"github.com/vfg2006/paid-search-advisor/pkg/apiErrors"
	"github.com/vfg2006/paid-search-advisor/pkg/metrics"
	"github.com/vfg2006/paid-search-advisor/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/analyzing_mock.go -package=mocks

type Analyzer interface {
	// Analyze coleta os dados de cada keyword, classifica o lote, gera o insight e grava no histórico
	Analyze(ctx context.Context, request domain.AnalyzeRequest) (*domain.AnalysisRun, error)
	// Classify classifica registros já coletados pelo cliente
	Classify(records []domain.KeywordMetricRecord) (*domain.ClassificationResult, error)
	GetAnalysis(ctx context.Context, id string) (*domain.AnalysisRun, error)
	ListAnalyses(ctx context.Context, filters domain.AnalysisFilters) ([]*domain.AnalysisRun, error)
}

type Service struct {
	cfg         *config.Config
	recommender recommending.Recommender
	collector   dataforseo.DataForSEOIntegrator
	cache       cache.SnapshotCache
	insights    insighting.Generator
	repository  repository.AnalysisRunRepository
	now         func() time.Time
	wait        func(ctx context.Context, d time.Duration) error
	newID       func() (string, error)
}

// NewService monta o orquestrador. analysisRepository nil desativa o histórico.
func NewService(
	cfg *config.Config,
	recommender recommending.Recommender,
	collector dataforseo.DataForSEOIntegrator,
	snapshotCache cache.SnapshotCache,
	insights insighting.Generator,
	analysisRepository repository.AnalysisRunRepository,
) Analyzer {
	if snapshotCache == nil {
		snapshotCache = cache.NewNoopCache()
	}

	return &Service{
		cfg:         cfg,
		recommender: recommender,
		collector:   collector,
		cache:       snapshotCache,
		insights:    insights,
		repository:  analysisRepository,
		now:         time.Now,
		wait:        wait,
		newID:       utils.GenerateID,
	}
}

// wait dorme pelo intervalo informado ou até o contexto ser cancelado
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) Analyze(ctx context.Context, request domain.AnalyzeRequest) (run *domain.AnalysisRun, err error) {
	startTime := s.now()
	origin := request.Origin
	if origin == "" {
		origin = domain.AnalysisOriginAPI
	}

	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
		}
		metrics.RecordAnalysisRun(string(origin), outcome, s.now().Sub(startTime))
	}()

	keywords := NormalizeKeywords(request.Keywords)
	if len(keywords) == 0 {
		return nil, NewAnalysisError(ErrNoKeywords, apiErrors.ErrNoKeywords, "Informe ao menos uma keyword")
	}

	if limit := s.cfg.Analysis.MaxKeywords; limit > 0 && len(keywords) > limit {
		return nil, NewAnalysisError(ErrTooManyKeywords, apiErrors.ErrTooManyKeywords,
			fmt.Sprintf("O limite é de %d keywords por análise, recebidas %d", limit, len(keywords)))
	}

	location := request.Location
	if location == "" {
		location = s.cfg.DataForSEO.Location
	}
	language := request.Language
	if language == "" {
		language = s.cfg.DataForSEO.Language
	}

	brandDomains := NormalizeDomains(request.BrandDomains)
	if len(brandDomains) == 0 {
		brandDomains = NormalizeDomains(s.cfg.Analysis.BrandDomains)
	}

	logger := logrus.WithFields(logrus.Fields{
		"analysis_origin":   origin,
		"analysis_keywords": len(keywords),
		"location":          location,
		"language":          language,
	})
	logger.Info("Iniciando análise de keywords")

	records, collectionErrors, err := s.collect(ctx, keywords, location, language, brandDomains, request.Credentials)
	if err != nil {
		return nil, NewAnalysisError(ErrCollectionAborted, apiErrors.ErrCollectionAborted, err.Error())
	}

	result := s.recommender.Summarize(records)
	for _, keyword := range result.Classified {
		metrics.RecordClassification(keyword.Recommendation.String())
	}

	id, err := s.newID()
	if err != nil {
		return nil, NewAnalysisError(err, apiErrors.ErrInternalServer, "Falha ao gerar o identificador da análise")
	}

	run = &domain.AnalysisRun{
		ID:               id,
		Origin:           origin,
		Location:         location,
		Language:         language,
		BrandDomains:     brandDomains,
		KeywordCount:     len(keywords),
		Results:          result.Classified,
		Summary:          result.Summary,
		CollectionErrors: collectionErrors,
		CreatedAt:        s.now().UTC(),
	}

	if !request.SkipInsight && s.insights != nil {
		brandDomain := ""
		if len(brandDomains) > 0 {
			brandDomain = brandDomains[0]
		}

		insight, err := s.insights.GenerateInsights(ctx, domain.InsightRequest{
			Classified:  result.Classified,
			Summary:     result.Summary,
			BrandDomain: brandDomain,
			Credentials: request.Credentials,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, NewAnalysisError(ErrCollectionAborted, apiErrors.ErrCollectionAborted, err.Error())
			}
			logger.WithError(err).Warn("Não foi possível gerar o insight da análise")
		}
		run.Insight = insight
	}

	if s.repository != nil {
		if err := s.repository.Save(ctx, run); err != nil {
			logger.WithError(err).Error("Erro ao salvar análise no histórico")
		}
	}

	logger.WithFields(logrus.Fields{
		"analysis_id":       run.ID,
		"analysis_failures": len(collectionErrors),
		"yes_paid":          result.Summary.YesPaid,
		"no_paid":           result.Summary.NoPaid,
		"test":              result.Summary.Test,
		"opportunity":       result.Summary.Opportunity,
		"total_budget":      result.Summary.TotalBudget,
	}).Info("Análise de keywords concluída")

	return run, nil
}

// collect busca as keywords em sequência, respeitando o intervalo entre chamadas ao provedor.
// Uma keyword que falha permanece no lote com métricas zeradas e gera um KeywordCollectionError.
func (s *Service) collect(
	ctx context.Context,
	keywords []string,
	location string,
	language string,
	brandDomains []string,
	credentials domain.Credentials,
) ([]domain.KeywordMetricRecord, []domain.KeywordCollectionError, error) {
	delay := time.Duration(s.cfg.Analysis.RequestDelayMS) * time.Millisecond
	params := dataforseodomain.CollectParams{
		Location: location,
		Language: language,
		Credentials: dataforseodomain.Credentials{
			Login:    credentials.DataForSEOLogin,
			Password: credentials.DataForSEOPassword,
		},
	}

	records := make([]domain.KeywordMetricRecord, 0, len(keywords))
	collectionErrors := make([]domain.KeywordCollectionError, 0)
	calledProvider := false

	for i, keyword := range keywords {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		key := cache.SnapshotKey(location, language, keyword)
		snapshot, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logrus.WithField("keyword", keyword).WithError(err).Warn("Erro ao consultar cache de keywords")
		}

		if !ok {
			if calledProvider {
				if err := s.wait(ctx, delay); err != nil {
					return nil, nil, err
				}
			}
			calledProvider = true

			logrus.WithFields(logrus.Fields{
				"keyword":          keyword,
				"keyword_position": fmt.Sprintf("%d/%d", i+1, len(keywords)),
			}).Debug("Coletando keyword")

			snapshot, err = s.collector.CollectKeyword(ctx, keyword, params)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, nil, ctxErr
				}

				logrus.WithField("keyword", keyword).WithError(err).Warn("Falha ao coletar keyword, seguindo com métricas zeradas")
				records = append(records, placeholderRecord(keyword, brandDomains))
				collectionErrors = append(collectionErrors, domain.KeywordCollectionError{
					Keyword: keyword,
					Message: err.Error(),
				})
				continue
			}

			if !snapshot.MetricsDefaulted {
				if err := s.cache.Set(ctx, key, snapshot); err != nil {
					logrus.WithField("keyword", keyword).WithError(err).Warn("Erro ao gravar keyword no cache")
				}
			}
		}

		record, err := BuildRecord(snapshot, brandDomains)
		if err != nil {
			records = append(records, placeholderRecord(keyword, brandDomains))
			collectionErrors = append(collectionErrors, domain.KeywordCollectionError{
				Keyword: keyword,
				Message: err.Error(),
			})
			continue
		}

		// mantém a grafia enviada pelo usuário mesmo quando o snapshot veio do cache
		record.Keyword = keyword
		records = append(records, record)
	}

	return records, collectionErrors, nil
}

func (s *Service) Classify(records []domain.KeywordMetricRecord) (*domain.ClassificationResult, error) {
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return nil, NewAnalysisError(
				fmt.Errorf("%w: %w", ErrInvalidRecord, err),
				apiErrors.ErrInvalidRecord,
				fmt.Sprintf("registro %d", i),
			)
		}
	}

	result := s.recommender.Summarize(records)
	for _, keyword := range result.Classified {
		metrics.RecordClassification(keyword.Recommendation.String())
	}

	return &result, nil
}

func (s *Service) GetAnalysis(ctx context.Context, id string) (*domain.AnalysisRun, error) {
	if s.repository == nil {
		return nil, NewAnalysisError(ErrHistoryDisabled, apiErrors.ErrHistoryDisabled, "Ative HISTORY_ENABLED para consultar análises")
	}

	run, err := s.repository.GetByID(ctx, id)
	if err != nil {
		logrus.WithField("analysis_id", id).WithError(err).Error("Erro ao buscar análise")
		return nil, NewAnalysisError(ErrFetchHistory, apiErrors.ErrDatabaseOperation, "Falha ao buscar análise no banco de dados")
	}

	if run == nil {
		return nil, NewAnalysisError(ErrAnalysisNotFound, apiErrors.ErrAnalysisNotFound, fmt.Sprintf("Análise %s não encontrada", id))
	}

	return run, nil
}

func (s *Service) ListAnalyses(ctx context.Context, filters domain.AnalysisFilters) ([]*domain.AnalysisRun, error) {
	if s.repository == nil {
		return nil, NewAnalysisError(ErrHistoryDisabled, apiErrors.ErrHistoryDisabled, "Ative HISTORY_ENABLED para consultar análises")
	}

	if limit := s.cfg.History.ListLimit; limit > 0 && (filters.Limit == 0 || filters.Limit > limit) {
		filters.Limit = limit
	}

	runs, err := s.repository.List(ctx, filters)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar análises")
		return nil, NewAnalysisError(ErrFetchHistory, apiErrors.ErrDatabaseOperation, "Falha ao listar análises no banco de dados")
	}

	return runs, nil
}

// placeholderRecord representa a keyword sem métricas; a marca depende só do texto
func placeholderRecord(keyword string, brandDomains []string) domain.KeywordMetricRecord {
	return domain.KeywordMetricRecord{
		Keyword:        keyword,
		IsBrandKeyword: IsBrandKeyword(keyword, brandDomains),
	}
}
