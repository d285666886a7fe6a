package recommending

import (
	"runtime"
	"sync"

	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
)

// lotes menores que isso são processados sem goroutines
const parallelThreshold = 64

// Recommender classifica keywords, estima orçamento e agrega lotes
type Recommender interface {
	Classify(record domain.KeywordMetricRecord) domain.Recommendation
	EstimateBudget(record domain.KeywordMetricRecord, recommendation domain.Recommendation) float64
	EstimateBudgetRange(record domain.KeywordMetricRecord, recommendation domain.Recommendation) BudgetRange
	Summarize(records []domain.KeywordMetricRecord) domain.ClassificationResult
}

type Service struct {
	thresholds Thresholds
	budget     BudgetModel
	maxWorkers int
}

var defaultService = New(DefaultThresholds(), DefaultBudgetModel(), runtime.NumCPU())

func New(thresholds Thresholds, budget BudgetModel, maxWorkers int) *Service {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	return &Service{
		thresholds: thresholds,
		budget:     budget,
		maxWorkers: maxWorkers,
	}
}

// NewService monta o serviço com os limiares e o modelo de orçamento da configuração
func NewService(cfg *config.Config) Recommender {
	thresholds := Thresholds{
		BrandTopRank:            cfg.Classifier.BrandTopRank,
		BrandMinTopPositions:    cfg.Classifier.BrandMinTopPositions,
		BrandAdvertiserCeiling:  cfg.Classifier.BrandAdvertiserCeiling,
		HighCompetition:         cfg.Classifier.HighCompetition,
		HighCPC:                 cfg.Classifier.HighCPC,
		SaturatedAdvertisers:    cfg.Classifier.SaturatedAdvertisers,
		LowCompetition:          cfg.Classifier.LowCompetition,
		LowCPC:                  cfg.Classifier.LowCPC,
		FewAdvertisers:          cfg.Classifier.FewAdvertisers,
		HighSearchVolume:        cfg.Classifier.HighSearchVolume,
		MediumCompetition:       cfg.Classifier.MediumCompetition,
		HighVolumeAdvertisers:   cfg.Classifier.HighVolumeAdvertisers,
		LowSearchVolume:         cfg.Classifier.LowSearchVolume,
		ExpensiveCPC:            cfg.Classifier.ExpensiveCPC,
		OpportunityTopRank:      cfg.Classifier.OpportunityTopRank,
		OpportunityTopPositions: cfg.Classifier.OpportunityTopPositions,
	}

	budget := BudgetModel{
		ClickThroughRate: cfg.Budget.ClickThroughRate,
		LowMultiplier:    cfg.Budget.LowMultiplier,
		HighMultiplier:   cfg.Budget.HighMultiplier,
	}

	return New(thresholds, budget, cfg.Analysis.Workers)
}

func (s *Service) Thresholds() Thresholds {
	return s.thresholds
}

func (s *Service) Classify(record domain.KeywordMetricRecord) domain.Recommendation {
	return s.thresholds.Classify(record)
}

func (s *Service) EstimateBudget(record domain.KeywordMetricRecord, recommendation domain.Recommendation) float64 {
	return s.budget.Estimate(record, recommendation)
}

func (s *Service) EstimateBudgetRange(record domain.KeywordMetricRecord, recommendation domain.Recommendation) BudgetRange {
	return s.budget.EstimateRange(record, recommendation)
}

// Summarize classifica cada registro e agrega o lote mantendo a ordem da entrada
func (s *Service) Summarize(records []domain.KeywordMetricRecord) domain.ClassificationResult {
	classified := make([]domain.ClassifiedKeyword, len(records))

	if len(records) < parallelThreshold || s.maxWorkers == 1 {
		for i, record := range records {
			classified[i] = s.classifyOne(record)
		}
	} else {
		// Cada goroutine escreve apenas no próprio índice
		semaphore := make(chan struct{}, s.maxWorkers)
		var wg sync.WaitGroup

		for i, record := range records {
			wg.Add(1)
			semaphore <- struct{}{}

			go func(i int, record domain.KeywordMetricRecord) {
				defer func() {
					<-semaphore
					wg.Done()
				}()

				classified[i] = s.classifyOne(record)
			}(i, record)
		}

		wg.Wait()
	}

	summary := domain.Summary{}
	for _, keyword := range classified {
		summary.Add(keyword)
	}

	return domain.ClassificationResult{
		Classified: classified,
		Summary:    summary,
	}
}

func (s *Service) classifyOne(record domain.KeywordMetricRecord) domain.ClassifiedKeyword {
	recommendation := s.thresholds.Classify(record)

	return domain.ClassifiedKeyword{
		KeywordMetricRecord:    record,
		Recommendation:         recommendation,
		EstimatedMonthlyBudget: s.budget.Estimate(record, recommendation),
	}
}

// Classify usa os limiares padrão
func Classify(record domain.KeywordMetricRecord) domain.Recommendation {
	return defaultService.Classify(record)
}

// EstimateBudget usa o CTR padrão
func EstimateBudget(record domain.KeywordMetricRecord, recommendation domain.Recommendation) float64 {
	return defaultService.EstimateBudget(record, recommendation)
}

func EstimateBudgetRange(record domain.KeywordMetricRecord, recommendation domain.Recommendation) BudgetRange {
	return defaultService.EstimateBudgetRange(record, recommendation)
}

func Summarize(records []domain.KeywordMetricRecord) domain.ClassificationResult {
	return defaultService.Summarize(records)
}
