package insighting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/recommending"
	"github.com/vfg2006/paid-search-advisor/pkg/utils"
)

const maxPriorityKeywords = 5

// FallbackInsight monta um parecer determinístico a partir do resumo, sem depender de modelo de linguagem
func FallbackInsight(request domain.InsightRequest, recommender recommending.Recommender) *domain.Insight {
	summary := request.Summary

	var (
		budget   recommending.BudgetRange
		cpcTotal float64
	)
	for _, keyword := range request.Classified {
		cpcTotal += keyword.CPC

		keywordRange := recommender.EstimateBudgetRange(keyword.KeywordMetricRecord, keyword.Recommendation)
		budget.Low += keywordRange.Low
		budget.High += keywordRange.High
	}

	var averageCPC float64
	if len(request.Classified) > 0 {
		averageCPC = utils.RoundCents(cpcTotal / float64(len(request.Classified)))
	}

	text := fmt.Sprintf(
		"Analisadas %d keywords: %d pedem investimento pago, %d já têm presença orgânica forte, %d devem ser testadas e %d já ranqueiam bem no orgânico sem sinal de mídia paga. CPC médio: €%.2f.",
		summary.Total, summary.YesPaid, summary.NoPaid, summary.Test, summary.Opportunity, averageCPC,
	)

	return &domain.Insight{
		Summary:          text,
		Recommendations:  fallbackRecommendations(request),
		BudgetEstimate:   fmt.Sprintf("€%.0f - €%.0f", budget.Low, budget.High),
		PriorityKeywords: priorityKeywords(request.Classified),
		Source:           domain.InsightSourceFallback,
	}
}

func fallbackRecommendations(request domain.InsightRequest) []string {
	summary := request.Summary
	recommendations := make([]string, 0, 5)

	add := func(format string, args ...any) {
		recommendations = append(recommendations, fmt.Sprintf("%d. ", len(recommendations)+1)+fmt.Sprintf(format, args...))
	}

	if summary.YesPaid > 0 {
		add("Prioridade alta: investir nas %d keywords com alta concorrência e potencial de tráfego", summary.YesPaid)
	}
	if summary.Opportunity > 0 {
		add("Oportunidade: %d keywords já ranqueiam bem no orgânico, anúncios de baixo custo podem ocupar mais espaço na SERP", summary.Opportunity)
	}
	if summary.NoPaid > 0 {
		add("Economia: %d keywords performam bem organicamente e dispensam mídia paga", summary.NoPaid)
	}
	if summary.Test > 0 {
		add("Testes: experimentar com orçamento limitado nas %d keywords de potencial médio", summary.Test)
	}
	if request.BrandDomain != "" {
		add("Marca: acompanhar concorrentes que anunciam nos termos de %s", strings.ToLower(request.BrandDomain))
	}
	add("Monitoramento: revisar o ROI semanalmente e ajustar os lances")

	return recommendations
}

// priorityKeywords devolve as keywords YES_PAID de maior volume, mantendo a ordem de entrada em caso de empate
func priorityKeywords(classified []domain.ClassifiedKeyword) []string {
	paid := make([]domain.ClassifiedKeyword, 0, len(classified))
	for _, keyword := range classified {
		if keyword.Recommendation == domain.RecommendationYesPaid {
			paid = append(paid, keyword)
		}
	}

	sort.SliceStable(paid, func(i, j int) bool {
		return paid[i].SearchVolume > paid[j].SearchVolume
	})

	if len(paid) > maxPriorityKeywords {
		paid = paid[:maxPriorityKeywords]
	}

	keywords := make([]string, 0, len(paid))
	for _, keyword := range paid {
		keywords = append(keywords, keyword.Keyword)
	}
	return keywords
}
