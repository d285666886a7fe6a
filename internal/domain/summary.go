package domain

// Summary agrega as contagens por rótulo e o orçamento total de um lote
type Summary struct {
	Total       int     `json:"total"`
	YesPaid     int     `json:"yes_paid"`
	NoPaid      int     `json:"no_paid"`
	Test        int     `json:"test"`
	Opportunity int     `json:"opportunity"`
	TotalBudget float64 `json:"total_budget"`
}

// Add contabiliza uma keyword classificada no resumo
func (s *Summary) Add(keyword ClassifiedKeyword) {
	s.Total++
	s.TotalBudget += keyword.EstimatedMonthlyBudget

	switch keyword.Recommendation {
	case RecommendationYesPaid:
		s.YesPaid++
	case RecommendationNoPaid:
		s.NoPaid++
	case RecommendationTest:
		s.Test++
	case RecommendationOpportunity:
		s.Opportunity++
	}
}

// Count retorna a quantidade de keywords com o rótulo informado
func (s Summary) Count(recommendation Recommendation) int {
	switch recommendation {
	case RecommendationYesPaid:
		return s.YesPaid
	case RecommendationNoPaid:
		return s.NoPaid
	case RecommendationTest:
		return s.Test
	case RecommendationOpportunity:
		return s.Opportunity
	}
	return 0
}

// ThreeLabel funde OPPORTUNITY em TEST para consumidores de três rótulos
func (s Summary) ThreeLabel() Summary {
	projected := s
	projected.Test += projected.Opportunity
	projected.Opportunity = 0
	return projected
}

// ClassificationResult é a saída do agregador, na mesma ordem da entrada
type ClassificationResult struct {
	Classified []ClassifiedKeyword `json:"classified"`
	Summary    Summary             `json:"summary"`
}

// ThreeLabel aplica a projeção de três rótulos em todas as keywords e no resumo
func (r ClassificationResult) ThreeLabel() ClassificationResult {
	classified := make([]ClassifiedKeyword, len(r.Classified))
	for i, keyword := range r.Classified {
		keyword.Recommendation = keyword.Recommendation.ThreeLabel()
		classified[i] = keyword
	}

	return ClassificationResult{
		Classified: classified,
		Summary:    r.Summary.ThreeLabel(),
	}
}
