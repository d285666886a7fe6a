package domain

// Recommendation é o rótulo de decisão de mídia paga para uma keyword
type Recommendation string

const (
	RecommendationYesPaid     Recommendation = "YES_PAID"
	RecommendationNoPaid      Recommendation = "NO_PAID"
	RecommendationTest        Recommendation = "TEST"
	RecommendationOpportunity Recommendation = "OPPORTUNITY"
)

// Recommendations lista os rótulos na ordem usada em resumos e relatórios
var Recommendations = []Recommendation{
	RecommendationYesPaid,
	RecommendationNoPaid,
	RecommendationTest,
	RecommendationOpportunity,
}

func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendationYesPaid, RecommendationNoPaid, RecommendationTest, RecommendationOpportunity:
		return true
	}
	return false
}

// ThreeLabel projeta o rótulo para consumidores que só conhecem YES_PAID, NO_PAID e TEST
func (r Recommendation) ThreeLabel() Recommendation {
	if r == RecommendationOpportunity {
		return RecommendationTest
	}
	return r
}

func (r Recommendation) String() string {
	return string(r)
}
