package recommending

import "github.com/vfg2006/paid-search-advisor/internal/domain"

// Limiares do caminho de marca
const (
	BrandTopRank           = 3
	BrandMinTopPositions   = 3
	BrandAdvertiserCeiling = 2
)

// Limiares do caminho genérico
const (
	HighCompetition         = 0.7
	HighCPC                 = 1.5
	SaturatedAdvertisers    = 8
	LowCompetition          = 0.3
	LowCPC                  = 0.5
	FewAdvertisers          = 3
	HighSearchVolume        = 5000
	MediumCompetition       = 0.5
	HighVolumeAdvertisers   = 5
	LowSearchVolume         = 500
	ExpensiveCPC            = 2.0
	OpportunityTopRank      = 3
	OpportunityTopPositions = 2
)

// Thresholds agrupa os limiares das regras de classificação.
// Todas as comparações são estritas, exceto as contagens de posições orgânicas.
type Thresholds struct {
	BrandTopRank           int `json:"brand_top_rank"`
	BrandMinTopPositions   int `json:"brand_min_top_positions"`
	BrandAdvertiserCeiling int `json:"brand_advertiser_ceiling"`

	HighCompetition      float64 `json:"high_competition"`
	HighCPC              float64 `json:"high_cpc"`
	SaturatedAdvertisers int     `json:"saturated_advertisers"`

	LowCompetition float64 `json:"low_competition"`
	LowCPC         float64 `json:"low_cpc"`
	FewAdvertisers int     `json:"few_advertisers"`

	HighSearchVolume      int     `json:"high_search_volume"`
	MediumCompetition     float64 `json:"medium_competition"`
	HighVolumeAdvertisers int     `json:"high_volume_advertisers"`

	LowSearchVolume int     `json:"low_search_volume"`
	ExpensiveCPC    float64 `json:"expensive_cpc"`

	OpportunityTopRank      int `json:"opportunity_top_rank"`
	OpportunityTopPositions int `json:"opportunity_top_positions"`
}

// DefaultThresholds retorna a tabela canônica de quatro rótulos
func DefaultThresholds() Thresholds {
	return Thresholds{
		BrandTopRank:            BrandTopRank,
		BrandMinTopPositions:    BrandMinTopPositions,
		BrandAdvertiserCeiling:  BrandAdvertiserCeiling,
		HighCompetition:         HighCompetition,
		HighCPC:                 HighCPC,
		SaturatedAdvertisers:    SaturatedAdvertisers,
		LowCompetition:          LowCompetition,
		LowCPC:                  LowCPC,
		FewAdvertisers:          FewAdvertisers,
		HighSearchVolume:        HighSearchVolume,
		MediumCompetition:       MediumCompetition,
		HighVolumeAdvertisers:   HighVolumeAdvertisers,
		LowSearchVolume:         LowSearchVolume,
		ExpensiveCPC:            ExpensiveCPC,
		OpportunityTopRank:      OpportunityTopRank,
		OpportunityTopPositions: OpportunityTopPositions,
	}
}

// Classify aplica as regras em ordem; a primeira que casar define o rótulo.
// A função é total: qualquer registro válido recebe exatamente um rótulo.
func (t Thresholds) Classify(record domain.KeywordMetricRecord) domain.Recommendation {
	if record.IsBrandKeyword {
		return t.classifyBrand(record)
	}
	return t.classifyGeneric(record)
}

func (t Thresholds) classifyBrand(record domain.KeywordMetricRecord) domain.Recommendation {
	// A marca já domina o topo orgânico
	if record.CountPositionsAtOrAbove(t.BrandTopRank) >= t.BrandMinTopPositions {
		return domain.RecommendationNoPaid
	}

	// Concorrentes estão comprando a marca
	if record.AdvertiserCount > t.BrandAdvertiserCeiling {
		return domain.RecommendationYesPaid
	}

	return domain.RecommendationTest
}

func (t Thresholds) classifyGeneric(record domain.KeywordMetricRecord) domain.Recommendation {
	switch {
	case record.Competition > t.HighCompetition &&
		record.CPC > t.HighCPC &&
		record.AdvertiserCount > t.SaturatedAdvertisers:
		return domain.RecommendationYesPaid

	case record.Competition < t.LowCompetition &&
		record.CPC < t.LowCPC &&
		record.AdvertiserCount < t.FewAdvertisers:
		return domain.RecommendationNoPaid

	case record.SearchVolume > t.HighSearchVolume &&
		record.Competition > t.MediumCompetition &&
		record.AdvertiserCount > t.HighVolumeAdvertisers:
		return domain.RecommendationYesPaid

	case record.SearchVolume < t.LowSearchVolume &&
		record.CPC > t.ExpensiveCPC:
		return domain.RecommendationNoPaid

	case record.CountPositionsAtOrAbove(t.OpportunityTopRank) >= t.OpportunityTopPositions:
		return domain.RecommendationOpportunity
	}

	return domain.RecommendationTest
}
