package recommending

import (
	"math"

	"github.com/vfg2006/paid-search-advisor/internal/domain"
)

const (
	// DefaultClickThroughRate é a taxa de cliques assumida para estimar o tráfego pago
	DefaultClickThroughRate = 0.02
	BudgetLowMultiplier     = 0.7
	BudgetHighMultiplier    = 1.3
)

// BudgetModel estima o gasto mensal de uma keyword a partir de volume, CTR e CPC
type BudgetModel struct {
	ClickThroughRate float64 `json:"click_through_rate"`
	LowMultiplier    float64 `json:"low_multiplier"`
	HighMultiplier   float64 `json:"high_multiplier"`
}

// BudgetRange é a faixa mínima e máxima de orçamento
type BudgetRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func DefaultBudgetModel() BudgetModel {
	return BudgetModel{
		ClickThroughRate: DefaultClickThroughRate,
		LowMultiplier:    BudgetLowMultiplier,
		HighMultiplier:   BudgetHighMultiplier,
	}
}

// Estimate retorna 0 para NO_PAID e round(volume * CTR * CPC) para os demais rótulos
func (m BudgetModel) Estimate(record domain.KeywordMetricRecord, recommendation domain.Recommendation) float64 {
	if recommendation == domain.RecommendationNoPaid {
		return 0
	}
	return roundBudget(m.spend(record))
}

// EstimateRange aplica os multiplicadores de faixa sobre o gasto bruto
func (m BudgetModel) EstimateRange(record domain.KeywordMetricRecord, recommendation domain.Recommendation) BudgetRange {
	if recommendation == domain.RecommendationNoPaid {
		return BudgetRange{}
	}

	spend := m.spend(record)
	return BudgetRange{
		Low:  roundBudget(spend * m.LowMultiplier),
		High: roundBudget(spend * m.HighMultiplier),
	}
}

func (m BudgetModel) spend(record domain.KeywordMetricRecord) float64 {
	clicks := float64(record.SearchVolume) * m.ClickThroughRate
	return clicks * record.CPC
}

func roundBudget(value float64) float64 {
	if math.IsNaN(value) || value <= 0 {
		return 0
	}
	return math.Round(value)
}
