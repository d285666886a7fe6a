package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidRecord é o erro base para registros de métricas rejeitados na ingestão
var ErrInvalidRecord = errors.New("invalid keyword metric record")

// InvalidRecordError descreve qual campo do registro violou as restrições
type InvalidRecordError struct {
	Keyword string
	Field   string
	Reason  string
}

func (e *InvalidRecordError) Error() string {
	if e.Keyword != "" {
		return fmt.Sprintf("%s: %q: %s %s", ErrInvalidRecord.Error(), e.Keyword, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidRecord.Error(), e.Field, e.Reason)
}

func (e *InvalidRecordError) Unwrap() error {
	return ErrInvalidRecord
}

// KeywordMetricRecord reúne as métricas de mercado de uma keyword
type KeywordMetricRecord struct {
	Keyword          string  `json:"keyword"`
	SearchVolume     int     `json:"search_volume"`
	CPC              float64 `json:"cpc"`
	Competition      float64 `json:"competition"`
	AdvertiserCount  int     `json:"advertiser_count"`
	OrganicPositions []int   `json:"organic_positions"`
	IsBrandKeyword   bool    `json:"is_brand_keyword"`
}

// KeywordMetrics são as métricas de volume e custo de uma keyword
type KeywordMetrics struct {
	SearchVolume int     `json:"search_volume"`
	CPC          float64 `json:"cpc"`
	Competition  float64 `json:"competition"`
}

// DefaultMetrics são usadas pela ingestão quando o provedor não retorna métricas
var DefaultMetrics = KeywordMetrics{
	SearchVolume: 1000,
	CPC:          0.5,
	Competition:  0.5,
}

// Validate verifica as restrições do registro antes da classificação
func (r KeywordMetricRecord) Validate() error {
	if strings.TrimSpace(r.Keyword) == "" {
		return &InvalidRecordError{Field: "keyword", Reason: "must not be empty"}
	}
	if r.SearchVolume < 0 {
		return &InvalidRecordError{Keyword: r.Keyword, Field: "search_volume", Reason: "must not be negative"}
	}
	if r.CPC < 0 {
		return &InvalidRecordError{Keyword: r.Keyword, Field: "cpc", Reason: "must not be negative"}
	}
	if r.Competition < 0 || r.Competition > 1 {
		return &InvalidRecordError{Keyword: r.Keyword, Field: "competition", Reason: "must be between 0 and 1"}
	}
	if r.AdvertiserCount < 0 {
		return &InvalidRecordError{Keyword: r.Keyword, Field: "advertiser_count", Reason: "must not be negative"}
	}
	for _, position := range r.OrganicPositions {
		if position <= 0 {
			return &InvalidRecordError{Keyword: r.Keyword, Field: "organic_positions", Reason: "must contain only positive ranks"}
		}
	}
	return nil
}

// CountPositionsAtOrAbove conta quantas posições orgânicas estão no rank informado ou melhor
func (r KeywordMetricRecord) CountPositionsAtOrAbove(rank int) int {
	count := 0
	for _, position := range r.OrganicPositions {
		if position <= rank {
			count++
		}
	}
	return count
}

// ClassifiedKeyword é o registro acompanhado da recomendação e do orçamento estimado
type ClassifiedKeyword struct {
	KeywordMetricRecord
	Recommendation         Recommendation `json:"recommendation"`
	EstimatedMonthlyBudget float64        `json:"estimated_monthly_budget"`
}

// NormalizeCompetition converte a concorrência para a escala [0,1].
// Valores acima de 1 são tratados como índice 0–100.
func NormalizeCompetition(value float64) float64 {
	if math.IsNaN(value) || value <= 0 {
		return 0
	}
	if value > 1 {
		value = value / 100
	}
	if value > 1 {
		return 1
	}
	return value
}
