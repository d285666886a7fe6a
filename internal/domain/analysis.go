package domain

import "time"

type AnalysisOrigin string

const (
	AnalysisOriginAPI       AnalysisOrigin = "api"
	AnalysisOriginScheduler AnalysisOrigin = "scheduler"
)

// KeywordCollectionError registra uma keyword cuja coleta falhou
type KeywordCollectionError struct {
	Keyword string `json:"keyword"`
	Message string `json:"message"`
}

// AnalysisRun é o resultado completo de uma análise de keywords
type AnalysisRun struct {
	ID               string                   `json:"id"`
	Origin           AnalysisOrigin           `json:"origin"`
	Location         string                   `json:"location"`
	Language         string                   `json:"language"`
	BrandDomains     []string                 `json:"brand_domains"`
	KeywordCount     int                      `json:"keyword_count"`
	Results          []ClassifiedKeyword      `json:"results,omitempty"`
	Summary          Summary                  `json:"summary"`
	Insight          *Insight                 `json:"insight,omitempty"`
	CollectionErrors []KeywordCollectionError `json:"collection_errors,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
}

// AnalysisFilters filtra a listagem do histórico de análises
type AnalysisFilters struct {
	Since *time.Time
	Limit uint64
}

// AnalyzeRequest é a entrada de uma análise completa: coleta, classificação e insight
type AnalyzeRequest struct {
	Keywords     []string       `json:"keywords"`
	BrandDomains []string       `json:"brand_domains"`
	Location     string         `json:"location"`
	Language     string         `json:"language"`
	SkipInsight  bool           `json:"skip_insight"`
	Credentials  Credentials    `json:"credentials"`
	Origin       AnalysisOrigin `json:"-"`
}
