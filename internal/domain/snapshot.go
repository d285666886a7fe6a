package domain

import "time"

// Advertiser é um anunciante encontrado no leilão de uma keyword
type Advertiser struct {
	Title        string `json:"title"`
	AdvertiserID string `json:"advertiser_id,omitempty"`
	Domain       string `json:"domain,omitempty"`
	Verified     bool   `json:"verified"`
	Type         string `json:"type"`
}

// OrganicResult é um resultado orgânico da SERP
type OrganicResult struct {
	Rank   int    `json:"rank"`
	Domain string `json:"domain"`
	URL    string `json:"url,omitempty"`
	Title  string `json:"title,omitempty"`
}

// KeywordSnapshot guarda os dados brutos coletados para uma keyword,
// independentes dos domínios de marca de quem pediu a análise
type KeywordSnapshot struct {
	Keyword          string          `json:"keyword"`
	Location         string          `json:"location"`
	Language         string          `json:"language"`
	Metrics          KeywordMetrics  `json:"metrics"`
	MetricsDefaulted bool            `json:"metrics_defaulted"`
	Advertisers      []Advertiser    `json:"advertisers"`
	Organic          []OrganicResult `json:"organic"`
	CollectedAt      time.Time       `json:"collected_at"`
}
