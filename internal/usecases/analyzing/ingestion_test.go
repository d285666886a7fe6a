package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
)

func TestNormalizeKeywords(t *testing.T) {
	keywords := NormalizeKeywords([]string{" Scarpe  Running ", "scarpe running", "", "   ", "Nike", "SCARPE RUNNING"})

	assert.Equal(t, []string{"Scarpe Running", "Nike"}, keywords)
	assert.Empty(t, NormalizeKeywords(nil))
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"brandx.it", "brandx.it"},
		{"https://www.BrandX.it/shop?x=1", "brandx.it"},
		{"http://shop.brandx.com:8080", "shop.brandx.com"},
		{"  WWW.brandx.it.  ", "brandx.it"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDomain(tt.input))
		})
	}
}

func TestIsBrandKeyword(t *testing.T) {
	tests := []struct {
		name         string
		keyword      string
		brandDomains []string
		expected     bool
	}{
		{"Contém o nome da marca", "brandx scarpe", []string{"brandx.it"}, true},
		{"Maiúsculas e www", "BrandX Outlet", []string{"www.brandx.com"}, true},
		{"Acentos são ignorados", "Caffè Rossi offerte", []string{"cafferossi.it"}, true},
		{"Acento no domínio informado", "brandx", []string{"brändx.de"}, true},
		{"Nome separado por espaço", "brand x saldi", []string{"brandx.it"}, true},
		{"Domínio com hífen e sufixo composto", "my brand shoes", []string{"my-brand.co.uk"}, true},
		{"Keyword genérica", "scarpe running", []string{"brandx.it"}, false},
		{"Sem domínios de marca", "brandx", nil, false},
		{"Segunda marca da lista", "acme store", []string{"brandx.it", "acme.org"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsBrandKeyword(tt.keyword, tt.brandDomains))
		})
	}
}

func TestOrganicPositionsFor(t *testing.T) {
	results := []domain.OrganicResult{
		{Rank: 3, Domain: "shop.brandx.it"},
		{Rank: 1, Domain: "www.brandx.it"},
		{Rank: 2, Domain: "other.com"},
		{Rank: 5, Domain: "notbrandx.it"},
		{Rank: 12, Domain: "brandx.it"},
	}

	assert.Equal(t, []int{1, 3}, OrganicPositionsFor(results, []string{"brandx.it"}))
	assert.Empty(t, OrganicPositionsFor(results, nil))
}

func TestBuildRecord(t *testing.T) {
	snapshot := &domain.KeywordSnapshot{
		Keyword: "brandx scarpe",
		Metrics: domain.KeywordMetrics{SearchVolume: 1200, CPC: 0.9, Competition: 80},
		Advertisers: []domain.Advertiser{
			{Title: "A"}, {Title: "B"}, {Title: "C"},
		},
		Organic: []domain.OrganicResult{
			{Rank: 1, Domain: "brandx.it"},
			{Rank: 2, Domain: "brandx.it"},
		},
	}

	record, err := BuildRecord(snapshot, []string{"brandx.it"})

	require.NoError(t, err)
	assert.Equal(t, domain.KeywordMetricRecord{
		Keyword:          "brandx scarpe",
		SearchVolume:     1200,
		CPC:              0.9,
		Competition:      0.8,
		AdvertiserCount:  3,
		OrganicPositions: []int{1, 2},
		IsBrandKeyword:   true,
	}, record)
}

func TestBuildRecord_Invalid(t *testing.T) {
	_, err := BuildRecord(&domain.KeywordSnapshot{Keyword: "x", Metrics: domain.KeywordMetrics{CPC: -1}}, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}
