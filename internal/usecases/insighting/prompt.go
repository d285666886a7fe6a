package insighting

import (
	"fmt"
	"strings"

	"github.com/vfg2006/paid-search-advisor/internal/domain"
)

// limite de keywords enviadas ao modelo para manter o prompt dentro da janela de contexto
const maxPromptKeywords = 100

const promptTemplate = `You are a paid search strategist. Analyse the keyword data below for %s and reply in %s.

Provide:
1. SUMMARY: 2-3 sentences about the competitive landscape
2. RECOMMENDATIONS: 3-4 numbered strategic recommendations
3. BUDGET: monthly budget estimate formatted as "€X - €Y"
4. PRIORITY: the 5 keywords to bid on first

Labels: YES_PAID = invest in ads, NO_PAID = organic presence is enough, TEST = small test budget, OPPORTUNITY = strong organic presence worth defending with ads.

BATCH: %d keywords, YES_PAID %d, NO_PAID %d, TEST %d, OPPORTUNITY %d, estimated monthly budget €%.2f

DATA (keyword | volume | cpc | competition | advertisers | top-3 organic positions | brand | label | budget):
%s
RULES:
- Keywords with 3 or more organic top-3 positions do not need paid search
- Generic keywords with high CPC and weak organic presence need paid search
- Consider ROI: volume x CTR x conversion rate
- Budget = sum(CPC x estimated clicks)

Reply ONLY with JSON in this format:
{
  "summary": "...",
  "recommendations": ["1. ...", "2. ...", "3. ..."],
  "budget_estimate": "€X - €Y",
  "priority_keywords": ["kw1", "kw2"]
}
`

// BuildPrompt monta o prompt independente de provedor a partir do resultado da classificação
func BuildPrompt(request domain.InsightRequest, language string) string {
	target := request.BrandDomain
	if target == "" {
		target = "the website"
	}

	var rows strings.Builder
	for i, keyword := range request.Classified {
		if i == maxPromptKeywords {
			fmt.Fprintf(&rows, "- ... %d more keywords omitted\n", len(request.Classified)-maxPromptKeywords)
			break
		}

		fmt.Fprintf(&rows, "- %s | %d | %.2f | %.2f | %d | %d | %t | %s | %.2f\n",
			keyword.Keyword,
			keyword.SearchVolume,
			keyword.CPC,
			keyword.Competition,
			keyword.AdvertiserCount,
			keyword.CountPositionsAtOrAbove(3),
			keyword.IsBrandKeyword,
			keyword.Recommendation,
			keyword.EstimatedMonthlyBudget,
		)
	}

	summary := request.Summary
	return fmt.Sprintf(promptTemplate,
		target,
		language,
		summary.Total,
		summary.YesPaid,
		summary.NoPaid,
		summary.Test,
		summary.Opportunity,
		summary.TotalBudget,
		rows.String(),
	)
}
