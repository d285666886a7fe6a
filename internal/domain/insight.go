package domain

type InsightSource string

const (
	InsightSourceGemini   InsightSource = "gemini"
	InsightSourceBedrock  InsightSource = "bedrock"
	InsightSourceFallback InsightSource = "fallback"
)

// Insight é o parecer textual gerado para um lote de keywords classificadas
type Insight struct {
	Summary          string        `json:"summary"`
	Recommendations  []string      `json:"recommendations"`
	BudgetEstimate   string        `json:"budget_estimate"`
	PriorityKeywords []string      `json:"priority_keywords"`
	Source           InsightSource `json:"source"`
}

// InsightRequest contém tudo que o gerador de insights precisa para montar o prompt
type InsightRequest struct {
	Classified  []ClassifiedKeyword
	Summary     Summary
	BrandDomain string
	Credentials Credentials
}
