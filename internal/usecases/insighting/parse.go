package insighting

import (
	"fmt"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrUnparseableInsight = errors.New("resposta do modelo não contém JSON válido")

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

const (
	defaultInsightSummary = "Análise concluída."
	defaultBudgetEstimate = "N/A"
)

type modelInsight struct {
	Summary          string `json:"summary"`
	Recommendations  []any  `json:"recommendations"`
	BudgetEstimate   any    `json:"budget_estimate"`
	PriorityKeywords []any  `json:"priority_keywords"`
}

// extractJSON devolve o bloco ```json``` da resposta ou, na falta dele, o trecho entre a primeira '{' e a última '}'
func extractJSON(text string) (string, bool) {
	if match := fencedJSON.FindStringSubmatch(text); match != nil {
		return match[1], true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// ParseInsight converte o texto do modelo em Insight, preenchendo campos ausentes com valores padrão
func ParseInsight(text string) (*domain.Insight, error) {
	raw, ok := extractJSON(text)
	if !ok {
		return nil, ErrUnparseableInsight
	}

	var parsed modelInsight
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, errors.Wrap(ErrUnparseableInsight, err.Error())
	}

	insight := &domain.Insight{
		Summary:          strings.TrimSpace(parsed.Summary),
		Recommendations:  toStrings(parsed.Recommendations),
		BudgetEstimate:   budgetText(parsed.BudgetEstimate),
		PriorityKeywords: toStrings(parsed.PriorityKeywords),
	}

	if insight.Summary == "" {
		insight.Summary = defaultInsightSummary
	}

	return insight, nil
}

func toStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		switch v := value.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				out = append(out, s)
			}
		case nil:
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

func budgetText(value any) string {
	switch v := value.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	case float64:
		return fmt.Sprintf("€%.0f", v)
	}
	return defaultBudgetEstimate
}
