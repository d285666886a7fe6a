package insighting

import (
	"context"

	"github.com/vfg2006/paid-search-advisor/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/insighting_mock.go -package=mocks

// TextGenerator envia um prompt para um modelo de linguagem e devolve o texto bruto da resposta
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, credentials domain.Credentials) (string, error)
}

// Generator produz o parecer textual de um lote de keywords classificadas
type Generator interface {
	// GenerateInsights nunca falha por causa do provedor: em caso de erro devolve o parecer determinístico
	GenerateInsights(ctx context.Context, request domain.InsightRequest) (*domain.Insight, error)
}
