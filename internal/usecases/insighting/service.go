package insighting

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/recommending"
)

type Service struct {
	recommender recommending.Recommender
	provider    TextGenerator
	source      domain.InsightSource
	language    string
}

// NewService cria o gerador de insights. provider nil desativa o modelo e usa sempre o parecer determinístico.
func NewService(
	cfg *config.Config,
	recommender recommending.Recommender,
	provider TextGenerator,
	source domain.InsightSource,
) Generator {
	language := cfg.Insight.Language
	if language == "" {
		language = "Italian"
	}

	return &Service{
		recommender: recommender,
		provider:    provider,
		source:      source,
		language:    language,
	}
}

func (s *Service) GenerateInsights(ctx context.Context, request domain.InsightRequest) (*domain.Insight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.provider == nil || len(request.Classified) == 0 {
		return FallbackInsight(request, s.recommender), nil
	}

	fields := logrus.Fields{
		"provider": s.source,
		"keywords": len(request.Classified),
	}

	text, err := s.provider.Generate(ctx, BuildPrompt(request, s.language), request.Credentials)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		logrus.WithFields(fields).WithError(err).Warn("Falha ao gerar insight com o modelo, usando parecer padrão")
		return FallbackInsight(request, s.recommender), nil
	}

	insight, err := ParseInsight(text)
	if err != nil {
		logrus.WithFields(fields).WithError(err).Warn("Resposta do modelo inválida, usando parecer padrão")
		return FallbackInsight(request, s.recommender), nil
	}

	insight.Source = s.source
	logrus.WithFields(fields).Debug("Insight gerado pelo modelo")

	return insight, nil
}
