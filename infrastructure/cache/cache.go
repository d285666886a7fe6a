package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/vfg2006/paid-search-advisor/internal/domain"
)

//go:generate mockgen -source=cache.go -destination=mocks/cache_mock.go -package=mocks

const snapshotKeyPrefix = "keyword-snapshot"

// SnapshotCache guarda os dados coletados de cada keyword para evitar chamadas repetidas ao provedor
type SnapshotCache interface {
	// Get retorna ok=false quando a chave não existe ou expirou
	Get(ctx context.Context, key string) (snapshot *domain.KeywordSnapshot, ok bool, err error)
	Set(ctx context.Context, key string, snapshot *domain.KeywordSnapshot) error
}

// SnapshotKey monta a chave keyword-snapshot:<location>:<language>:<keyword em minúsculas>
func SnapshotKey(location, language, keyword string) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		snapshotKeyPrefix,
		strings.ToLower(strings.TrimSpace(location)),
		strings.ToLower(strings.TrimSpace(language)),
		strings.ToLower(strings.TrimSpace(keyword)),
	)
}

type noopCache struct{}

// NewNoopCache é usado quando o Redis não está configurado
func NewNoopCache() SnapshotCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) (*domain.KeywordSnapshot, bool, error) {
	return nil, false, nil
}

func (noopCache) Set(context.Context, string, *domain.KeywordSnapshot) error {
	return nil
}
