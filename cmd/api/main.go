package main

import (
	"context"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-search-advisor/infrastructure/cache"
	"github.com/vfg2006/paid-search-advisor/infrastructure/database/postgres"
	"github.com/vfg2006/paid-search-advisor/infrastructure/integrator/bedrock"
	"github.com/vfg2006/paid-search-advisor/infrastructure/integrator/dataforseo"
	"github.com/vfg2006/paid-search-advisor/infrastructure/integrator/dataforseo/dataforseoclient"
	"github.com/vfg2006/paid-search-advisor/infrastructure/integrator/gemini"
	"github.com/vfg2006/paid-search-advisor/infrastructure/repository"
	"github.com/vfg2006/paid-search-advisor/internal/api"
	"github.com/vfg2006/paid-search-advisor/internal/api/handler"
	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"github.com/vfg2006/paid-search-advisor/internal/scheduler"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/analyzing"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/insighting"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/recommending"
	"github.com/vfg2006/paid-search-advisor/pkg/log"
	"github.com/vfg2006/paid-search-advisor/pkg/metrics"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	metrics.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Histórico desativado mantém a interface nil e o analisador responde ANL_005
	var analysisRepo repository.AnalysisRunRepository
	if cfg.History.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		if cfg.Database.RunMigrations {
			if err := postgres.RunMigrations(cfg.Database.DSN); err != nil {
				logrus.WithError(err).Fatal("Erro ao aplicar migrações")
			}
		}

		analysisRepo = repository.NewAnalysisRunRepository(pgConn)
	} else {
		logrus.Info("Histórico de análises desativado por configuração")
	}

	snapshotCache, err := cache.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Warn("Cache de keywords indisponível, seguindo sem cache")
		snapshotCache = cache.NewNoopCache()
	}
	if closer, ok := snapshotCache.(io.Closer); ok {
		defer closer.Close()
	}

	collector := dataforseo.New(cfg, dataforseoclient.NewClient(cfg))

	recommender := recommending.NewService(cfg)

	provider, source := insightProvider(ctx, cfg)
	insightService := insighting.NewService(cfg, recommender, provider, source)

	analyzer := analyzing.NewService(cfg, recommender, collector, snapshotCache, insightService, analysisRepo)

	watchlistSyncService := scheduler.NewWatchlistSyncService(analyzer, cfg)
	historyRetentionService := scheduler.NewHistoryRetentionService(analysisRepo, cfg)

	jobs := map[string]scheduler.Job{
		"sincronização da watchlist": watchlistSyncService,
		"retenção do histórico":      historyRetentionService,
	}
	for name, job := range jobs {
		if err := job.Start(ctx); err != nil {
			logrus.WithError(err).Errorf("Erro ao iniciar o agendador de %s", name)
		}
	}

	server, err := api.New(cfg, analyzer, handler.CronJobServices{
		Watchlist: watchlistSyncService,
		Retention: historyRetentionService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// insightProvider escolhe o modelo pelo INSIGHT_PROVIDER; nil faz o serviço usar o parecer determinístico
func insightProvider(ctx context.Context, cfg *config.Config) (insighting.TextGenerator, domain.InsightSource) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Insight.Provider))

	switch provider {
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			logrus.Info("GEMINI_API_KEY vazia, insights dependem da chave enviada em cada requisição")
		}
		return gemini.NewClient(cfg), domain.InsightSourceGemini

	case "bedrock":
		client, err := bedrock.NewClient(ctx, cfg)
		if err != nil {
			logrus.WithError(err).Warn("Erro ao configurar o Bedrock, usando insights determinísticos")
			return nil, domain.InsightSourceFallback
		}
		return client, domain.InsightSourceBedrock

	case "", "none":
		logrus.Info("Provedor de insights desativado, usando insights determinísticos")
		return nil, domain.InsightSourceFallback

	default:
		logrus.Warnf("INSIGHT_PROVIDER desconhecido: %s, usando insights determinísticos", provider)
		return nil, domain.InsightSourceFallback
	}
}

// chdirToSource faz o .env ao lado do código ser encontrado em `go run`
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	os.Chdir(path.Dir(file))
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
