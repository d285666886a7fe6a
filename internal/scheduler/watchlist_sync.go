package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/analyzing"
)

var errEmptyWatchlist = errors.New("watchlist sem keywords configuradas")

// WatchlistSyncConfig representa a configuração da reanálise periódica da watchlist
type WatchlistSyncConfig struct {
	CronSchedule string
	Keywords     []string
	BrandDomains []string
	SyncEnabled  bool
}

// WatchlistSyncService reanalisa periodicamente as keywords configuradas e grava o resultado no histórico
type WatchlistSyncService struct {
	scheduler *gocron.Scheduler
	config    WatchlistSyncConfig
	analyzer  analyzing.Analyzer
	guard     runGuard
	ctx       context.Context
	now       func() time.Time

	lastRunID   string
	lastSummary *domain.Summary
}

func NewWatchlistSyncService(analyzer analyzing.Analyzer, appConfig *config.Config) *WatchlistSyncService {
	syncConfig := WatchlistSyncConfig{
		CronSchedule: appConfig.WatchlistSync.CronSchedule,
		Keywords:     appConfig.WatchlistSync.Keywords,
		BrandDomains: appConfig.WatchlistSync.BrandDomains,
		SyncEnabled:  appConfig.WatchlistSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"keywords":      len(syncConfig.Keywords),
		"brand_domains": syncConfig.BrandDomains,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador da watchlist carregada")

	return &WatchlistSyncService{
		scheduler: newScheduler(),
		config:    syncConfig,
		analyzer:  analyzer,
		ctx:       context.Background(),
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *WatchlistSyncService) Start(ctx context.Context) error {
	s.ctx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização da watchlist desabilitada por configuração")
		return nil
	}

	return startCron(ctx, s.scheduler, s.config.CronSchedule, "sincronização da watchlist", s.syncWatchlist)
}

func (s *WatchlistSyncService) syncWatchlist() {
	if !s.guard.tryStart(s.now()) {
		logrus.Info("Sincronização da watchlist já em andamento, ignorando")
		return
	}
	s.runWatchlist()
}

// runWatchlist executa a análise; o guard já deve ter sido adquirido
func (s *WatchlistSyncService) runWatchlist() {
	var err error
	startTime := s.now()
	defer func() {
		s.guard.finish(s.now(), err)
	}()

	if len(s.config.Keywords) == 0 {
		err = errEmptyWatchlist
		logrus.Warn("Nenhuma keyword configurada em WATCHLIST_SYNC_KEYWORDS, nada a sincronizar")
		return
	}

	logrus.WithField("keywords", len(s.config.Keywords)).Info("Iniciando sincronização da watchlist")

	run, err := s.analyzer.Analyze(s.ctx, domain.AnalyzeRequest{
		Keywords:     s.config.Keywords,
		BrandDomains: s.config.BrandDomains,
		Origin:       domain.AnalysisOriginScheduler,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao sincronizar a watchlist")
		return
	}

	s.guard.mu.Lock()
	s.lastRunID = run.ID
	s.lastSummary = &run.Summary
	s.guard.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"analysis_id": run.ID,
		"duration":    s.now().Sub(startTime).String(),
		"yes_paid":    run.Summary.YesPaid,
		"failures":    len(run.CollectionErrors),
	}).Info("Sincronização da watchlist concluída")
}

// TriggerManualSync inicia manualmente uma sincronização da watchlist
func (s *WatchlistSyncService) TriggerManualSync() bool {
	if !s.guard.tryStart(s.now()) {
		logrus.Info("Sincronização da watchlist já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual da watchlist")
	go s.runWatchlist()
	return true
}

// GetStatus retorna o status atual do agendador
func (s *WatchlistSyncService) GetStatus() map[string]any {
	status := s.guard.status()
	status["sync_enabled"] = s.config.SyncEnabled
	status["sync_cron"] = s.config.CronSchedule
	status["keywords"] = len(s.config.Keywords)

	s.guard.mu.Lock()
	status["last_analysis_id"] = s.lastRunID
	status["last_summary"] = s.lastSummary
	s.guard.mu.Unlock()

	return status
}
