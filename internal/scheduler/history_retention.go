package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-search-advisor/infrastructure/repository"
	"github.com/vfg2006/paid-search-advisor/internal/config"
)

var errHistoryUnavailable = errors.New("histórico de análises desativado")

// HistoryRetentionService remove do histórico as análises mais antigas que o período de retenção
type HistoryRetentionService struct {
	scheduler     *gocron.Scheduler
	cronSchedule  string
	retentionDays int
	repository    repository.AnalysisRunRepository
	guard         runGuard
	ctx           context.Context
	now           func() time.Time

	lastDeleted int64
}

// NewHistoryRetentionService recebe o repositório nil quando o histórico está desativado
func NewHistoryRetentionService(analysisRepository repository.AnalysisRunRepository, appConfig *config.Config) *HistoryRetentionService {
	return &HistoryRetentionService{
		scheduler:     newScheduler(),
		cronSchedule:  appConfig.History.RetentionCron,
		retentionDays: appConfig.History.RetentionDays,
		repository:    analysisRepository,
		ctx:           context.Background(),
		now:           time.Now,
	}
}

func (s *HistoryRetentionService) enabled() bool {
	return s.repository != nil && s.retentionDays > 0
}

// Start inicia o agendador
func (s *HistoryRetentionService) Start(ctx context.Context) error {
	s.ctx = ctx

	if !s.enabled() {
		logrus.Info("Limpeza do histórico de análises desabilitada")
		return nil
	}

	return startCron(ctx, s.scheduler, s.cronSchedule, "limpeza do histórico", s.cleanup)
}

func (s *HistoryRetentionService) cleanup() {
	if !s.guard.tryStart(s.now()) {
		logrus.Info("Limpeza do histórico já em andamento, ignorando")
		return
	}
	s.runCleanup()
}

func (s *HistoryRetentionService) runCleanup() {
	var err error
	defer func() {
		s.guard.finish(s.now(), err)
	}()

	if !s.enabled() {
		err = errHistoryUnavailable
		return
	}

	deleted, err := s.repository.DeleteOlderThan(s.ctx, s.retentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao limpar histórico de análises")
		return
	}

	s.guard.mu.Lock()
	s.lastDeleted = deleted
	s.guard.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"deleted":        deleted,
		"retention_days": s.retentionDays,
	}).Info("Limpeza do histórico de análises concluída")
}

// TriggerManualSync inicia manualmente a limpeza do histórico
func (s *HistoryRetentionService) TriggerManualSync() bool {
	if !s.guard.tryStart(s.now()) {
		logrus.Info("Limpeza do histórico já em andamento, ignorando solicitação manual")
		return false
	}

	go s.runCleanup()
	return true
}

// GetStatus retorna o status atual do agendador
func (s *HistoryRetentionService) GetStatus() map[string]any {
	status := s.guard.status()
	status["enabled"] = s.enabled()
	status["retention_cron"] = s.cronSchedule
	status["retention_days"] = s.retentionDays

	s.guard.mu.Lock()
	status["last_deleted"] = s.lastDeleted
	s.guard.mu.Unlock()

	return status
}
