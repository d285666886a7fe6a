package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Job é um agendamento que também pode ser disparado manualmente pela API
type Job interface {
	Start(ctx context.Context) error
	// TriggerManualSync retorna false quando já existe uma execução em andamento
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// startCron agenda task na expressão cron e para o agendador quando ctx é cancelado
func startCron(ctx context.Context, scheduler *gocron.Scheduler, cron string, name string, task func()) error {
	logrus.WithField("cron", cron).Infof("Iniciando agendador de %s", name)

	if _, err := scheduler.Cron(cron).Do(task); err != nil {
		return fmt.Errorf("erro ao agendar %s: %w", name, err)
	}

	scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Infof("Parando agendador de %s", name)
		scheduler.Stop()
	}()

	return nil
}

func newScheduler() *gocron.Scheduler {
	return gocron.NewScheduler(time.Local)
}
