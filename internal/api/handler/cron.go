package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/paid-search-advisor/pkg/apiErrors"
	"github.com/vfg2006/paid-search-advisor/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeWatchlist = "watchlist"
	CronJobTypeRetention = "retention"
	CronJobTypeAll       = "all"
)

// ManualJob é a parte de um agendamento exposta pela API
type ManualJob interface {
	// TriggerManualSync retorna false quando já existe uma execução em andamento
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os agendamentos que podem ser disparados manualmente
type CronJobServices struct {
	Watchlist ManualJob
	Retention ManualJob
}

func (s CronJobServices) byType() map[string]ManualJob {
	jobs := map[string]ManualJob{}
	if s.Watchlist != nil {
		jobs[CronJobTypeWatchlist] = s.Watchlist
	}
	if s.Retention != nil {
		jobs[CronJobTypeRetention] = s.Retention
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		jobs := services.byType()

		var selected []string
		switch cronType {
		case CronJobTypeAll:
			for _, name := range []string{CronJobTypeWatchlist, CronJobTypeRetention} {
				if _, ok := jobs[name]; ok {
					selected = append(selected, name)
				}
			}
		default:
			if _, ok := jobs[cronType]; !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidCronType, "Tipo de cron job inválido. Valores aceitos: watchlist, retention, all", nil)
				return
			}
			selected = []string{cronType}
		}

		started := []string{}
		running := []string{}
		for _, name := range selected {
			if jobs[name].TriggerManualSync() {
				started = append(started, name)
			} else {
				running = append(running, name)
			}
		}

		logger.WithFields(log.Fields{
			"type":    cronType,
			"started": started,
			"running": running,
		}).Info("cron: disparo manual solicitado")

		if len(started) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrCronAlreadyRunning, "Cron job já está em execução", map[string]any{
				"running": running,
			})
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
			"running": running,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		for name, job := range services.byType() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
