package main

import (
	"flag"

	"github.com/golang-migrate/migrate/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-search-advisor/infrastructure/database/postgres"
	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/pkg/log"
)

// Executa as migrações do histórico fora da API:
//
//	go run ./cmd/migrate -direction up
//	go run ./cmd/migrate -direction down -steps 1
func main() {
	direction := flag.String("direction", "up", "up, down ou version")
	steps := flag.Int("steps", 0, "quantidade de migrações; 0 aplica todas (apenas up)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	m, err := postgres.NewMigrator(cfg.Database.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar migrações")
	}
	defer m.Close()

	switch *direction {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps <= 0 {
			logrus.Fatal("Informe -steps para reverter migrações")
		}
		err = m.Steps(-*steps)
	case "version":
	default:
		logrus.Fatalf("Direção inválida: %s", *direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logrus.WithError(err).Fatal("Erro ao executar migrações")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logrus.WithError(err).Fatal("Erro ao ler a versão do banco")
	}

	logrus.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("Migrações concluídas")
}
