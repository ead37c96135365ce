// Утилита миграций: применяет встроенные SQL-миграции вверх или вниз.
//
// Использование:
//
//	migrate --direction=up   [--config=path]
//	migrate --direction=down [--config=path]
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pribylovaa/go-task-tracker/internal/config"
	"github.com/pribylovaa/go-task-tracker/internal/storage/migrate"
)

func main() {
	var (
		configPath string
		direction  string
	)
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&direction, "direction", "up", "migration direction: up or down")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg := config.MustLoad(configPath)

	if err := migrate.Run(cfg.DB.DatabaseURL, direction); err != nil {
		log.Error("migration_failed",
			slog.String("direction", direction),
			slog.String("err", err.Error()),
		)
		os.Exit(1)
	}

	log.Info("migration_applied", slog.String("direction", direction))
}
