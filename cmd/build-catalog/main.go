package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/wildink/config"
	"github.com/Gunvolt24/wildink/internal/airtable"
	"github.com/Gunvolt24/wildink/internal/snapshot"
	"github.com/Gunvolt24/wildink/pkg/logger"
	"github.com/Gunvolt24/wildink/pkg/validate"
	"github.com/joho/godotenv"
)

// Выгрузка каталога провайдера в статический снапшот перед сборкой витрины.
// Без учётных данных провайдера пишет пустой снапшот и завершается успешно.
func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = cleanup() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	file := snapshot.NewFile(cfg.Cache.SnapshotPath)

	client, err := airtable.NewClient(&airtable.Config{
		APIKey:  cfg.Airtable.APIKey,
		BaseID:  cfg.Airtable.BaseID,
		BaseURL: cfg.Airtable.BaseURL,
		Timeout: cfg.Airtable.Timeout,
	}, logg)
	if err != nil {
		// ErrNotConfigured — единственная ошибка конструктора
		if wErr := snapshot.NewExporter(nil, nil, file, cfg.Airtable.CatalogTable, logg).WriteEmpty(ctx); wErr != nil {
			logg.Errorf(ctx, "write empty snapshot failed: %v", wErr)
			return 1
		}
		return 0
	}

	exporter := snapshot.NewExporter(client, validate.NewItemValidator(), file, cfg.Airtable.CatalogTable, logg)
	n, err := exporter.Run(ctx)
	if err != nil {
		logg.Errorf(ctx, "build catalog snapshot failed: %v", err)
		return 1
	}
	logg.Infof(ctx, "build catalog snapshot done items=%d path=%s", n, cfg.Cache.SnapshotPath)
	return 0
}
