package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/wildink/config"
	"github.com/Gunvolt24/wildink/internal/airtable"
	"github.com/Gunvolt24/wildink/internal/cache"
	"github.com/Gunvolt24/wildink/internal/kafka"
	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/Gunvolt24/wildink/internal/snapshot"
	rest "github.com/Gunvolt24/wildink/internal/transport/http"
	"github.com/Gunvolt24/wildink/internal/usecase"
	"github.com/Gunvolt24/wildink/pkg/logger"
	"github.com/Gunvolt24/wildink/pkg/metrics"
	"github.com/Gunvolt24/wildink/pkg/telemetry"
	"github.com/Gunvolt24/wildink/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, metrics, consumer).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер витрины
	MetricsServer   *http.Server          // отдельный listener для /metrics (может быть nil)
	KafkaConsumer   ports.MessageConsumer // консьюмер инвалидаций (может быть nil)
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-серверов
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
// Без AIRTABLE_API_KEY/AIRTABLE_BASE_ID сервис не стартует.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// releases — освобождение ресурсов в обратном порядке.
	var releases []func()
	release := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}
	fail := func(err error) (*App, Cleanup, error) {
		release()
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Провайдер каталога и заказов.
	client, err := airtable.NewClient(&airtable.Config{
		APIKey:  cfg.Airtable.APIKey,
		BaseID:  cfg.Airtable.BaseID,
		BaseURL: cfg.Airtable.BaseURL,
		Timeout: cfg.Airtable.Timeout,
	}, logg)
	if err != nil {
		return fail(fmt.Errorf("airtable client: %w", err))
	}

	// Хранилище кэша.
	storage, releaseStorage, err := openStorage(ctx, &cfg.Cache, &cfg.Postgres, logg)
	if err != nil {
		return fail(err)
	}
	releases = append(releases, releaseStorage)

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	if cfg.Tracing.Enabled {
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, telemetry.Config{
			ServiceName:    cfg.Tracing.ServiceName,
			Endpoint:       cfg.Tracing.Endpoint,
			SampleRatio:    cfg.Tracing.SampleRatio,
			CacheNamespace: cfg.Cache.Namespace,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			releases = append(releases, func() {
				if terr := shutdownTrace(context.Background()); terr != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", terr)
				}
			})
		}
	}

	// Сборка зависимостей доменного слоя.
	catalogCache := cache.NewCatalogCache(storage, logg,
		cache.WithNamespace(cfg.Cache.Namespace),
		cache.WithTTL(cfg.Cache.DefaultTTL, cfg.Cache.BuildTTL),
		cache.WithSnapshot(snapshot.NewFile(cfg.Cache.SnapshotPath)),
	)
	catalog := usecase.NewCatalogService(client, catalogCache, logg,
		usecase.WithCatalogTable(cfg.Airtable.CatalogTable),
		usecase.WithEmptyFilterIsMiss(cfg.Cache.EmptyFilterIsMiss),
	)
	orders := usecase.NewOrderService(client, logg, cfg.Airtable.OrdersTable)
	checkout := usecase.NewCheckoutService(catalog, orders, validate.NewCheckoutValidator(), logg)
	drafts := cache.NewDraftStore(storage, logg, cfg.Cache.Namespace)

	// Прогрев кэша снапшотом сборки.
	catalogCache.InitializeWithBuildData(ctx)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(rest.Services{
		Catalog:  catalog,
		Orders:   orders,
		Checkout: checkout,
		Drafts:   drafts,
	}, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, cfg.HTTP.StaticDir, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Addr != "" && cfg.Metrics.Addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		}
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   metricsSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Консьюмер Kafka (опционально).
	if cfg.Kafka.Enabled {
		consumer := kafka.NewConsumer(&kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}, usecase.NewCacheInvalidator(catalogCache, logg), logg)
		app.KafkaConsumer = consumer
		releases = append(releases, func() {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		})
	}

	return app, release, nil
}

// Run — запускает HTTP-серверы и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 3)

	// Запуск консьюмера.
	if a.KafkaConsumer != nil {
		go func() {
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.KafkaConsumer.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	// Запуск HTTP-серверов.
	for _, srv := range []*http.Server{a.HTTPServer, a.MetricsServer} {
		if srv == nil {
			continue
		}
		go func() {
			a.Logger.Infof(ctx, "http server starting (addr=%s)", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-серверов.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	for _, srv := range []*http.Server{a.HTTPServer, a.MetricsServer} {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "http server shutdown failed addr=%s: %v", srv.Addr, err)
		} else {
			a.Logger.Infof(ctx, "http server stopped gracefully addr=%s", srv.Addr)
		}
	}

	// Остановка Kafka-консьюмера
	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
