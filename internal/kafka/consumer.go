package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/Gunvolt24/wildink/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над kafka.Reader, подменяется моком в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// Consumer — читает события об изменениях каталога и сбрасывает соответствующие записи кэша.
// Оффсет коммитится только после того, как событие применено или признано мусором.
type Consumer struct {
	reader       reader
	applier      ports.InvalidationApplier
	log          ports.Logger
	applyTimeout time.Duration
	retry        retryPolicy
	closeOnce    sync.Once
}

func NewConsumer(cfg *ConsumerConfig, applier ports.InvalidationApplier, log ports.Logger) *Consumer {
	applyTimeout := cfg.ProcessTimeout
	if applyTimeout <= 0 {
		applyTimeout = 5 * time.Second
	}
	return &Consumer{
		reader:       kafka.NewReader(cfg.ReaderConfig()),
		applier:      applier,
		log:          log,
		applyTimeout: applyTimeout,
		retry: newRetryPolicy(cfg.RetryInitial, cfg.RetryMax,
			rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
}

// Run читает топик до отмены контекста.
// Сбой хранилища кэша не пропускает событие: оно применяется повторно на месте,
// а при остановке без коммита будет доставлено заново.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "invalidation consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	fetchRetry := c.retry.start()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait := fetchRetry.next()
			c.log.Warnf(ctx, "fetch invalidation failed: %v (retry in %s)", err, wait)
			if !sleepCtx(ctx, wait) {
				return ctx.Err()
			}
			continue
		}
		fetchRetry.reset()
		metrics.InvalidationConsumed.WithLabelValues(rc.Topic).Inc()

		ev, err := decodeEvent(&msg)
		if err != nil {
			metrics.InvalidationFailed.WithLabelValues(rc.Topic).Inc()
			c.log.Warnf(ctx, "invalidation skipped %s: %v", describe(&msg), err)
			c.commit(ctx, &msg)
			continue
		}

		if err := c.applyWithRetry(ctx, rc.Topic, &msg, ev); err != nil {
			return err
		}
		metrics.InvalidationProcessed.WithLabelValues(rc.Topic).Inc()
		c.commit(ctx, &msg)
	}
}

// Close — закрывает reader; повторные вызовы безопасны.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
