package kafka

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/pkg/metrics"
	"github.com/Gunvolt24/wildink/pkg/validate"
	"github.com/segmentio/kafka-go"
)

// decodeEvent — строгий разбор тела сообщения; ошибка обёрнута в validate.ErrInvalidEvent.
func decodeEvent(msg *kafka.Message) (domain.InvalidationEvent, error) {
	ev, err := validate.ParseInvalidationEvent(msg.Value)
	if err != nil {
		return domain.InvalidationEvent{}, err
	}
	return *ev, nil
}

// applyWithRetry применяет событие, пока не получится; ошибка — только отмена контекста.
func (c *Consumer) applyWithRetry(ctx context.Context, topic string, msg *kafka.Message, ev domain.InvalidationEvent) error {
	attempts := c.retry.start()
	for {
		applyCtx, cancel := context.WithTimeout(ctx, c.applyTimeout)
		err := c.applier.Apply(applyCtx, ev)
		cancel()
		if err == nil {
			return nil
		}

		metrics.InvalidationFailed.WithLabelValues(topic).Inc()
		wait := attempts.next()
		c.log.Warnf(ctx, "apply invalidation type=%s id=%s failed %s: %v (retry in %s)",
			ev.Type, ev.ItemID, describe(msg), err, wait)
		if !sleepCtx(ctx, wait) {
			return ctx.Err()
		}
	}
}

// commit — ошибка коммита только логируется: событие идемпотентно.
func (c *Consumer) commit(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed %s: %v", describe(msg), err)
	}
}

func describe(msg *kafka.Message) string {
	return fmt.Sprintf("partition=%d offset=%d key=%q", msg.Partition, msg.Offset, msg.Key)
}
