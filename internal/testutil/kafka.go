//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueTopicAndGroup — свежие топик и группа для каждого теста,
// чтобы оффсеты предыдущих прогонов не мешали.
func UniqueTopicAndGroup(base string) (topic, group string) {
	suffix := strconv.FormatInt(time.Now().UnixNano(), 36)
	return base + "-" + suffix, base + "-group-" + suffix
}

// EnsureTopic создаёт однопартиционный топик инвалидаций и ждёт его в метаданных.
// broker: "host:port", "PLAINTEXT://host:port" или список через запятую.
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := bootstrapAddr(broker)

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}

	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}

	return waitPartitions(ctx, addr, topic, 5*time.Second)
}

// -----------------функции-помощники-----------------

func bootstrapAddr(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if u, err := url.Parse(first); err == nil && u.Host != "" {
		return u.Host
	}
	return first
}

func waitPartitions(ctx context.Context, addr, topic string, limit time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	var lastErr error
	for {
		conn, err := kafka.DialContext(ctx, "tcp", addr)
		if err == nil {
			parts, pErr := conn.ReadPartitions(topic)
			_ = conn.Close()
			if pErr == nil && len(parts) > 0 {
				return nil
			}
			err = pErr
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return fmt.Errorf("topic %q not ready: %w", topic, errors.Join(ctx.Err(), lastErr))
		case <-ticker.C:
		}
	}
}
