package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// DefaultTopic — топик событий об изменениях каталога у провайдера.
const DefaultTopic = "catalog-invalidations"

// ConsumerConfig — параметры консьюмера событий инвалидации.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string // first|last

	ProcessTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

// ReaderConfig — конфигурация kafka.Reader с ручным коммитом оффсетов.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	topic := c.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          topic,
		CommitInterval: 0,
	}

	switch strings.ToLower(strings.TrimSpace(c.StartOffset)) {
	case "first":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}
