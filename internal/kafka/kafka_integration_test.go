//go:build integration

package kafka_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/wildink/internal/cache"
	"github.com/Gunvolt24/wildink/internal/domain"
	ikafka "github.com/Gunvolt24/wildink/internal/kafka"
	"github.com/Gunvolt24/wildink/internal/ports"
	pgrepo "github.com/Gunvolt24/wildink/internal/repo/postgres"
	"github.com/Gunvolt24/wildink/internal/testutil"
	"github.com/Gunvolt24/wildink/internal/usecase"
	"github.com/Gunvolt24/wildink/pkg/logger"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

// 1) Событие item сбрасывает запись товара в общем кэше (Postgres)
func TestKafka_ItemEvent_ClearsItem_TC(t *testing.T) {
	st := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(st.kf.BaseTopic + "-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(st.ctx, st.kf.Brokers[0], topic))

	items := testutil.MakeItems(2)
	require.NoError(t, st.cache.PrePopulate(st.ctx, items))

	runConsumer(t, st, topic, group, "first", usecase.NewCacheInvalidator(st.cache, st.logg))
	writeMsg(t, st.ctx, st.kf.Brokers, topic, []byte(`{"type":"item","id":"`+items[0].ID+`"}`))

	waitUntil(t, 20*time.Second, func() bool { return !st.cache.HasItem(st.ctx, items[0].ID) })

	// соседний товар и список остаются
	require.True(t, st.cache.HasItem(st.ctx, items[1].ID))
	require.True(t, st.cache.HasData(st.ctx))
}

// 2) Мусор пропускается, следующее событие catalog применяется
func TestKafka_Skip_InvalidJSON_Then_ClearCatalog_TC(t *testing.T) {
	st := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(st.kf.BaseTopic + "-invalid-json-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(st.ctx, st.kf.Brokers[0], topic))

	items := testutil.MakeItems(3)
	require.NoError(t, st.cache.PrePopulate(st.ctx, items))

	runConsumer(t, st, topic, group, "first", usecase.NewCacheInvalidator(st.cache, st.logg))

	writeMsg(t, st.ctx, st.kf.Brokers, topic, []byte("not-a-json"))
	writeMsg(t, st.ctx, st.kf.Brokers, topic, []byte(`{"type":"item"}`)) // без id
	writeMsg(t, st.ctx, st.kf.Brokers, topic, []byte(`{"type":"catalog"}`))

	waitUntil(t, 20*time.Second, func() bool { return !st.cache.HasData(st.ctx) })
	for _, it := range items {
		require.False(t, st.cache.HasItem(st.ctx, it.ID))
	}
}

// 3) At-least-once: при сбое хранилища оффсет не коммитится, после рестарта событие передоставляется
func TestKafka_Redelivery_AfterRestart_NoCommit_TC(t *testing.T) {
	st := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(st.kf.BaseTopic + "-redelivery-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(st.ctx, st.kf.Brokers[0], topic))

	items := testutil.MakeItems(1)
	require.NoError(t, st.cache.PrePopulate(st.ctx, items))
	writeMsg(t, st.ctx, st.kf.Brokers, topic, []byte(`{"type":"item","id":"`+items[0].ID+`"}`))

	// Фаза 1: хранилище недоступно => повторы на месте до остановки, оффсет НЕ коммитится
	broken := usecase.NewCacheInvalidator(cache.NewCatalogCache(nil, st.logg), st.logg)
	consumerFail := newConsumer(st, topic, group, "first", broken)

	runCtx1, cancelRun1 := context.WithCancel(st.ctx)
	go func() { _ = consumerFail.Run(runCtx1) }()
	time.Sleep(2 * time.Second)
	cancelRun1()
	_ = consumerFail.Close()

	require.True(t, st.cache.HasItem(st.ctx, items[0].ID))

	// Фаза 2: та же группа, рабочее хранилище
	runConsumer(t, st, topic, group, "first", usecase.NewCacheInvalidator(st.cache, st.logg))
	waitUntil(t, 25*time.Second, func() bool { return !st.cache.HasItem(st.ctx, items[0].ID) })
}

// 4) StartOffset="last": события, опубликованные до старта консьюмера, игнорируются
func TestKafka_StartOffset_Last_IgnoresOld_TC(t *testing.T) {
	st := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(st.kf.BaseTopic + "-last-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(st.ctx, st.kf.Brokers[0], topic))

	old, fresh := testutil.MakeItem(), testutil.MakeItem()
	require.NoError(t, st.cache.PrePopulate(st.ctx, []domain.Item{old, fresh}))

	// "старое" событие до консьюмера
	writeMsg(t, st.ctx, st.kf.Brokers, topic, []byte(`{"type":"item","id":"`+old.ID+`"}`))

	runConsumer(t, st, topic, group, "last", usecase.NewCacheInvalidator(st.cache, st.logg))

	// публикуем новое повторно, пока не применится
	deadline := time.Now().Add(20 * time.Second)
	for st.cache.HasItem(st.ctx, fresh.ID) {
		if time.Now().After(deadline) {
			t.Fatalf("item %s not invalidated in time", fresh.ID)
		}
		writeMsg(t, st.ctx, st.kf.Brokers, topic, []byte(`{"type":"item","id":"`+fresh.ID+`"}`))
		time.Sleep(300 * time.Millisecond)
	}
	require.True(t, st.cache.HasItem(st.ctx, old.ID))
}

// -----------------функции-помощники-----------------

type stack struct {
	ctx   context.Context
	logg  ports.Logger
	cache *cache.CatalogCache
	kf    *testutil.KafkaEnv
}

func newStack(t *testing.T) *stack {
	t.Helper()

	// Длинный контекст — на контейнеры
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "catalog-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	// Короткий контекст — сам тест
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	t.Cleanup(cancel)

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logg, closer, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	return &stack{
		ctx:   ctx,
		logg:  logg,
		cache: cache.NewCatalogCache(pgrepo.NewCacheStorage(pool), logg),
		kf:    kf,
	}
}

func newConsumer(st *stack, topic, group, offset string, applier ports.InvalidationApplier) *ikafka.Consumer {
	return ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        st.kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    offset,
		ProcessTimeout: 3 * time.Second,
		RetryInitial:   100 * time.Millisecond,
		RetryMax:       500 * time.Millisecond,
	}, applier, st.logg)
}

func runConsumer(t *testing.T, st *stack, topic, group, offset string, applier ports.InvalidationApplier) {
	t.Helper()
	c := newConsumer(st, topic, group, offset, applier)

	runCtx, cancelRun := context.WithCancel(st.ctx)
	done := make(chan error, 1)
	go func() { done <- c.Run(runCtx) }()
	t.Cleanup(func() {
		cancelRun()
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			t.Logf("consumer stopped: %v", err)
		}
		_ = c.Close()
	})

	// даём консьюмеру присоединиться к группе/получить assignment
	time.Sleep(1500 * time.Millisecond)
}

func writeMsg(t *testing.T, ctx context.Context, brokers []string, topic string, payload []byte) {
	t.Helper()
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()
	require.NoError(t, w.WriteMessages(ctx, kafka.Message{Value: payload}))
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in %s", timeout)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
