package kafka

import (
	"context"
	"math/rand"
	"time"
)

const (
	defaultRetryInitial = time.Second
	defaultRetryMax     = 30 * time.Second
)

// retryPolicy — экспоненциальные паузы с equal-jitter.
type retryPolicy struct {
	initial time.Duration
	max     time.Duration
	rnd     *rand.Rand
}

func newRetryPolicy(initial, maxDelay time.Duration, rnd *rand.Rand) retryPolicy {
	if initial <= 0 {
		initial = defaultRetryInitial
	}
	if maxDelay < initial {
		maxDelay = max(initial, defaultRetryMax)
	}
	return retryPolicy{initial: initial, max: maxDelay, rnd: rnd}
}

func (p retryPolicy) start() *retrier {
	return &retrier{policy: p, cur: p.initial}
}

// retrier — состояние одной серии повторов.
type retrier struct {
	policy retryPolicy
	cur    time.Duration
}

// next — пауза перед очередной попыткой; следующая будет вдвое длиннее, но не больше max.
func (r *retrier) next() time.Duration {
	d := r.cur
	r.cur = min(r.cur*2, r.policy.max)
	return equalJitter(d, r.policy.rnd)
}

func (r *retrier) reset() { r.cur = r.policy.initial }

// equalJitter — половина паузы фиксирована, вторая половина случайна.
func equalJitter(d time.Duration, rnd *rand.Rand) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(rnd.Int63n(int64(d-half)+1))
}

// sleepCtx — false, если контекст отменён раньше.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
