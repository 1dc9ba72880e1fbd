// Пакет ctxmeta — метаданные запроса в context.Context (request_id, draft_id, trace_id).
// HTTP-слой кладёт их в контекст, логгер достаёт; друг от друга они не зависят.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyDraftID   ctxKey = "draft_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithDraftID — идентификатор черновика оформления заказа, с которым работает запрос.
func WithDraftID(ctx context.Context, draftID string) context.Context {
	return withString(ctx, KeyDraftID, draftID)
}

func DraftIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyDraftID)
}

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
