// log прокидывает request-scoped *slog.Logger через context.Context.
//
// HTTP-мидлвар Logging кладёт логгер (обогащённый request_id) в контекст
// запроса через Into; сервисный слой достаёт его через From, не завися
// от транспорта.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into возвращает контекст с привязанным логгером.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From достаёт логгер из контекста.
// Если логгер не привязан (или значение битое) — slog.Default().
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}

	return slog.Default()
}
