package service

import (
	"context"
	"errors"
	"time"
)

// ErrNoEncontrado marks lookups for rows that do not exist. Handlers map it
// to 404.
var ErrNoEncontrado = errors.New("recurso no encontrado")

// boundCtx caps every store-bound operation at the configured timeout so a
// wedged database surfaces an error instead of hanging the request.
func boundCtx(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
