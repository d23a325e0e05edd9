package catalog

import "context"

type idempotencyKeyCtx struct{}

// WithIdempotencyKey attaches the key a create request should carry.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

// IdempotencyKeyFrom returns the key attached by WithIdempotencyKey.
func IdempotencyKeyFrom(ctx context.Context) (string, bool) {
	key, _ := ctx.Value(idempotencyKeyCtx{}).(string)
	return key, key != ""
}
