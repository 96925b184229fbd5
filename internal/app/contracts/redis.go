package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Delete(ctx context.Context, key string) error
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// DeleteIfEquals removes key only while it still holds value, in one
	// server-side step. Reports whether anything was removed.
	DeleteIfEquals(ctx context.Context, key string, value interface{}) (bool, error)
}
