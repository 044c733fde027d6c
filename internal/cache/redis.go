package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys. Part lists change on every stock movement so they get short
// TTLs; job snapshots are invalidated explicitly on mutation.
const (
	PartsListKey      = "parts:all"
	LowStockKey       = "parts:low_stock"
	JobSnapshotKeyFmt = "job:snapshot:%d"
)

var client *redis.Client

// Init initializes the Redis connection. A failed connection degrades to
// no caching rather than failing startup.
func Init(host string, port int, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// GetCachedPartsList returns the cached spare parts listing if available
func GetCachedPartsList(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, PartsListKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CachePartsList caches the spare parts listing for 2 minutes
func CachePartsList(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, PartsListKey, data, 2*time.Minute)
}

// GetCachedLowStock returns the cached low stock listing if available
func GetCachedLowStock(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, LowStockKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheLowStock caches the low stock listing for 2 minutes
func CacheLowStock(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, LowStockKey, data, 2*time.Minute)
}

// InvalidateParts drops the part listings after any stock movement
func InvalidateParts(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, PartsListKey, LowStockKey)
}

// GetCachedJobSnapshot returns a cached job snapshot if available
func GetCachedJobSnapshot(ctx context.Context, jobID int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(JobSnapshotKeyFmt, jobID)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheJobSnapshot caches a job snapshot for 5 minutes
func CacheJobSnapshot(ctx context.Context, jobID int, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(JobSnapshotKeyFmt, jobID), data, 5*time.Minute)
}

// InvalidateJobSnapshot drops a job's cached snapshot after a mutation
func InvalidateJobSnapshot(ctx context.Context, jobID int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(JobSnapshotKeyFmt, jobID))
}
