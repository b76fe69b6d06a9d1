package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/casafind/casafind-backend/internal/logger"
	"github.com/casafind/casafind-backend/internal/types"
)

const viewKeyPrefix = "listing:views:"

// ViewStore is the event-store side of the system: one counter document per
// listing id. Listing ids are held by value only; nothing guarantees the
// listing still exists in Postgres.
type ViewStore interface {
	ListAll(ctx context.Context) ([]types.ViewRecord, error)
	Increment(ctx context.Context, listingID string) (int64, error)
	Close() error
}

type viewStore struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewViewStore(log *logger.Logger) (ViewStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &viewStore{
		log: log.With("service", "RedisViewStore"),
		rdb: rdb,
	}, nil
}

func (s *viewStore) ListAll(ctx context.Context) ([]types.ViewRecord, error) {
	if s == nil || s.rdb == nil {
		return nil, fmt.Errorf("redis view store not initialized")
	}

	var keys []string
	iter := s.rdb.Scan(ctx, 0, viewKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan view records: %w", err)
	}
	if len(keys) == 0 {
		return []types.ViewRecord{}, nil
	}

	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch view records: %w", err)
	}

	records := make([]types.ViewRecord, 0, len(keys))
	for i, key := range keys {
		record := types.ViewRecord{ListingID: strings.TrimPrefix(key, viewKeyPrefix)}
		if raw, ok := vals[i].(string); ok {
			views, parseErr := strconv.ParseInt(raw, 10, 64)
			if parseErr != nil {
				s.log.Warn("Skipping unparseable view counter", "key", key, "value", raw)
				continue
			}
			record.Views = views
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *viewStore) Increment(ctx context.Context, listingID string) (int64, error) {
	if s == nil || s.rdb == nil {
		return 0, fmt.Errorf("redis view store not initialized")
	}
	views, err := s.rdb.IncrBy(ctx, viewKeyPrefix+listingID, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("increment view counter: %w", err)
	}
	return views, nil
}

func (s *viewStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
