package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"medication-route-service/internal/domain"
	"medication-route-service/internal/platform/obs"
	"medication-route-service/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "distributor:"

type cachedStop struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// RedisDistributorDirectory is a read-through cache in front of another
// DistributorDirectory. Only single-name lookups are cached; listing always goes
// to the backing directory. Redis failures degrade to the backing directory.
type RedisDistributorDirectory struct {
	client *redis.Client
	next   ports.DistributorDirectory
	ttl    time.Duration
}

func NewRedisDistributorDirectory(client *redis.Client, next ports.DistributorDirectory, ttl time.Duration) *RedisDistributorDirectory {
	return &RedisDistributorDirectory{client: client, next: next, ttl: ttl}
}

func (r *RedisDistributorDirectory) FindDistributor(ctx context.Context, name string) (_ domain.Stop, err error) {
	defer obs.Time(ctx, "redis.FindDistributor")(&err)

	if r.next == nil {
		return domain.Stop{}, errors.New("distributor cache: backing directory is nil")
	}

	key := keyPrefix + name

	raw, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var c cachedStop
		if jsonErr := json.Unmarshal([]byte(raw), &c); jsonErr == nil {
			return domain.NewStop(c.Name, c.Lat, c.Lon), nil
		}
		log.Printf("req_id=%s distributor cache: dropping corrupt entry key=%s", obs.RequestID(ctx), key)
	case errors.Is(err, redis.Nil):
	default:
		log.Printf("req_id=%s distributor cache read failed: %v", obs.RequestID(ctx), err)
	}

	stop, err := r.next.FindDistributor(ctx, name)
	if err != nil {
		return domain.Stop{}, err
	}

	b, err := json.Marshal(cachedStop{Name: stop.Label, Lat: stop.Location.Lat, Lon: stop.Location.Lon})
	if err != nil {
		return domain.Stop{}, fmt.Errorf("distributor cache: encode %q: %w", name, err)
	}
	if setErr := r.client.Set(ctx, key, b, r.ttl).Err(); setErr != nil {
		log.Printf("req_id=%s distributor cache write failed: %v", obs.RequestID(ctx), setErr)
	}

	return stop, nil
}

func (r *RedisDistributorDirectory) ListDistributors(ctx context.Context) ([]domain.Stop, error) {
	if r.next == nil {
		return nil, errors.New("distributor cache: backing directory is nil")
	}
	return r.next.ListDistributors(ctx)
}

// Invalidate drops the cached entry for name, e.g. after reseeding.
func (r *RedisDistributorDirectory) Invalidate(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}

	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = keyPrefix + n
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("distributor cache: invalidate: %w", err)
	}
	return nil
}
