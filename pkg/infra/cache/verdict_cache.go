package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/go-redis/redis/v8"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	VerdictKeyPattern = "verdict:%s:%s"

	localVerdictTTL      = time.Minute
	localVerdictCapacity = 4096
	redisOpTimeout       = 2 * time.Second
)

var ErrCacheMiss = errors.New("verdict not cached")

//go:generate mockery --name=VerdictCache --dir=. --output=./mocks --filename=verdict_cache_mock.go --case=underscore --with-expecter
type VerdictCache interface {
	// Get returns ErrCacheMiss when nothing is stored for fingerprint.
	Get(ctx context.Context, fingerprint string) (*audit.Result, error)
	Set(ctx context.Context, fingerprint string, result *audit.Result) error
}

type verdictCache struct {
	rdb       redis.Cmdable
	namespace string
	ttl       time.Duration
	local     *TTLMap[[]byte]
}

// NewVerdictCache stores msgpack encoded results under a namespace, normally
// the digest of the active label policies, so a policy change never serves a
// verdict computed under the old thresholds.
func NewVerdictCache(rdb redis.Cmdable, namespace string, ttl time.Duration) VerdictCache {
	return &verdictCache{
		rdb:       rdb,
		namespace: namespace,
		ttl:       ttl,
		local:     NewTTLMap[[]byte](localVerdictTTL, localVerdictCapacity),
	}
}

func (c *verdictCache) key(fingerprint string) string {
	return fmt.Sprintf(VerdictKeyPattern, c.namespace, fingerprint)
}

func (c *verdictCache) Get(ctx context.Context, fingerprint string) (*audit.Result, error) {
	key := c.key(fingerprint)
	raw, ok := c.local.Get(key)
	if !ok {
		ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
		defer cancel()
		b, err := c.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read verdict: %w", err)
		}
		raw = b
		c.local.Set(key, raw)
	}
	result := new(audit.Result)
	if err := msgpack.Unmarshal(raw, result); err != nil {
		c.local.Delete(key)
		return nil, fmt.Errorf("failed to decode verdict: %w", err)
	}
	return result, nil
}

func (c *verdictCache) Set(ctx context.Context, fingerprint string, result *audit.Result) error {
	raw, err := msgpack.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode verdict: %w", err)
	}
	key := c.key(fingerprint)
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verdict: %w", err)
	}
	c.local.Set(key, raw)
	return nil
}
