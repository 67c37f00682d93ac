package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisDistanceCache persists per-scenario distance matrices in a Redis
// hash, one field per "from|to" node pair. Keys are expected to be
// consistent (node ids from the same scenario mapping) across runs.
type RedisDistanceCache struct {
	Client *redis.Client
}

func NewRedisDistanceCache(client *redis.Client) *RedisDistanceCache {
	return &RedisDistanceCache{Client: client}
}

// GetMany fetches every cached distance entry for a scenario.
func (c *RedisDistanceCache) GetMany(ctx context.Context, scenario string) (map[string]int, error) {
	if c.Client == nil {
		return nil, errors.New("distance cache: redis client is nil")
	}
	if strings.TrimSpace(scenario) == "" {
		return nil, errors.New("get distance cache: scenario must not be empty")
	}

	fields, err := c.Client.HGetAll(ctx, hashKey(scenario)).Result()
	if err != nil {
		return nil, fmt.Errorf("get distance cache: hgetall scenario=%q: %w", scenario, err)
	}

	out := make(map[string]int, len(fields))
	for pair, value := range fields {
		d, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("get distance cache: field %q holds %q: %w", pair, value, err)
		}
		out[pair] = d
	}

	return out, nil
}

// PutMany stores distance entries for a scenario.
func (c *RedisDistanceCache) PutMany(ctx context.Context, scenario string, entries map[string]int) error {
	if c.Client == nil {
		return errors.New("distance cache: redis client is nil")
	}
	if strings.TrimSpace(scenario) == "" {
		return errors.New("insert distance cache: scenario must not be empty")
	}
	if len(entries) == 0 {
		return nil
	}

	args := make([]any, 0, len(entries)*2)
	for pair, d := range entries {
		if strings.TrimSpace(pair) == "" {
			return errors.New("insert distance cache: empty pair key")
		}
		args = append(args, pair, strconv.Itoa(d))
	}

	if err := c.Client.HSet(ctx, hashKey(scenario), args...).Err(); err != nil {
		return fmt.Errorf("insert distance cache: hset scenario=%q: %w", scenario, err)
	}

	return nil
}

func hashKey(scenario string) string { return "wastesim:distances:" + scenario }
