package session

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisOpTimeout = 3 * time.Second

// RedisStore keeps the session record in a redis hash, one per
// terminal id, for deployments where several counter terminals share a
// sign-in. Read failures degrade to the logged-out state with a
// warning; the backend remains the real authority either way.
type RedisStore struct {
	rdb    *redis.Client
	key    string
	logger *zap.Logger

	now func() time.Time
}

func NewRedisStore(rdb *redis.Client, terminalID string, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		key:    "mobilecare:session:" + terminalID,
		logger: logger,
		now:    time.Now,
	}
}

func (s *RedisStore) field(name string) string {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	val, err := s.rdb.HGet(ctx, s.key, name).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Failed to read session field from redis",
				zap.String("field", name), zap.Error(err))
		}
		return ""
	}
	return val
}

func (s *RedisStore) Token() string {
	return s.field("token")
}

func (s *RedisStore) UserID() string {
	return s.field("userId")
}

func (s *RedisStore) LoginTime() time.Time {
	raw := s.field("loginTime")
	if raw == "" {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn("Corrupt loginTime in redis session", zap.String("value", raw))
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func (s *RedisStore) Organization() string {
	return s.field("organization")
}

func (s *RedisStore) SetSession(token, userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	return s.rdb.HSet(ctx, s.key,
		"token", token,
		"userId", userID,
		"loginTime", strconv.FormatInt(s.now().UnixMilli(), 10),
	).Err()
}

func (s *RedisStore) SetOrganization(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	return s.rdb.HSet(ctx, s.key, "organization", name).Err()
}

func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	return s.rdb.Del(ctx, s.key).Err()
}
