package session

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const redisSessionKeyPrefix = "nutrition:session:"

// RedisStore 基于 redis 的会话存储，多实例部署时使用
// 锁仍然是进程内的：同一用户的更新应被路由到同一实例
type RedisStore struct {
	client *goredis.Client
	ttl    time.Duration
	keyed  *keyedMutex
}

func NewRedisStore(client *goredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		keyed:  newKeyedMutex(),
	}
}

func sessionKey(userID string) string {
	return redisSessionKeyPrefix + userID
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(userID)).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sess := &Session{}
	if err := json.Unmarshal([]byte(raw), sess); err != nil {
		return nil, errors.WithStack(err)
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.UserID), raw, s.ttl).Err(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (s *RedisStore) Lock(userID string) func() {
	return s.keyed.Lock(userID)
}
