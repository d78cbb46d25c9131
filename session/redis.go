package session

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis"
)

const keyPrefix = "session:"

// RedisProvider keeps session tokens in redis so sessions survive process
// restarts. Tokens expire after TTL; zero means no expiry.
type RedisProvider struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the redis instance described by a redis:// URL.
func NewRedis(url string, ttl time.Duration) (*RedisProvider, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping().Err(); err != nil {
		return nil, err
	}
	return &RedisProvider{client: client, ttl: ttl}, nil
}

func (p *RedisProvider) Create(ctx context.Context, userID int64) (string, error) {
	token := newToken(32)
	err := p.client.Set(keyPrefix+token, strconv.FormatInt(userID, 10), p.ttl).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

func (p *RedisProvider) Resolve(ctx context.Context, token string) (int64, error) {
	res, err := p.client.Get(keyPrefix + token).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, ErrNoSession
		}
		return 0, err
	}
	return strconv.ParseInt(res, 10, 64)
}

func (p *RedisProvider) Destroy(ctx context.Context, token string) error {
	return p.client.Del(keyPrefix + token).Err()
}

var _ Provider = (*RedisProvider)(nil)
