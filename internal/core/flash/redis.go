package flash

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore 用会话 cookie 里的 id 作为 key，消息存在 redis list 里；
// 适合多实例部署共享提示
type RedisStore struct {
	RDB        *redis.Client
	CookieName string
	Prefix     string
	TTL        time.Duration
	Secure     bool
}

func NewRedisStore(rdb *redis.Client, cookieName string, ttl time.Duration) *RedisStore {
	return &RedisStore{RDB: rdb, CookieName: cookieName, Prefix: "flash:", TTL: ttl}
}

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

const sidKey = "flash.sid"

// sid 取已有会话 id，没有就新建并下发 cookie
func (s *RedisStore) sid(c *gin.Context, create bool) string {
	if v := c.GetString(sidKey); v != "" {
		return v
	}
	if v, err := c.Cookie(s.CookieName); err == nil {
		if _, perr := uuid.Parse(v); perr == nil {
			c.Set(sidKey, v)
			return v
		}
	}
	if !create {
		return ""
	}
	v := uuid.NewString()
	c.Set(sidKey, v)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.CookieName, v, int(s.TTL/time.Second), "/", "", s.Secure, true)
	return v
}

func (s *RedisStore) Add(c *gin.Context, msg string) error {
	ctx := c.Request.Context()
	key := s.Prefix + s.sid(c, true)
	_, err := s.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, msg)
		p.Expire(ctx, key, s.TTL)
		return nil
	})
	return err
}

func (s *RedisStore) Pop(c *gin.Context) ([]string, error) {
	id := s.sid(c, false)
	if id == "" {
		return nil, nil
	}
	ctx := c.Request.Context()
	key := s.Prefix + id
	var lr *redis.StringSliceCmd
	_, err := s.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		lr = p.LRange(ctx, key, 0, -1)
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	msgs := lr.Val()
	if len(msgs) == 0 {
		return nil, nil
	}
	return msgs, nil
}
