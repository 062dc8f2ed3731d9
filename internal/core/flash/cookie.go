package flash

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-gin-watchlist/internal/core/auth"
)

// CookieStore 把消息放进 HS256 token 写进 cookie；token 和 cookie 同时按 TTL 过期
type CookieStore struct {
	Name   string
	Tokens *auth.JWTer
	Secure bool
}

func NewCookieStore(name string, secret []byte, ttl time.Duration, secure bool) *CookieStore {
	return &CookieStore{Name: name, Tokens: auth.NewFlashJWTer(secret, ttl), Secure: secure}
}

func (s *CookieStore) Add(c *gin.Context, msg string) error {
	msgs, ok := pending(c)
	if !ok {
		msgs = s.read(c)
	}
	msgs = append(msgs, msg)
	tok, err := s.Tokens.Issue(msgs)
	if err != nil {
		return err
	}
	c.Set(pendingKey, msgs)
	s.write(c, tok, int(s.Tokens.TTL/time.Second))
	return nil
}

func (s *CookieStore) Pop(c *gin.Context) ([]string, error) {
	if _, err := c.Cookie(s.Name); err != nil {
		return nil, nil
	}
	msgs := s.read(c)
	s.write(c, "", -1)
	return msgs, nil
}

func (s *CookieStore) write(c *gin.Context, val string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, val, maxAge, "/", "", s.Secure, true)
}

// read 签名不对、过期或格式错误都当作没有消息
func (s *CookieStore) read(c *gin.Context) []string {
	raw, err := c.Cookie(s.Name)
	if err != nil || raw == "" {
		return nil
	}
	claims, err := s.Tokens.Parse(raw)
	if err != nil {
		return nil
	}
	return claims.Msgs
}
