package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FlashClaims 待显示的提示消息，按加入顺序
type FlashClaims struct {
	Msgs []string `json:"msgs"`
	jwt.RegisteredClaims
}

// JWTer 给 flash cookie 签发 / 校验 HS256 token
type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func NewFlashJWTer(secret []byte, ttl time.Duration) *JWTer {
	return &JWTer{Secret: secret, Issuer: "watchlist-flash", TTL: ttl}
}

func (j *JWTer) Issue(msgs []string) (string, error) {
	now := time.Now()
	claims := FlashClaims{
		Msgs: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*FlashClaims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &FlashClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*FlashClaims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}
