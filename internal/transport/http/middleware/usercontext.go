package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"

	"go-gin-watchlist/internal/domain"
	"go-gin-watchlist/internal/transport/http/response"
)

// UserContext 为渲染页面准备横幅用户：第一次渲染时查询，同一请求内复用结果
func UserContext(users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		response.SetUserLoader(c, sync.OnceValues(func() (*domain.User, error) {
			return users.First(ctx)
		}))
		c.Next()
	}
}
