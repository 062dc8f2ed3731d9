package response

import (
	"github.com/gin-gonic/gin"

	"go-gin-watchlist/internal/domain"
)

const keyUserLoader = "page.user"

// UserLoader 每个请求最多查询一次
type UserLoader func() (*domain.User, error)

func SetUserLoader(c *gin.Context, load UserLoader) { c.Set(keyUserLoader, load) }

// CurrentUser 没有挂载 loader 或库里没有用户时返回 nil
func CurrentUser(c *gin.Context) (*domain.User, error) {
	v, ok := c.Get(keyUserLoader)
	if !ok {
		return nil, nil
	}
	load, ok := v.(UserLoader)
	if !ok {
		return nil, nil
	}
	return load()
}
