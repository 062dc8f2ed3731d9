// Package flash 跨重定向的一次性提示消息
package flash

import "github.com/gin-gonic/gin"

type Store interface {
	// Add 追加一条，下次渲染页面时显示
	Add(c *gin.Context, msg string) error
	// Pop 按顺序取出并清空
	Pop(c *gin.Context) ([]string, error)
}

// 同一请求内 Add 多次时先累积在 gin.Context 上
const pendingKey = "flash.pending"

func pending(c *gin.Context) ([]string, bool) {
	v, ok := c.Get(pendingKey)
	if !ok {
		return nil, false
	}
	msgs, _ := v.([]string)
	return msgs, true
}
