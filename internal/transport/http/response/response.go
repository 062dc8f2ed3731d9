package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-watchlist/internal/core/flash"
	"go-gin-watchlist/internal/domain"
)

// Page 是所有模板的根数据
type Page struct {
	User    *domain.User
	Flashes []string
	Data    any
}

type Renderer struct {
	Flash flash.Store
	Log   *zap.Logger
}

func NewRenderer(f flash.Store, l *zap.Logger) *Renderer { return &Renderer{Flash: f, Log: l} }

// HTML 渲染页面：带上横幅用户和待显示的提示
func (r *Renderer) HTML(c *gin.Context, code int, name string, data any) error {
	u, err := CurrentUser(c)
	if err != nil {
		return err
	}
	msgs, err := r.Flash.Pop(c)
	if err != nil {
		r.Log.Warn("flash pop failed", zap.Error(err))
	}
	c.HTML(code, name, Page{User: u, Flashes: msgs, Data: data})
	return nil
}

func (r *Renderer) NotFound(c *gin.Context) {
	if err := r.HTML(c, http.StatusNotFound, "404.html", nil); err != nil {
		r.ServerError(c, err)
	}
}

// ServerError 不走模板，避免存储故障时再次出错
func (r *Renderer) ServerError(c *gin.Context, err error) {
	r.Log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func (r *Renderer) MethodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}
