package handler

import (
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpez "go-gin-watchlist/internal/transport/http/ez"
)

type MiscHandler struct {
	routes *httpez.Routes
	log    *zap.Logger
}

func NewMiscHandler(routes *httpez.Routes, l *zap.Logger) *MiscHandler {
	return &MiscHandler{routes: routes, log: l}
}

// GET /user/:name
func (h *MiscHandler) UserPage(c *gin.Context) error {
	c.String(http.StatusOK, "User: %s", html.EscapeString(c.Param("name")))
	return nil
}

// GET /test 只用来验证反向路由
func (h *MiscHandler) TestURLs(c *gin.Context) error {
	for _, args := range [][]any{
		{"movie.index"},
		{"user.page", "name", "greyli"},
		{"debug.urls"},
		{"debug.urls", "num", 2},
	} {
		u, err := h.routes.Reverse(args[0].(string), args[1:]...)
		if err != nil {
			return httpez.Internal("reverse route failed", err)
		}
		h.log.Debug("url_for", zap.Any("route", args[0]), zap.String("url", u))
	}
	c.String(http.StatusOK, "Test page")
	return nil
}
