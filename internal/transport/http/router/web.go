package router

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-gin-watchlist/internal/core/flash"
	"go-gin-watchlist/internal/core/server"
	"go-gin-watchlist/internal/domain"
	httpez "go-gin-watchlist/internal/transport/http/ez"
	"go-gin-watchlist/internal/transport/http/handler"
	mdw "go-gin-watchlist/internal/transport/http/middleware"
	"go-gin-watchlist/internal/transport/http/response"
)

type Deps struct {
	Log          *zap.Logger
	Movies       domain.MovieRepository
	Users        domain.UserRepository
	Flash        flash.Store
	MaxBodyBytes int64
	CORSOrigins  []string
}

// NewWebEngine 组装页面站点：中间件、静态路由表、404/405
func NewWebEngine(d Deps) (*gin.Engine, *httpez.Routes) {
	routes := httpez.NewRoutes()
	view := response.NewRenderer(d.Flash, d.Log)

	r := server.NewRouter(d.Log, server.Options{CORSOrigins: d.CORSOrigins})
	r.HandleMethodNotAllowed = true
	r.SetHTMLTemplate(response.Templates(template.FuncMap{"url": routes.Reverse}))

	r.Use(
		mdw.RequestID(),
		mdw.MaxBodyBytes(d.MaxBodyBytes),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		mdw.UserContext(d.Users),
	)

	// 健康检查 / 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	mh := handler.NewMovieHandler(d.Movies, d.Flash, view, routes, d.Log)
	xh := handler.NewMiscHandler(routes, d.Log)

	routes.Add(
		httpez.Route{Name: "movie.index", Method: http.MethodGet, Path: "/", Handler: mh.Index},
		httpez.Route{Name: "movie.index", Method: http.MethodPost, Path: "/", Handler: mh.Create},
		httpez.Route{Name: "movie.edit", Method: http.MethodGet, Path: "/movie/edit/:id", Handler: mh.Edit},
		httpez.Route{Name: "movie.edit", Method: http.MethodPost, Path: "/movie/edit/:id", Handler: mh.Update},
		httpez.Route{Name: "movie.delete", Method: http.MethodPost, Path: "/movie/delete/:id", Handler: mh.Delete},
		httpez.Route{Name: "user.page", Method: http.MethodGet, Path: "/user/:name", Handler: xh.UserPage},
		httpez.Route{Name: "debug.urls", Method: http.MethodGet, Path: "/test", Handler: xh.TestURLs},
	)
	routes.Mount(r, view)

	r.NoRoute(view.NotFound)
	r.NoMethod(view.MethodNotAllowed)
	return r, routes
}
