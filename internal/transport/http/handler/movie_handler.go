package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-watchlist/internal/core/flash"
	"go-gin-watchlist/internal/domain"
	"go-gin-watchlist/internal/feature/movie"
	httpez "go-gin-watchlist/internal/transport/http/ez"
	mdw "go-gin-watchlist/internal/transport/http/middleware"
	"go-gin-watchlist/internal/transport/http/response"
)

type MovieHandler struct {
	movies domain.MovieRepository
	flash  flash.Store
	view   *response.Renderer
	routes *httpez.Routes
	log    *zap.Logger
}

func NewMovieHandler(movies domain.MovieRepository, f flash.Store, view *response.Renderer, routes *httpez.Routes, l *zap.Logger) *MovieHandler {
	return &MovieHandler{movies: movies, flash: f, view: view, routes: routes, log: l}
}

type movieForm struct {
	Title string `form:"title"`
	Year  string `form:"year"`
}

type movieURI struct {
	ID uint `uri:"id" binding:"required"`
}

// bindForm 只有请求体超限才算错误；缺字段交给 movie.Validate 处理
func bindForm(c *gin.Context) (movieForm, error) {
	var f movieForm
	if err := c.ShouldBind(&f); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return f, httpez.TooLarge("request body too large")
		}
	}
	return f, nil
}

// lookup 解析 :id 并加载电影；非数字或不存在都是 404
func (h *MovieHandler) lookup(c *gin.Context) (*domain.Movie, error) {
	var uri movieURI
	if err := c.ShouldBindUri(&uri); err != nil {
		return nil, httpez.NotFound("movie not found")
	}
	m, err := h.movies.FindByID(c.Request.Context(), uri.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httpez.NotFound("movie not found")
	}
	if err != nil {
		return nil, httpez.Internal("load movie failed", err)
	}
	return m, nil
}

func (h *MovieHandler) redirectIndex(c *gin.Context, notice string) error {
	if err := h.flash.Add(c, notice); err != nil {
		return httpez.Internal("flash failed", err)
	}
	c.Redirect(http.StatusFound, h.routes.MustReverse("movie.index"))
	return nil
}

// GET /
func (h *MovieHandler) Index(c *gin.Context) error {
	movies, err := h.movies.List(c.Request.Context())
	if err != nil {
		return httpez.Internal("list movies failed", err)
	}
	return h.view.HTML(c, http.StatusOK, "index.html", gin.H{"Movies": movies})
}

// POST /
func (h *MovieHandler) Create(c *gin.Context) error {
	f, err := bindForm(c)
	if err != nil {
		return err
	}
	in, err := movie.Validate(f.Title, f.Year)
	if err != nil {
		return h.redirectIndex(c, movie.MsgInvalidInput)
	}
	m := &domain.Movie{Title: in.Title, Year: in.Year}
	if err := h.movies.Create(c.Request.Context(), m); err != nil {
		return httpez.Internal("create movie failed", err)
	}
	mdw.ObserveMutation("create")
	h.log.Info("movie created", zap.Uint("id", m.ID), zap.String("title", m.Title))
	return h.redirectIndex(c, movie.MsgCreated)
}

// GET /movie/edit/:id
func (h *MovieHandler) Edit(c *gin.Context) error {
	m, err := h.lookup(c)
	if err != nil {
		return err
	}
	return h.view.HTML(c, http.StatusOK, "edit.html", gin.H{"Movie": m})
}

// POST /movie/edit/:id
func (h *MovieHandler) Update(c *gin.Context) error {
	m, err := h.lookup(c)
	if err != nil {
		return err
	}
	f, err := bindForm(c)
	if err != nil {
		return err
	}
	in, err := movie.Validate(f.Title, f.Year)
	if err != nil {
		return h.redirectIndex(c, movie.MsgInvalidInput)
	}
	m.Title, m.Year = in.Title, in.Year
	if err := h.movies.Update(c.Request.Context(), m); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httpez.NotFound("movie not found")
		}
		return httpez.Internal("update movie failed", err)
	}
	mdw.ObserveMutation("update")
	h.log.Info("movie updated", zap.Uint("id", m.ID))
	return h.redirectIndex(c, movie.MsgUpdated)
}

// POST /movie/delete/:id
func (h *MovieHandler) Delete(c *gin.Context) error {
	m, err := h.lookup(c)
	if err != nil {
		return err
	}
	if err := h.movies.Delete(c.Request.Context(), m.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httpez.NotFound("movie not found")
		}
		return httpez.Internal("delete movie failed", err)
	}
	mdw.ObserveMutation("delete")
	h.log.Info("movie deleted", zap.Uint("id", m.ID))
	return h.redirectIndex(c, movie.MsgDeleted)
}
