package ez

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AErr 统一错误对象，Code 用 HTTP 语义
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func NotFound(msg string) error   { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func TooLarge(msg string) error   { return &AErr{Code: http.StatusRequestEntityTooLarge, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// HandlerFunc 返回 error 的 handler，由 Wrap 统一映射响应
type HandlerFunc func(c *gin.Context) error

// ErrorPages 负责 404 / 500 页面
type ErrorPages interface {
	NotFound(c *gin.Context)
	ServerError(c *gin.Context, err error)
}

// StatusOf 非 AErr 一律按 500
func StatusOf(err error) int {
	var ae *AErr
	if errors.As(err, &ae) && ae.Code != 0 {
		return ae.Code
	}
	return http.StatusInternalServerError
}

func Wrap(h HandlerFunc, pages ErrorPages) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h(c)
		if err == nil {
			return
		}
		_ = c.Error(err)
		switch code := StatusOf(err); {
		case code == http.StatusNotFound:
			pages.NotFound(c)
		case code >= 400 && code < 500:
			c.String(code, http.StatusText(code))
		default:
			pages.ServerError(c, err)
		}
	}
}
