package ez

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Route 静态路由表的一项；Name 用于反向生成 URL
type Route struct {
	Name    string
	Method  string
	Path    string // gin 语法，如 /movie/edit/:id
	Handler HandlerFunc
}

type Routes struct {
	mu     sync.RWMutex
	list   []Route
	byName map[string]string
}

func NewRoutes() *Routes { return &Routes{byName: map[string]string{}} }

// Add 同名多方法（GET/POST 同一路径）时以第一次出现的路径为准
func (r *Routes) Add(routes ...Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range routes {
		r.list = append(r.list, rt)
		if _, ok := r.byName[rt.Name]; !ok && rt.Name != "" {
			r.byName[rt.Name] = rt.Path
		}
	}
}

func (r *Routes) All() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Route(nil), r.list...)
}

// Mount 启动时一次性把路由表挂到 gin 上
func (r *Routes) Mount(g gin.IRoutes, pages ErrorPages) {
	for _, rt := range r.All() {
		g.Handle(rt.Method, rt.Path, Wrap(rt.Handler, pages))
	}
}

// Reverse 按路由名生成 URL；kv 为 key/value 交替，路径用不到的参数拼到 query
func (r *Routes) Reverse(name string, kv ...any) (string, error) {
	r.mu.RLock()
	path, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("ez: unknown route %q", name)
	}
	if len(kv)%2 != 0 {
		return "", fmt.Errorf("ez: route %q: odd number of params", name)
	}
	params := make(map[string]string, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return "", fmt.Errorf("ez: route %q: param name %v is not a string", name, kv[i])
		}
		params[k] = fmt.Sprint(kv[i+1])
	}

	segs := strings.Split(path, "/")
	for i, seg := range segs {
		if seg == "" || (seg[0] != ':' && seg[0] != '*') {
			continue
		}
		key := seg[1:]
		v, ok := params[key]
		if !ok {
			return "", fmt.Errorf("ez: route %q: missing param %q", name, key)
		}
		delete(params, key)
		segs[i] = url.PathEscape(v)
	}
	out := strings.Join(segs, "/")

	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		out += "?" + q.Encode()
	}
	return out, nil
}

// MustReverse 只用于写死的路由名，找不到直接 panic
func (r *Routes) MustReverse(name string, kv ...any) string {
	u, err := r.Reverse(name, kv...)
	if err != nil {
		panic(err)
	}
	return u
}
