package router_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-gin-watchlist/internal/bootstrap"
	"go-gin-watchlist/internal/core/database/dbtest"
	"go-gin-watchlist/internal/core/flash"
	"go-gin-watchlist/internal/domain"
	"go-gin-watchlist/internal/repo"
	"go-gin-watchlist/internal/transport/http/router"
)

type app struct {
	t      *testing.T
	engine *gin.Engine
	movies *repo.MovieRepo
	jar    map[string]*http.Cookie
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	require.NoError(t, bootstrap.Forge(context.Background(), db))

	movies := repo.NewMovieRepo(db)
	engine, _ := router.NewWebEngine(router.Deps{
		Log:          zap.NewNop(),
		Movies:       movies,
		Users:        repo.NewUserRepo(db),
		Flash:        flash.NewCookieStore("flash", []byte("test-secret"), 10*time.Minute, false),
		MaxBodyBytes: 1 << 16,
	})
	return &app{t: t, engine: engine, movies: movies, jar: map[string]*http.Cookie{}}
}

// do 发请求并像浏览器一样维护 cookie
func (a *app) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range a.jar {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(a.jar, ck.Name)
			continue
		}
		a.jar[ck.Name] = ck
	}
	return w
}

func (a *app) count() int64 {
	n, err := a.movies.Count(context.Background())
	require.NoError(a.t, err)
	return n
}

func (a *app) movie(id uint) *domain.Movie {
	m, err := a.movies.FindByID(context.Background(), id)
	require.NoError(a.t, err)
	return m
}

func movieForm(title, year string) url.Values {
	return url.Values{"title": {title}, "year": {year}}
}

func assertRedirectHome(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestIndex_ListsForgedMovies(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "10 Titles")
	assert.Contains(t, body, "imtinge's Watchlist")
	assert.Contains(t, body, "WALL-E - 2008")
	assert.Contains(t, body, `href="/movie/edit/1"`)
	assert.Contains(t, body, `action="/movie/delete/10"`)
	assert.Less(t, strings.Index(body, "My Neighbor Totoro"), strings.Index(body, "The Pork of Music"))
}

func TestCreate_Valid(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/", movieForm("  Spirited Away ", " 2001 "))
	assertRedirectHome(t, w)
	assert.EqualValues(t, 11, a.count())

	all, err := a.movies.List(context.Background())
	require.NoError(t, err)
	last := all[len(all)-1]
	assert.Equal(t, "Spirited Away", last.Title)
	assert.Equal(t, "2001", last.Year)

	page := a.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Item created.")
	assert.Contains(t, page, "11 Titles")

	// 提示只出现一次
	assert.NotContains(t, a.do(http.MethodGet, "/", nil).Body.String(), "Item created.")
}

func TestCreate_InvalidLeavesStorageUnchanged(t *testing.T) {
	cases := map[string]url.Values{
		"empty title":    movieForm("", "2001"),
		"blank title":    movieForm("   ", "2001"),
		"empty year":     movieForm("Spirited Away", ""),
		"long title":     movieForm(strings.Repeat("t", 61), "2001"),
		"long year":      movieForm("Spirited Away", "20011"),
		"missing fields": {},
	}
	for name, form := range cases {
		t.Run(name, func(t *testing.T) {
			a := newApp(t)

			w := a.do(http.MethodPost, "/", form)
			assertRedirectHome(t, w)
			assert.EqualValues(t, 10, a.count())
			assert.Contains(t, a.do(http.MethodGet, "/", nil).Body.String(), "Invalid input.")
		})
	}
}

func TestEdit_Form(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/movie/edit/9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="WALL-E"`)
	assert.Contains(t, w.Body.String(), `value="2008"`)
	assert.Contains(t, w.Body.String(), `action="/movie/edit/9"`)
}

func TestEdit_UpdatesOnlyTargetRow(t *testing.T) {
	a := newApp(t)
	before := a.movie(2)

	w := a.do(http.MethodPost, "/movie/edit/1", movieForm(" Totoro ", "1989"))
	assertRedirectHome(t, w)

	got := a.movie(1)
	assert.Equal(t, "Totoro", got.Title)
	assert.Equal(t, "1989", got.Year)
	assert.Equal(t, before, a.movie(2))
	assert.EqualValues(t, 10, a.count())
	assert.Contains(t, a.do(http.MethodGet, "/", nil).Body.String(), "Item updated.")
}

func TestEdit_InvalidInput(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/movie/edit/1", movieForm("", "1989"))
	assertRedirectHome(t, w)
	assert.Equal(t, "My Neighbor Totoro", a.movie(1).Title)
	assert.Contains(t, a.do(http.MethodGet, "/", nil).Body.String(), "Invalid input.")
}

func TestEdit_NotFound(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/movie/edit/999", "/movie/edit/abc", "/movie/edit/0"} {
		w := a.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "Page Not Found")
	}

	// 404 先于校验：非法输入也不会产生提示
	w := a.do(http.MethodPost, "/movie/edit/999", movieForm("", ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.EqualValues(t, 10, a.count())
	assert.NotContains(t, a.do(http.MethodGet, "/", nil).Body.String(), "Invalid input.")
}

func TestDelete(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/movie/delete/9", nil)
	assertRedirectHome(t, w)
	assert.EqualValues(t, 9, a.count())
	_, err := a.movies.FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Leon", a.movie(4).Title)

	page := a.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, `<div class="alert">Item deleted</div>`)
	assert.NotContains(t, page, "WALL-E")
}

func TestDelete_NotFoundAndWrongMethod(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/movie/delete/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.EqualValues(t, 10, a.count())

	w = a.do(http.MethodGet, "/movie/delete/1", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.EqualValues(t, 10, a.count())
}

func TestUserPage_Escapes(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/user/greyli", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User: greyli", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = a.do(http.MethodGet, "/user/%3Cscript%3E", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User: &lt;script&gt;", w.Body.String())
	assert.NotContains(t, w.Body.String(), "<script>")
}

func TestTestPage(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Test page", w.Body.String())
}

func TestUnmatched_Custom404(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/no/such/page", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page Not Found - 404")
	assert.Contains(t, w.Body.String(), "imtinge")
}

func TestOversizedBody(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/", movieForm(strings.Repeat("x", 1<<17), "2001"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.EqualValues(t, 10, a.count())
}

func TestHealth(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":1}`, w.Body.String())
}

type brokenMovies struct{ domain.MovieRepository }

func (brokenMovies) List(context.Context) ([]domain.Movie, error) {
	return nil, errors.New("storage unavailable")
}

type noUsers struct{}

func (noUsers) Create(context.Context, *domain.User) error  { return nil }
func (noUsers) First(context.Context) (*domain.User, error) { return nil, nil }

func TestStorageFailure_Is500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine, _ := router.NewWebEngine(router.Deps{
		Log:    zap.NewNop(),
		Movies: brokenMovies{},
		Users:  noUsers{},
		Flash:  flash.NewCookieStore("flash", []byte("k"), 10*time.Minute, false),
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// 没有用户时横幅退回默认标题
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "<h2>Watchlist</h2>")
}
