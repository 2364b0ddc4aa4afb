package session

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "sessions.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlDB, err := db.SQLDB()
	require.NoError(t, err)

	m, err := NewManager(sqlDB, config.Sessions{Lifetime: time.Hour})
	require.NoError(t, err)
	return m
}

func setupRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.LoadSave())

	r.POST("/save", func(c *gin.Context) {
		m.PutFlash(c.Request.Context(), FlashSuccess, "Author created")
		c.Redirect(http.StatusSeeOther, "/show")
	})
	r.GET("/show", func(c *gin.Context) {
		pending := m.HasFlash(c.Request.Context())
		flash := m.PopFlash(c.Request.Context())
		if flash == nil {
			c.String(http.StatusOK, "pending=%t none", pending)
			return
		}
		c.String(http.StatusOK, "pending=%t %s:%s", pending, flash.Kind, flash.Message)
	})
	return r
}

func TestNewManager_CookieSettings(t *testing.T) {
	m := setupManager(t)

	assert.Equal(t, "bookshelf_session", m.Cookie.Name)
	assert.True(t, m.Cookie.HttpOnly)
	assert.False(t, m.Cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, m.Cookie.SameSite)
	assert.Equal(t, time.Hour, m.Lifetime)
	assert.Equal(t, 30*time.Minute, m.IdleTimeout)
}

func TestFlash_RoundTrip(t *testing.T) {
	m := setupManager(t)
	r := setupRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/save", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "session cookie must be written before the redirect")

	show := func() string {
		req := httptest.NewRequest(http.MethodGet, "/show", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Body.String()
	}

	assert.Equal(t, "pending=true success:Author created", show())
	assert.Equal(t, "pending=false none", show(), "flash is shown once")
}

func TestFlash_NoSession(t *testing.T) {
	m := setupManager(t)
	r := setupRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/show", nil))

	assert.Equal(t, "pending=false none", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}
