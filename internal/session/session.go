// Package session stores per-visitor state (flash messages) in SQLite through scs.
package session

import (
	"context"
	"database/sql"
	"encoding/gob"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/bookshelf/internal/config"
)

const sessionKeyFlash = "flash"

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

func init() {
	gob.Register(Flash{})
}

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Sessions) (*Manager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.Lifetime
	sm.IdleTimeout = cfg.Lifetime / 2

	sm.Cookie.Name = "bookshelf_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	// Lax so the flash survives the redirect after a form post
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// PutFlash queues a message for the next page.
func (m *Manager) PutFlash(ctx context.Context, kind, message string) {
	m.Put(ctx, sessionKeyFlash, Flash{Kind: kind, Message: message})
}

// PopFlash returns and clears the pending message, if any.
func (m *Manager) PopFlash(ctx context.Context) *Flash {
	flash, ok := m.Pop(ctx, sessionKeyFlash).(Flash)
	if !ok {
		return nil
	}
	return &flash
}

// HasFlash reports whether a message is pending without consuming it.
func (m *Manager) HasFlash(ctx context.Context) bool {
	return m.Exists(ctx, sessionKeyFlash)
}
