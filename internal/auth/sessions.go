package auth

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/houseofplants/houseofplants/internal/config"
	"github.com/houseofplants/houseofplants/internal/entities"
)

// Session data keys. The session holds a snapshot of the user's public
// fields, never the password hash.
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"
	SessionKeyName     = "name"
	SessionKeyPicture  = "picture_url"
)

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by SQLite.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
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

	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession binds a user onto the request's session after successful
// signup or login.
func (sm *SessionManager) CreateSession(r *http.Request, user *entities.User) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	sm.Put(r.Context(), SessionKeyUserID, int(user.ID))
	sm.Put(r.Context(), SessionKeyUsername, user.Username)
	sm.Put(r.Context(), SessionKeyName, user.Name)
	sm.Put(r.Context(), SessionKeyPicture, user.PictureURL)

	return nil
}

// DestroySession removes all session data and invalidates the session
// token itself, not just the user fields.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// GetUserID retrieves the user ID from the session. Returns 0 for an
// anonymous request.
func (sm *SessionManager) GetUserID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), SessionKeyUserID))
}

// IsAuthenticated returns true if the request's session carries a user.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.GetUserID(r) != 0
}

// SessionUser is the session's snapshot of the authenticated user.
type SessionUser struct {
	ID         uint
	Username   string
	Name       string
	PictureURL string
}

// CurrentUser returns the session's user snapshot, or nil when anonymous.
func (sm *SessionManager) CurrentUser(r *http.Request) *SessionUser {
	userID := sm.GetUserID(r)
	if userID == 0 {
		return nil
	}

	return &SessionUser{
		ID:         userID,
		Username:   sm.GetString(r.Context(), SessionKeyUsername),
		Name:       sm.GetString(r.Context(), SessionKeyName),
		PictureURL: sm.GetString(r.Context(), SessionKeyPicture),
	}
}

// RefreshUser updates the session snapshot after a profile edit.
func (sm *SessionManager) RefreshUser(r *http.Request, user *entities.User) {
	sm.Put(r.Context(), SessionKeyUsername, user.Username)
	sm.Put(r.Context(), SessionKeyName, user.Name)
	sm.Put(r.Context(), SessionKeyPicture, user.PictureURL)
}
