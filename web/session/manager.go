package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/miralago/reportes-gw/db/kvdb"
	"github.com/miralago/reportes-gw/security"
)

type Manager struct {
	Conf              Conf
	Cipher            *security.XChaCha20Poly1305Cipher
	AppName           string // for session key, etc.
	BackendKVDBClient kvdb.Client
}

func (m *Manager) WebSessionIDToKVDBKey(sessionID string) string {
	return m.AppName + "_wsession:" + sessionID
}

// StartWebSession creates the session hash in the KVDB and sets the
// encrypted session cookie. Called once at login.
func (m *Manager) StartWebSession(ctx context.Context, w http.ResponseWriter, user *User) (string, error) {
	webSessionId, err := security.GenerateSessionID()
	if err != nil {
		return "", err
	}
	key := m.WebSessionIDToKVDBKey(webSessionId)
	if err = m.BackendKVDBClient.SetFields(ctx, key, user.toFields()); err != nil {
		return "", err
	}
	if _, err = m.BackendKVDBClient.Expire(ctx, key, time.Duration(m.Conf.ExpireSliding)*time.Second); err != nil {
		return "", err
	}
	if err = m.SetWebSessionCookie(w, webSessionId); err != nil {
		return "", err
	}
	return webSessionId, nil
}

// UserFromRequest resolves the request's session cookie to the stored user
// and refreshes the sliding expiry. Second return is false when there is no
// valid session.
func (m *Manager) UserFromRequest(ctx context.Context, r *http.Request) (*User, string, bool) {
	webSessionCookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, "", false
	}
	webSessionId, err := m.Cipher.DecodeDecrypt(webSessionCookie.Value) // []byte
	if err != nil {
		return nil, "", false
	}
	key := m.WebSessionIDToKVDBKey(string(webSessionId))
	fields, err := m.BackendKVDBClient.GetAllFields(ctx, key)
	if err != nil || len(fields) == 0 {
		return nil, "", false
	}
	_, _ = m.BackendKVDBClient.Expire(ctx, key, time.Duration(m.Conf.ExpireSliding)*time.Second)
	return userFromFields(fields), string(webSessionId), true
}

// EndWebSession removes the session hash and expires the cookie. Explicit
// teardown on logout; nothing user-related outlives the session.
func (m *Manager) EndWebSession(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if _, webSessionId, ok := m.resolveSessionID(r); ok {
		_, _ = m.BackendKVDBClient.Delete(ctx, m.WebSessionIDToKVDBKey(webSessionId))
	}
	m.RemoveWebSessionCookie(w)
}

func (m *Manager) resolveSessionID(r *http.Request) (*http.Cookie, string, bool) {
	webSessionCookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, "", false
	}
	webSessionId, err := m.Cipher.DecodeDecrypt(webSessionCookie.Value)
	if err != nil {
		return nil, "", false
	}
	return webSessionCookie, string(webSessionId), true
}

func (m *Manager) FindWebSessionInKVDB(ctx context.Context, sessionID string) (bool, error) {
	return m.BackendKVDBClient.Exists(ctx, m.WebSessionIDToKVDBKey(sessionID))
}

func (m *Manager) SetWebSessionCookie(w http.ResponseWriter, webSessionId string) error {
	encWebSessionId, err := m.Cipher.EncryptEncode([]byte(webSessionId))
	if err != nil {
		return fmt.Errorf("failed to encrypt web login session id. %v", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:  CookieName,
		Value: encWebSessionId,
		Path:  "/", // Subpaths will get this cookie.
		// Domain: // Cannot be set with `__Host-`
		HttpOnly: true, // JS cannot read it
		Secure:   true, // only sent over HTTPS
		MaxAge:   m.Conf.ExpireHardcap,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) RemoveWebSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		MaxAge:   -1, // Delete
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
