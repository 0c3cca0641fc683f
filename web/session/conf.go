package session

import "github.com/miralago/reportes-gw/security"

const CookieName = "__Host-wsession"

type Conf struct {
	EncryptionKey string                            `json:"enckey"`
	Cipher        *security.XChaCha20Poly1305Cipher `json:"-"`

	ExpireSliding int `json:"expire_sliding"` // seconds, refreshed on each authenticated request
	ExpireHardcap int `json:"expire_hardcap"` // seconds, cookie lifetime

	// For Web Login Sessions
	LoginPath string `json:"login_path"`
}
