package conf

import "context"

// FindWebSessionInKVDB reports whether a web session id is live. Key
// derivation stays with the session manager; the admin socket goes through
// here to inspect sessions without touching the cookie path.
func (c *Core[B]) FindWebSessionInKVDB(ctx context.Context, sessionID string) (bool, error) {
	return c.WebSessionManager.FindWebSessionInKVDB(ctx, sessionID)
}
