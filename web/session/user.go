package session

import (
	"context"
	"strconv"
)

// User is the logged-in user as the session stores it: identity for the
// pages, plus the backend access token every fetch needs. Replaces keeping
// the user on the client side.
type User struct {
	IDUsuario   int
	Username    string
	Rol         string
	AccessToken string
}

func (u *User) toFields() map[string]any {
	return map[string]any{
		"id_usuario":   u.IDUsuario,
		"username":     u.Username,
		"rol":          u.Rol,
		"access_token": u.AccessToken,
	}
}

func userFromFields(fields map[string]string) *User {
	id, _ := strconv.Atoi(fields["id_usuario"])
	return &User{
		IDUsuario:   id,
		Username:    fields["username"],
		Rol:         fields["rol"],
		AccessToken: fields["access_token"],
	}
}

type idCtxKey struct{}
type userCtxKey struct{}

func WithWebSessionId(ctx context.Context, webSessionID string) context.Context {
	return context.WithValue(ctx, idCtxKey{}, webSessionID)
}

func WebSessionIdFromContext(ctx context.Context) (string, bool) {
	ctxVal := ctx.Value(idCtxKey{})
	val, ok := ctxVal.(string)
	return val, ok
}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	ctxVal := ctx.Value(userCtxKey{})
	val, ok := ctxVal.(*User)
	return val, ok
}
