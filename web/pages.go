// Package web holds the HTTP service and the page handlers: one handler per
// report page, the billing flow, the cash reconciliation view, and login.
package web

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/miralago/reportes-gw/backend"
	"github.com/miralago/reportes-gw/db/kvdb"
	"github.com/miralago/reportes-gw/exportlog"
	"github.com/miralago/reportes-gw/pdfs"
	"github.com/miralago/reportes-gw/security"
	"github.com/miralago/reportes-gw/throttle"
	"github.com/miralago/reportes-gw/tpl"
	"github.com/miralago/reportes-gw/web/session"
)

// ThrottleGroupPDF is the bucket group id for PDF generation
const ThrottleGroupPDF = "pdf-export"

// Pages bundles what every handler needs
type Pages struct {
	AppName   string
	Backend   *backend.Client
	Sessions  *session.Manager
	Templates *tpl.HTMLTemplateStore
	Throttle  *throttle.BucketStore[string]
	ExportLog *exportlog.Store
	KVDB      kvdb.Client

	// NewPDFWriter builds a fresh document writer per export. Supplied by
	// the embedding application; pdfs only defines the contract.
	NewPDFWriter func() pdfs.Writer

	arqueoSeq backend.Sequencer

	// submitLocks guards against double-submitting the same orden while a
	// factura request for it is still in flight
	submitLocks sync.Map
}

// RequireSession only lets authenticated requests through; everyone else is
// redirected to the login page. The resolved user lands in the request
// context. A session whose stored backend token already expired is torn down
// here instead of failing on every upstream call.
func (p *Pages) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user, webSessionId, ok := p.Sessions.UserFromRequest(ctx, r)
		if !ok {
			http.Redirect(w, r, p.Sessions.Conf.LoginPath, http.StatusSeeOther)
			return
		}
		if exp, err := security.PeekTokenExpiry(user.AccessToken); err == nil && time.Now().After(exp) {
			p.Sessions.EndWebSession(ctx, w, r)
			http.Redirect(w, r, p.Sessions.Conf.LoginPath, http.StatusSeeOther)
			return
		}
		ctx = session.WithUser(ctx, user)
		ctx = session.WithWebSessionId(ctx, webSessionId)
		next(w, r.WithContext(ctx))
	}
}

func (p *Pages) render(w http.ResponseWriter, key string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.Templates.Render(w, key, data); err != nil {
		log.Printf("[ERROR][WEB] render %s: %v", key, err)
		http.Error(w, "error interno", http.StatusInternalServerError)
	}
}

// LoginPage renders the login form
func (p *Pages) LoginPage(w http.ResponseWriter, r *http.Request) {
	p.render(w, "login", map[string]any{"Error": r.URL.Query().Get("error")})
}

// LoginSubmit authenticates against the backend and starts the web session
func (p *Pages) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	result, err := p.Backend.Login(ctx, username, password)
	if err != nil {
		log.Printf("[ERROR][WEB] login: %v", err)
		http.Redirect(w, r, p.Sessions.Conf.LoginPath+"?error=backend", http.StatusSeeOther)
		return
	}
	if result == nil {
		http.Redirect(w, r, p.Sessions.Conf.LoginPath+"?error=credenciales", http.StatusSeeOther)
		return
	}

	user := &session.User{
		IDUsuario:   result.IDUsuario,
		Username:    result.Username,
		Rol:         result.Rol,
		AccessToken: result.AccessToken,
	}
	if _, err = p.Sessions.StartWebSession(ctx, w, user); err != nil {
		log.Printf("[ERROR][WEB] start session: %v", err)
		http.Error(w, "error interno", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/reportes/clientes", http.StatusSeeOther)
}

// Logout tears the session down explicitly: KVDB entry deleted, cookie
// expired
func (p *Pages) Logout(w http.ResponseWriter, r *http.Request) {
	p.Sessions.EndWebSession(r.Context(), w, r)
	http.Redirect(w, r, p.Sessions.Conf.LoginPath, http.StatusSeeOther)
}
