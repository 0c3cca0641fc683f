package routing

import (
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/miralago/reportes-gw/requests"
	"github.com/miralago/reportes-gw/responses"
)

func RecoverWrapper(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[PANIC] recovered: %v\n%s", rec, debug.Stack())
				responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		inner.ServeHTTP(w, r)
	})
}

func AccessLogWrapper(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		inner.ServeHTTP(w, r)
		log.Printf("[INFO][ACCESS] %s %s %s (%v)", requests.GetClientIP(r), r.Method, requests.FullURL(r), time.Since(start))
	})
}
