package routing

import (
	"log"
	"net/http"
	"strings"
)

type RouteGroup struct {
	Router          // [Embedded Interface]
	Prefix          string
	HandlerWrappers []HandlerWrapper // Group Handler Wrappers
}

// Ensure RouteGroup implements Router
var _ Router = (*RouteGroup)(nil)

// Handle registers a route pattern.
// subpattern "<method> <subpath>" becomes "<method> <groupPrefix><subpath>".
//
// Wrapping order: group wrappers run outermost, individual wrappers innermost.
// 1. Pre-action order:
//    grpWrapr1 -> ... -> grpWraprN -> wrapr1 -> ... -> waprN
// 2. handler.ServeHTTP(w,r)
// 3. Post-action order: the reverse
func (g *RouteGroup) Handle(subpattern string, handler http.Handler, handlerWrappers ...HandlerWrapper) {
	var fullPattern string

	subPatternParts := strings.SplitN(subpattern, " ", 2)
	if len(subPatternParts) == 2 {
		// method: e.g. GET, POST
		fullPattern = subPatternParts[0] + " " + g.Prefix + subPatternParts[1]
	} else {
		fullPattern = g.Prefix + subpattern
	}

	if strings.Contains(fullPattern, "//") {
		log.Fatalf("[ERROR] Can't Register Router Pattern %s", fullPattern)
	}

	wrappedHandler := handler
	for i := len(handlerWrappers) - 1; i >= 0; i-- {
		wrappedHandler = handlerWrappers[i].Wrap(wrappedHandler)
	}
	for i := len(g.HandlerWrappers) - 1; i >= 0; i-- {
		wrappedHandler = g.HandlerWrappers[i].Wrap(wrappedHandler)
	}
	g.Router.Handle(fullPattern, wrappedHandler)
}

func (g *RouteGroup) HandleFunc(subpattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper) {
	g.Handle(subpattern, http.HandlerFunc(handleFunc), handlerWrappers...)
}

// Group on *RouteGroup makes a Subgroup
//
//	router.Group("/reportes/", func(rep *RouteGroup) {      // RouteGroup for "/reportes/..."
//	  rep.Handle("GET clientes", clientesGetHandler)        // "GET /reportes/clientes"
//
//	  rep.Group("ventas/", func(ven *RouteGroup) {          // Subgroup for "/reportes/ventas/..."
//	    ven.Handle("GET mesa", ventasMesaGetHandler)        // "GET /reportes/ventas/mesa"
//	    ven.Handle("GET platillo", ventasPlatGetHandler)    // "GET /reportes/ventas/platillo"
//	  }
//	}
func (g *RouteGroup) Group(subPrefix string, batch func(*RouteGroup), handlerWrappers ...HandlerWrapper) *RouteGroup {
	subg := &RouteGroup{
		Router:          g.Router,                                      // same router
		Prefix:          g.Prefix + subPrefix,                          // extended prefix
		HandlerWrappers: append(g.HandlerWrappers, handlerWrappers...), // handlerwrappers appended
	}

	batch(subg)

	return subg
}
