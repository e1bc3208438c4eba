package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// ANSI colors for the request log.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

type route struct {
	method   string
	pattern  string
	segments []string
	handler  HandlerFunc
}

// Router is a tiny method+path router with "*" wildcard segments and a
// colored request log. Routes match in registration order, so register the
// more specific patterns first.
type Router struct {
	routes []route
}

func New() *Router {
	return &Router{}
}

func (r *Router) register(method, pattern string, handler HandlerFunc) {
	r.routes = append(r.routes, route{
		method:   method,
		pattern:  pattern,
		segments: splitPath(pattern),
		handler:  handler,
	})
}

func (r *Router) GET(pattern string, handler HandlerFunc)  { r.register(http.MethodGet, pattern, handler) }
func (r *Router) POST(pattern string, handler HandlerFunc) { r.register(http.MethodPost, pattern, handler) }
func (r *Router) PUT(pattern string, handler HandlerFunc)  { r.register(http.MethodPut, pattern, handler) }
func (r *Router) DELETE(pattern string, handler HandlerFunc) {
	r.register(http.MethodDelete, pattern, handler)
}

// Prefix mounts a plain http.Handler under a path prefix (used for the
// swagger UI).
func (r *Router) Prefix(pattern string, handler http.Handler) {
	r.register(http.MethodGet, strings.TrimSuffix(pattern, "/")+"/*", func(w http.ResponseWriter, req *http.Request) {
		handler.ServeHTTP(w, req)
	})
}

// ServeHTTP dispatches the request and logs method, path, status, duration.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	handler, methodMismatch := r.match(req.Method, req.URL.Path)
	switch {
	case handler != nil:
		handler(lrw, req)
	case methodMismatch:
		http.Error(lrw, "Method Not Allowed", http.StatusMethodNotAllowed)
	default:
		http.Error(lrw, "Not Found", http.StatusNotFound)
	}

	log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
		colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
		methodColor(req.Method), req.Method, colorReset,
		req.URL.Path,
		statusColor(lrw.statusCode), lrw.statusCode, colorReset,
		colorBlue, time.Since(start), colorReset,
	)
}

// match finds the first registered route whose pattern fits the path. The
// second return value reports whether the path matched some route with a
// different method.
func (r *Router) match(method, path string) (HandlerFunc, bool) {
	segments := splitPath(path)
	methodMismatch := false
	for _, rt := range r.routes {
		if !matchSegments(rt.segments, segments) {
			continue
		}
		if rt.method == method {
			return rt.handler, false
		}
		methodMismatch = true
	}
	return nil, methodMismatch
}

// matchSegments matches a path against a pattern where "*" matches one
// segment, and a trailing "*" matches any number of remaining segments.
func matchSegments(pattern, path []string) bool {
	for i, p := range pattern {
		trailing := i == len(pattern)-1 && p == "*"
		if trailing {
			return len(path) >= len(pattern)-1
		}
		if i >= len(path) {
			return false
		}
		if p != "*" && p != path[i] {
			return false
		}
	}
	return len(path) == len(pattern)
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

// Start runs the HTTP server.
func (r *Router) Start(addr string) {
	log.Printf("🚀 Server started on %shttp://localhost%s%s", colorGreen, addr, colorReset)
	log.Fatal(http.ListenAndServe(addr, r))
}

// loggingResponseWriter captures the status code for the request log.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodPut:
		return colorYellow
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}
