// Package httpx carries the thin HTTP surface around the chat core: the
// websocket endpoint, image uploads, static serving of uploaded files, and
// health/metrics.
package httpx

import (
	"log/slog"
	"net/http"

	"github.com/Ionution132/chat-backend/internal/app"
	"github.com/Ionution132/chat-backend/internal/ws"
	"github.com/Ionution132/chat-backend/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers
func NewRouter(cfg app.Config, logger *slog.Logger, gw *ws.Gateway) http.Handler {
	mw := NewMiddleware(cfg)
	uploads := &UploadAPI{Dir: cfg.UploadDir, Log: logger}

	mux := http.NewServeMux()

	// Health / metrics
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("chat server running"))
	}))
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket endpoint
	mux.Handle("/ws", http.HandlerFunc(gw.ServeWS))

	// Image upload + static serving of uploaded files
	mux.Handle("/upload", http.HandlerFunc(uploads.Upload))
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// CORS + rate limit applied globally
	return mw.Wrap(mux)
}
