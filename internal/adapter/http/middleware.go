package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	maxRequestBodySize = 1 << 20 // 1MB
	apiKeyHeader       = "X-API-Key"
)

// deployCORS 放开所有来源；部署接口只接受 GET/POST。
func deployCORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", apiKeyHeader, middleware.RequestIDHeader},
	})
}

// requireAPIKey 在配置了 token 时校验 X-API-Key，未配置则放行。
func requireAPIKey(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		want := []byte(token)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if subtle.ConstantTimeCompare([]byte(r.Header.Get(apiKeyHeader)), want) != 1 {
				slog.Warn("rejected deploy api call",
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
				)
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing or invalid " + apiKeyHeader})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger 按响应状态选择日志级别。
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		slog.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
