package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"

	"github.com/flowpilot/portal-go/internal/model"
)

// Logger logs one line per request once it has been served.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

func writeEnvelopeError(w http.ResponseWriter, status int, apiErr model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(model.Fail[model.Empty](apiErr))
}
