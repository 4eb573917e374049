package server

import (
	"net"
	"net/http"
	"net/url"
	"time"

	"log/slog"

	"github.com/cybedefend/cdscan/pkg/utils/logging"
)

const requestIDHeader = "X-Request-ID"

func preProcess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID, ctx := logging.CtxRequestID(r.Context())
		logger := logging.Default().With(slog.String("request_id", reqID.String()))
		ctx = logging.With(ctx, logger)

		w.Header().Set(requestIDHeader, reqID.String())
		lw := &statusCodeLogger{
			ResponseWriter: w,
			statusCode:     http.StatusOK, // Default to 200 if WriteHeader is not called
		}

		requestedAt := time.Now()
		next.ServeHTTP(lw, r.WithContext(ctx))

		logger.Info("http access",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Int("status_code", lw.statusCode),
			slog.Int64("content_length", r.ContentLength),
			slog.String("user_agent", r.UserAgent()),
			slog.Duration("elapsed", time.Since(requestedAt)),
		)
	})
}

type statusCodeLogger struct {
	http.ResponseWriter
	statusCode int
}

func (x *statusCodeLogger) WriteHeader(code int) {
	x.statusCode = code
	x.ResponseWriter.WriteHeader(code)
}

// rejectCrossOrigin refuses state changing requests sent by pages that are
// not served from the loopback interface. Requests without Origin come from
// non-browser clients and pass.
func rejectCrossOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		if origin := r.Header.Get("Origin"); origin != "" && !isLoopbackOrigin(origin) {
			logging.From(r.Context()).Warn("cross origin request rejected",
				slog.String("origin", origin),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "cross origin request is not allowed"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isLoopbackOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
