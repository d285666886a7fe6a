package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/paid-search-advisor/pkg/apiErrors"
	"github.com/vfg2006/paid-search-advisor/pkg/log"
)

// CorrelationIDHeader devolve ao cliente o ID usado nos logs da requisição
const CorrelationIDHeader = "X-Correlation-ID"

// análises com coleta podem levar minutos; abaixo disso a rota é considerada lenta
const slowRequestThreshold = 5 * time.Second

// rotas consultadas por probes e pelo Prometheus não geram log de acesso
var quietPaths = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

// LoggingMiddleware registra início e fim de cada requisição HTTP com o ID de correlação
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			if !log.IsDevelopment() {
				log.L.WithFields(log.Fields{
					"correlation_id": correlationID,
					"remote_addr":    r.RemoteAddr,
					"method":         r.Method,
					"path":           r.URL.Path,
					"query":          r.URL.RawQuery,
					"user_agent":     r.UserAgent(),
					"content_length": r.ContentLength,
				}).Info("http: requisição iniciada")
			}

			next.ServeHTTP(lrw, r)

			responseTime := time.Since(startTime)
			fields := log.Fields{
				"correlation_id": correlationID,
				"method":         r.Method,
				"path":           r.URL.Path,
				"status_code":    lrw.statusCode,
				"duration_ms":    responseTime.Milliseconds(),
			}

			logger := log.L.WithFields(fields)
			message := fmt.Sprintf("http: requisição finalizada em %s", formatDuration(responseTime))

			switch {
			case lrw.statusCode >= 500:
				logger.Error(message)
			case lrw.statusCode >= 400:
				logger.Warn(message)
			default:
				logger.Info(message)
			}

			if responseTime > slowRequestThreshold {
				logger.Warnf("http: requisição lenta: %s %s", r.Method, r.URL.Path)
			}
		})
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%d µs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2f s", d.Seconds())
}

// loggingResponseWriter captura o status code escrito pelo handler
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{w, http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware recupera panics dos handlers, registra o stack trace e responde 500
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stackTrace := string(stack[:runtime.Stack(stack, false)])

					logger := log.ForContext(r.Context()).WithFields(log.Fields{
						"panic_error": err,
						"method":      r.Method,
						"path":        r.URL.Path,
					})
					logger.Error("http: panic na aplicação")

					if log.IsDevelopment() {
						fmt.Fprintf(os.Stderr, "\n=== STACK TRACE ===\n%s\n", stackTrace)
					} else {
						logger.WithField("stack_trace", stackTrace).Error("http: stack trace do panic")
					}

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
