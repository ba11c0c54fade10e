package http

import (
	"context"
	"net/http"
	"time"

	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/google/uuid"
)

type requestIDKey struct{}

const requestIDHeader = "X-Request-Id"

// RequestID присваивает каждому запросу идентификатор и возвращает его в заголовке.
// Уже присутствующий клиентский идентификатор не перезаписывается.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromCtx возвращает идентификатор запроса из контекста.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// AccessLog логирует метод, путь, длительность и идентификатор запроса.
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Infof("%s %s %s request_id=%s", r.Method, r.URL.Path, time.Since(start), RequestIDFromCtx(r.Context()))
		})
	}
}
