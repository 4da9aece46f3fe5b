package middleware

import (
	"context"
	"net/http"

	"github.com/fixwise/booking-service/internal/api/handlers"
)

// HeaderCustomerRef заголовок с идентификатором клиента
// Значение проставляет вышестоящий шлюз после собственной аутентификации
const HeaderCustomerRef = "X-Customer-Ref"

type customerRefKey struct{}

// Auth требует наличия заголовка X-Customer-Ref и кладёт его значение в контекст
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customerRef := r.Header.Get(HeaderCustomerRef)
			if customerRef == "" {
				logger.Warn("Auth: missing %s header for %s %s", HeaderCustomerRef, r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized,
					"требуется заголовок "+HeaderCustomerRef)
				return
			}

			ctx := context.WithValue(r.Context(), customerRefKey{}, customerRef)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerRefFromContext возвращает идентификатор клиента из контекста запроса
func CustomerRefFromContext(ctx context.Context) (string, bool) {
	ref, ok := ctx.Value(customerRefKey{}).(string)
	return ref, ok
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
