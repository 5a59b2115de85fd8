// Ограничение размера тела входящего запроса.
package middleware

import "net/http"

// BodyLimit оборачивает тело запроса в http.MaxBytesReader,
// так что чтение тела длиннее maxBytes байт завершается ошибкой,
// а хендлер при декодировании JSON отдаёт клиенту 400.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
