package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "hotelbooking/pkg/errors"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Panic recovered",
						"request_id", RequestIDFromContext(r.Context()),
						"error", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					err := apperrors.Internal("Panic while handling request", fmt.Errorf("%v", rec))
					if writeErr := httputil.WriteError(w, err); writeErr != nil {
						log.Error("failed to write panic response", "error", writeErr)
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
