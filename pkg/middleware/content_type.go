package middleware

import (
	"net/http"
	"strings"

	apperrors "hotelbooking/pkg/errors"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"
)

// ContentTypeValidation requires application/json on write requests that carry a body.
// Cancel requests are bodiless POSTs and pass through.
func ContentTypeValidation(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requiresContentType(r.Method) && hasBody(r) {
				contentType := extractContentType(r.Header.Get("Content-Type"))

				if contentType != "application/json" {
					rejectInvalidContentType(w, log, r, contentType)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresContentType(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

func hasBody(r *http.Request) bool {
	return r.ContentLength > 0 || len(r.TransferEncoding) > 0
}

func extractContentType(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.Split(header, ";")
	return strings.ToLower(strings.TrimSpace(parts[0]))
}

func rejectInvalidContentType(w http.ResponseWriter, log *logger.Logger, r *http.Request, contentType string) {
	log.Warn("Invalid Content-Type header",
		"request_id", RequestIDFromContext(r.Context()),
		"content_type", contentType,
		"path", r.URL.Path,
		"method", r.Method,
	)

	err := apperrors.New(apperrors.CodeInvalidInput, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		log.Error("failed to write content type rejection", "error", writeErr)
	}
}
