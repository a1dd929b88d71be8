package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/notaspie/notaspie/config"
)

const versionHeader = "X-Notaspie-Version"

// SendVersion adds the running version to every response.
func SendVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get(versionHeader) == "" {
			w.Header().Set(versionHeader, config.VersionString)
		}
		next.ServeHTTP(w, r)
	})
}

// ApplyCustomHeaders adds the server.custom_headers to every response. Values
// are resolved once: "env:NAME" is read from the environment when the router
// is built, and a header whose variable is unset or empty is left out.
func ApplyCustomHeaders(customHeaders map[string]string) func(http.Handler) http.Handler {
	headers := resolveHeaders(customHeaders)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for key, value := range headers {
				// a handler that already set the header wins
				if w.Header().Get(key) == "" {
					w.Header().Set(key, value)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveHeaders(customHeaders map[string]string) map[string]string {
	headers := make(map[string]string, len(customHeaders))
	for key, value := range customHeaders {
		if name, ok := strings.CutPrefix(value, "env:"); ok {
			value = os.Getenv(name)
			if value == "" {
				log.Warnf("custom header %s: environment variable %s is not set", key, name)
				continue
			}
		}
		headers[key] = value
	}
	return headers
}
