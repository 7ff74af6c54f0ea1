package guard

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// Resolver produces the decision for an incoming request.
type Resolver func(r *http.Request) Decision

// Middleware renders a placeholder while the session loads, redirects when a
// precondition fails and otherwise hands over to the next handler.
func Middleware(resolve Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := resolve(r)
			switch d.Kind {
			case Allow:
				next.ServeHTTP(w, r)
			case Redirect:
				http.Redirect(w, r, d.Target, http.StatusSeeOther)
			default:
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusServiceUnavailable)
				jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(map[string]string{"status": "loading"})
			}
		})
	}
}
