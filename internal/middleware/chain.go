package middleware

import (
	"net/http"

	"fritter/internal/api"
)

// Check inspects a request and returns a non-nil error to reject it.
// Checks must not mutate state.
type Check func(r *http.Request) error

// Validate runs checks in order before next. The first failing check writes
// its error response and stops the chain.
func Validate(checks ...Check) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, check := range checks {
				if err := check(r); err != nil {
					api.WriteError(w, err)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// When runs checks only if pred holds, e.g. for optional query parameters.
func When(pred func(r *http.Request) bool, checks ...Check) Check {
	return func(r *http.Request) error {
		if !pred(r) {
			return nil
		}
		for _, check := range checks {
			if err := check(r); err != nil {
				return err
			}
		}
		return nil
	}
}

// HasQuery is a When predicate for a present, non-empty query parameter.
func HasQuery(name string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		return r.URL.Query().Get(name) != ""
	}
}
