package middleware

import (
	"net/http"
	"strings"
)

// overrideField is the form field / query parameter HTML forms use to
// signal PUT or DELETE, since forms natively support only GET and POST.
const overrideField = "_method"

// MethodOverride rewrites the verb of a POST request that carries a
// _method override before routing sees it. It wraps the whole router
// rather than running as a route middleware so the rewritten verb is what
// gets matched.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := overrideMethod(r); m != "" {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	m := r.URL.Query().Get(overrideField)
	if m == "" && hasFormBody(r) {
		// ParseForm caches the parsed body, so later form binding in the
		// handler still sees every field.
		if err := r.ParseForm(); err == nil {
			m = r.PostForm.Get(overrideField)
		}
	}

	switch strings.ToUpper(m) {
	case http.MethodPut:
		return http.MethodPut
	case http.MethodDelete:
		return http.MethodDelete
	case http.MethodPatch:
		return http.MethodPatch
	}
	return ""
}

func hasFormBody(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded")
}
