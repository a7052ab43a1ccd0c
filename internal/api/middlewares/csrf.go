package middlewares

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

// CSRFOptions configures double-submit-cookie protection: the token lives in an
// HttpOnly cookie and must be echoed back in a form field or header.
type CSRFOptions struct {
	FieldName      string // Default: "csrf_token"
	TokenHeader    string // Default: "X-CSRF-Token"
	CookieName     string // Default: "csrf_token"
	CookiePath     string // Default: "/"
	CookieSecure   bool
	CookieSameSite http.SameSite // Default: SameSiteStrictMode
}

func DefaultCSRFOptions(secure bool) CSRFOptions {
	return CSRFOptions{
		FieldName:      "csrf_token",
		TokenHeader:    "X-CSRF-Token",
		CookieName:     "csrf_token",
		CookiePath:     "/",
		CookieSecure:   secure,
		CookieSameSite: http.SameSiteStrictMode,
	}
}

func CSRF(opts CSRFOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			var expected string
			if cookie, err := r.Cookie(opts.CookieName); err == nil {
				expected = cookie.Value
			}

			provided := r.Header.Get(opts.TokenHeader)
			if provided == "" {
				provided = r.FormValue(opts.FieldName)
			}

			if !isValidCSRFToken(expected, provided) {
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IssueCSRFToken returns the request's existing token, or mints one, and (re)sets the cookie.
// Pages embed the result in their forms.
func IssueCSRFToken(w http.ResponseWriter, r *http.Request, opts CSRFOptions) string {
	token := ""
	if cookie, err := r.Cookie(opts.CookieName); err == nil && len(cookie.Value) == 64 {
		token = cookie.Value
	} else {
		token = generateCSRFToken()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    token,
		Path:     opts.CookiePath,
		Secure:   opts.CookieSecure,
		HttpOnly: true,
		SameSite: opts.CookieSameSite,
	})
	return token
}

func generateCSRFToken() string {
	var b [32]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func isValidCSRFToken(expected, provided string) bool {
	if expected == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
