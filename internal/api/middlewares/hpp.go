package middlewares

import (
	"errors"
	"net/http"
	"strings"
)

// HPPOptions guards against HTTP parameter pollution: repeated keys collapse to their
// first value and keys outside Whitelist are dropped.
type HPPOptions struct {
	CheckQuery                  bool
	CheckBody                   bool
	CheckBodyOnlyForContentType string
	Whitelist                   []string
}

func HPP(opts HPPOptions) Middleware {
	allowed := make(map[string]struct{}, len(opts.Whitelist))
	for _, k := range opts.Whitelist {
		allowed[k] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.CheckBody && r.Method == http.MethodPost && isCorrectContentType(r, opts.CheckBodyOnlyForContentType) {
				if err := filterBodyParams(r, allowed); err != nil {
					// ParseForm reports a body error once; downstream handlers would see an empty form.
					var mbe *http.MaxBytesError
					if errors.As(err, &mbe) {
						http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
						return
					}
					http.Error(w, "Bad Request", http.StatusBadRequest)
					return
				}
			}
			if opts.CheckQuery && r.URL.RawQuery != "" {
				filterQueryParams(r, allowed)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isCorrectContentType(r *http.Request, contentType string) bool {
	return strings.Contains(r.Header.Get("Content-Type"), contentType)
}

func filterBodyParams(r *http.Request, allowed map[string]struct{}) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	filterValues(r.PostForm, allowed)
	filterValues(r.Form, allowed)
	return nil
}

func filterQueryParams(r *http.Request, allowed map[string]struct{}) {
	query := r.URL.Query()
	filterValues(query, allowed)
	r.URL.RawQuery = query.Encode()
}

func filterValues(vals map[string][]string, allowed map[string]struct{}) {
	for k, v := range vals {
		if _, ok := allowed[k]; !ok {
			delete(vals, k)
			continue
		}
		if len(v) > 1 {
			vals[k] = v[:1]
		}
	}
}

// FormHPPOptions whitelists the parameters the meter page understands.
func FormHPPOptions() HPPOptions {
	return HPPOptions{
		CheckQuery:                  true,
		CheckBody:                   true,
		CheckBodyOnlyForContentType: "application/x-www-form-urlencoded",
		Whitelist:                   []string{"password", "action", "length", "csrf_token"},
	}
}
