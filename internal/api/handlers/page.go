package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	mw "github.com/5w1tchy/password-meter/internal/api/middlewares"
	"github.com/5w1tchy/password-meter/internal/metrics"
	"github.com/5w1tchy/password-meter/internal/security/password"
	"github.com/5w1tchy/password-meter/internal/validate"
)

const (
	actionCheck    = "check"
	actionGenerate = "generate"
)

// Page serves the meter form. Every submission re-renders the whole page;
// nothing about the password outlives the request.
type Page struct {
	metrics   *metrics.Metrics
	csrf      mw.CSRFOptions
	genLength int
}

func NewPage(m *metrics.Metrics, csrf mw.CSRFOptions, genLength int) *Page {
	if genLength <= 0 {
		genLength = password.DefaultLength
	}
	return &Page{metrics: m, csrf: csrf, genLength: genLength}
}

type pageData struct {
	CSRFToken      string
	Assessment     *password.Assessment
	Generated      string
	GenerateLength int
	MinLength      int
	MaxLength      int
	Error          string
}

func (p *Page) newData(w http.ResponseWriter, r *http.Request) pageData {
	return pageData{
		CSRFToken:      mw.IssueCSRFToken(w, r, p.csrf),
		GenerateLength: p.genLength,
		MinLength:      validate.MinGenerateLength,
		MaxLength:      validate.MaxGenerateLength,
	}
}

// Show handles GET /.
func (p *Page) Show(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, p.newData(w, r))
}

// Submit handles POST / for both the check and the generate forms.
func (p *Page) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	data := p.newData(w, r)

	switch action := r.PostForm.Get("action"); action {
	case actionGenerate:
		n, err := validate.ParseLength(r.PostForm.Get("length"), p.genLength)
		if err != nil {
			data.Error = fmt.Sprintf("Password length must be between %d and %d characters.",
				validate.MinGenerateLength, validate.MaxGenerateLength)
			p.render(w, r, http.StatusBadRequest, data)
			return
		}
		data.GenerateLength = n
		data.Generated = password.GenerateStrong(n)
		p.metrics.Generated.WithLabelValues("strong").Inc()

	case actionCheck, "":
		pwd := r.PostForm.Get("password")
		if pwd == "" {
			break
		}
		a := password.Assess(pwd)
		data.Assessment = &a
		if a.Blacklisted {
			p.metrics.BlacklistHits.Inc()
		} else {
			p.metrics.Checks.WithLabelValues(a.Level.Label).Inc()
		}

	default:
		data.Error = "Unknown action."
		p.render(w, r, http.StatusBadRequest, data)
		return
	}

	p.render(w, r, http.StatusOK, data)
}

func (p *Page) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		log.Error().Err(err).Str("request_id", mw.GetRequestID(r)).Msg("render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
