// Package render draws the console's server-side pages from embedded templates.
package render

import (
	"backoffice/config"
	"backoffice/internal/session"
	"backoffice/shared/constant"
	"backoffice/shared/logger"
	"backoffice/shared/validator"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templates embed.FS

const (
	layoutFile  = "templates/layout.html"
	partialGlob = "templates/_*.html"
	pageGlob    = "templates/*.html"
)

// Page is the data every template receives.
type Page struct {
	Title         string
	Actor         string
	LoginRequired bool
	Error         string
	Success       string
	// Errors holds per-field validation messages of a rejected form.
	Errors validator.FieldErrors
	Data   any
}

// Field returns the validation message for name, "" when the field is valid.
func (p Page) Field(name string) string {
	return p.Errors[name]
}

type Renderer struct {
	cfg      *config.Config
	pages    map[string]*template.Template
	partials *template.Template
}

var funcs = template.FuncMap{
	"contains":    slices.Contains[[]string, string],
	"aspectClass": aspectClass,
}

// aspectClass maps a player aspect such as "9 / 16" onto its CSS class.
func aspectClass(aspect string) string {
	return "aspect-" + strings.ReplaceAll(aspect, " / ", "-")
}

// New parses every page once against the shared layout. Templates are embedded,
// so a parse error is a build defect and panics.
func New(cfg *config.Config) *Renderer {
	r, err := parse(templates)
	if err != nil {
		panic(err)
	}

	r.cfg = cfg

	return r
}

func parse(fsys fs.FS) (*Renderer, error) {
	base, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(fsys, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	partials, err := fs.Glob(fsys, partialGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to list partials: %w", err)
	}

	if len(partials) > 0 {
		if base, err = base.ParseFS(fsys, partials...); err != nil {
			return nil, fmt.Errorf("failed to parse partials: %w", err)
		}
	}

	files, err := fs.Glob(fsys, pageGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))

	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		if file == layoutFile || strings.HasPrefix(name, "_") {
			continue
		}

		page, err := template.Must(base.Clone()).ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}

		pages[name] = page
	}

	return &Renderer{pages: pages, partials: base}, nil
}

// HTML renders page with the session banner and actor filled in.
func (r *Renderer) HTML(w http.ResponseWriter, req *http.Request, status int, name string, page Page) {
	if sess, ok := session.FromContext(req.Context()); ok {
		page.Actor = sess.Actor
		errMsg, success := sess.Banner.Take()

		if page.Error == "" {
			page.Error = errMsg
		}

		if page.Success == "" {
			page.Success = success
		}
	}

	if r.cfg != nil {
		page.LoginRequired = r.cfg.LoginRequired()
	}

	tmpl, ok := r.pages[name]
	if !ok {
		log.Error().Str("page", name).Msg("unknown page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, path.Base(layoutFile), page); err != nil {
		logger.ErrorWithStack(err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeHTML)
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Str("page", name).Msg("failed to write page")
	}
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]

	return ok
}

// Fragment renders one partial, e.g. "media-card", for the load-more endpoints.
func (r *Renderer) Fragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.partials.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}

	return buf.String(), nil
}
