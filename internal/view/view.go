package view

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/beanmap/beanmap/internal/ctxkeys"
	"github.com/beanmap/beanmap/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// pages holds one parsed template set per page file, built once at startup.
// The templates are embedded, so a parse failure is a programming error.
var pages = mustParsePages()

func mustParsePages() map[string]*template.Template {
	files, err := fs.Glob(templatesFS, "templates/*.page.html")
	if err != nil {
		panic("failed to glob templates: " + err.Error())
	}

	parsed := make(map[string]*template.Template, len(files))
	for _, file := range files {
		ts, err := template.New("").Funcs(functions).ParseFS(templatesFS,
			"templates/base.layout.html",
			file,
		)
		if err != nil {
			panic("failed to parse template " + file + ": " + err.Error())
		}
		parsed[path.Base(file)] = ts
	}
	return parsed
}

// Data carries everything a page template can reference. Request-derived
// fields (Year, Path, CurrentUser, CSRFToken, AppName) are filled in by
// Render when unset.
type Data struct {
	Title       string
	AppName     string
	Year        int
	Path        string
	CurrentUser *model.User

	// Form feedback
	Notice      string
	Error       string
	FieldErrors map[string]string
	Form        map[string]string

	CSRFToken string

	// Page payloads
	Cafes    []*model.Cafe
	NumCafes int
	Cafe     *model.Cafe
	Content  template.HTML
}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006")
	},
}

// Render executes the base layout with the given page file and writes the
// result. The page is buffered first so a template error never produces a
// half-written response.
func Render(w http.ResponseWriter, r *http.Request, pageFile string, status int, data *Data) {
	if data == nil {
		data = &Data{}
	}

	data.Year = time.Now().Year()
	if data.Path == "" {
		data.Path = r.URL.Path
	}
	if data.CurrentUser == nil {
		data.CurrentUser = ctxkeys.User(r.Context())
	}
	if data.CSRFToken == "" {
		data.CSRFToken = ctxkeys.CSRFToken(r.Context())
	}
	if data.AppName == "" {
		cfg := ctxkeys.Config(r.Context())
		if cfg != nil {
			data.AppName = cfg.AppName
		}
	}

	ts, ok := pages[pageFile]
	if !ok {
		slog.Error("unknown page template", "page", pageFile)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	err := ts.ExecuteTemplate(buf, "base", data)
	if err != nil {
		slog.Error("render failed", "page", pageFile, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	if err != nil {
		slog.Error("response write failed", "page", pageFile, "error", err)
	}
}
