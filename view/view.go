package view

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/groupebh/gbh-backend/i18n"
	"github.com/groupebh/gbh-backend/internal/branding"
	"github.com/groupebh/gbh-backend/internal/models"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

// LangResolver is injected at bootstrap so this package stays decoupled from
// the middleware package while still reflecting the visitor's language.
type LangResolver func(r *http.Request) string

var langResolver LangResolver = func(*http.Request) string { return "fr" }

func SetLangResolver(f LangResolver) { langResolver = f }

func asEntity(v any) *models.BusinessEntity {
	switch e := v.(type) {
	case *models.BusinessEntity:
		return e
	case models.BusinessEntity:
		return &e
	}
	return nil
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the standard func map: i18n, branding and small helpers.
func Funcs(r *http.Request) template.FuncMap {
	lang := langResolver(r)
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		"year": func() int { return time.Now().Year() },
		// Templates hand over pointers from page data and values from
		// ranged slices; accept both.
		"entityColor": func(e any) string {
			return branding.DisplayColor(asEntity(e))
		},
		"entityImage": func(e any) string {
			return branding.DisplayImage(asEntity(e))
		},
		"defaultColor": branding.DefaultColor,
	}
}

// Render parses and executes a template file, wrapping it in the layout and
// header partial unless the file carries its own <!doctype>. Parsed templates
// are cached outside DEV mode.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(detectBase)
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	// The func map closes over the visitor's language, so the cache is keyed
	// per language: a cached French parse must never serve an English page.
	cacheKey := name + "|" + langResolver(r)
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[cacheKey]
		tplCache.RUnlock()
		if ok && t != nil {
			return t.Execute(w, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return err
	}
	contentBytes, _ := os.ReadFile(mainPath)
	useLayout := !bytes.Contains(bytes.ToLower(contentBytes), []byte("<!doctype"))

	funcMap := Funcs(r)
	var t *template.Template
	layoutPath := filepath.Join(baseDir, "layout.html")
	if useLayout {
		if fi, err := os.Stat(layoutPath); err == nil && !fi.IsDir() {
			files := []string{layoutPath, mainPath}
			header := filepath.Join(baseDir, "partials", "header.html")
			if pf, err := os.Stat(header); err == nil && !pf.IsDir() {
				files = append(files, header)
			}
			parsed, err := template.New("layout.html").Funcs(funcMap).ParseFiles(files...)
			if err != nil {
				return err
			}
			t = parsed
		} else {
			useLayout = false
		}
	}
	if !useLayout {
		parsed, err := template.New(name).Funcs(funcMap).ParseFiles(mainPath)
		if err != nil {
			return err
		}
		t = parsed
	}
	if t == nil {
		return errors.New("template not parsed")
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[cacheKey] = t
		tplCache.Unlock()
	}
	return t.Execute(w, data)
}
