package http

import (
	"html/template"
	"io/fs"
	"os"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// templateFuncs builds the helpers available to every page.
// withCovers routes images through the local cover cache.
func templateFuncs(withCovers bool) template.FuncMap {
	return template.FuncMap{
		"deref": deref,
		"formatDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
		"bookCover": func(b entities.Book) string {
			if b.CoverImage == nil {
				return ""
			}
			if withCovers {
				return "/covers/books/" + b.ID
			}
			return *b.CoverImage
		},
		"authorImage": func(a entities.Author) string {
			if a.ImageURL == nil {
				return ""
			}
			if withCovers {
				return "/covers/authors/" + a.ID
			}
			return *a.ImageURL
		},
		"bookCount": func(a entities.Author) int {
			return len(a.Books)
		},
	}
}

// loadTemplates parses the page templates from dir, or from embedded when dir is empty.
func loadTemplates(dir string, embedded fs.FS, funcs template.FuncMap) (*template.Template, error) {
	source := embedded
	if dir != "" {
		source = os.DirFS(dir)
	}
	return template.New("").Funcs(funcs).ParseFS(source, "*.html")
}
