package dashboard

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
)

//go:embed web/index.html
var indexHTML string

//go:embed web/assets
var assetsFS embed.FS

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// assetsHandler serves web/assets under /assets/.
var assetsHandler = http.FileServer(http.FS(mustSub(assetsFS, "web")))

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// ServeIndex serves the dashboard page with the initial render inlined, so
// the shell is visible before the live session connects.
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	doc := NewDocument()
	if err := d.view.Render(doc, NewAppState(d.opts.Rovers)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, template.HTML(doc.HTML())); err != nil {
		log.Printf("dashboard: index: %v", err)
	}
}

// ServeAssets serves the embedded script and stylesheet under /assets/.
func (d *Dashboard) ServeAssets(w http.ResponseWriter, r *http.Request) {
	assetsHandler.ServeHTTP(w, r)
}
