package server

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-chi/chi/v5"
)

// MountStatic serves the files under dir at the root of r. Paths matching
// any exclude pattern answer 404. It must be mounted after every other route.
func MountStatic(r chi.Router, dir string, exclude []string) {
	files := http.FileServer(http.Dir(dir))
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		rel := strings.TrimPrefix(path.Clean("/"+req.URL.Path), "/")
		if rel != "" && MatchesExclude(rel, exclude) {
			http.NotFound(w, req)
			return
		}
		files.ServeHTTP(w, req)
	})
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks relPath and its base name against each glob.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := path.Base(normalized)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
