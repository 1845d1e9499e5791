package router

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
)

// pageExtensions lists the file extensions ScanFilesystem treats as page
// files, matching the original scanner exactly.
var pageExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
}

// ScanFilesystem walks pagesDir recursively, derives a route for every page
// file it finds, compiles each route's pattern, and returns the routes
// sorted by specificity (see sortRoutes). A file whose derived route fails
// to compile — an empty parameter name, a catch-all that isn't the file's
// last segment — is dropped rather than aborting the whole scan, exactly as
// the original scanner does, but the drop is reported through logger (or
// slog.Default() if logger is nil) so the host isn't left guessing why a
// page never got a route.
func ScanFilesystem(pagesDir string, logger *slog.Logger) []Route {
	if logger == nil {
		logger = slog.Default()
	}

	var files []string
	_ = filepath.WalkDir(pagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if pageExtensions[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})

	routes := make([]Route, 0, len(files))
	for _, file := range files {
		routePath := filePathToRoute(pagesDir, file)
		segments, paramNames, pattern, ok := compileRoutePattern(routePath)
		if !ok {
			logger.Warn("dropped route: invalid pattern", "file", file, "route", routePath)
			continue
		}
		routes = append(routes, Route{
			Path:       routePath,
			FilePath:   file,
			IsDynamic:  strings.Contains(routePath, "["),
			Segments:   segments,
			ParamNames: paramNames,
			Pattern:    pattern,
		})
	}

	sortRoutes(routes)
	return routes
}

// filePathToRoute derives the route string for a page file: the path
// relative to pagesDir, slash-normalized, extension stripped, and an
// "index" filename collapsed into its parent directory's route (so
// "blog/index.jsx" and "blog.jsx" both resolve to "/blog").
func filePathToRoute(pagesDir, file string) string {
	rel, err := filepath.Rel(pagesDir, file)
	if err != nil {
		rel = file
	}
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	switch {
	case rel == "index":
		rel = ""
	case strings.HasSuffix(rel, "/index"):
		rel = strings.TrimSuffix(rel, "/index")
	}

	route := "/" + rel
	if route != "/" {
		route = strings.TrimSuffix(route, "/")
	}
	return route
}

// sortRoutes orders routes by specificity: routes are compared segment by
// segment using segmentRank (static beats dynamic beats catch-all beats
// optional catch-all), ties within a pair of static segments break on the
// segment text, a remaining tie prefers the route with fewer segments, and
// the route path string is the final, fully deterministic tiebreak.
func sortRoutes(routes []Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		return routeLess(routes[i], routes[j])
	})
}

func routeLess(a, b Route) bool {
	n := len(a.Segments)
	if len(b.Segments) < n {
		n = len(b.Segments)
	}
	for i := 0; i < n; i++ {
		ra, rb := segmentRank(a.Segments[i].Kind), segmentRank(b.Segments[i].Kind)
		if ra != rb {
			return ra > rb
		}
		if a.Segments[i].Kind == Static && a.Segments[i].Text != b.Segments[i].Text {
			return a.Segments[i].Text < b.Segments[i].Text
		}
	}
	if len(a.Segments) != len(b.Segments) {
		return len(a.Segments) < len(b.Segments)
	}
	return a.Path < b.Path
}
