package image

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	Extension   = ".png"
	ContentType = "image/png"
	maxAge      = "public, max-age=86400"

	// RoutePrefix is where product image files are mounted.
	RoutePrefix = "/assets/products/"
)

var ErrNotFound = errors.New("image not found")

// Server serves product image files kept outside the database.
type Server interface {
	// ServeImageFile writes the named file or returns ErrNotFound.
	ServeImageFile(w http.ResponseWriter, r *http.Request, filename string) error
	// ImageURL returns the conventional <id>.png URL when that file exists.
	ImageURL(baseURL, productID string) (string, bool)
}

// LocalServer serves images from a directory on disk. Names that leave the
// directory or lack the image extension are reported as not found.
type LocalServer struct {
	dir string
}

func NewLocalServer(dir string) *LocalServer {
	return &LocalServer{dir: dir}
}

func (s *LocalServer) ServeImageFile(w http.ResponseWriter, r *http.Request, filename string) error {
	f, info, err := s.open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Cache-Control", maxAge)
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return nil
}

func (s *LocalServer) ImageURL(baseURL, productID string) (string, bool) {
	if productID == "" {
		return "", false
	}
	filename := productID + Extension
	f, _, err := s.open(filename)
	if err != nil {
		return "", false
	}
	f.Close()
	return strings.TrimRight(baseURL, "/") + RoutePrefix + url.PathEscape(filename), true
}

func (s *LocalServer) open(filename string) (*os.File, os.FileInfo, error) {
	if !strings.HasSuffix(strings.ToLower(filename), Extension) || !filepath.IsLocal(filename) {
		return nil, nil, ErrNotFound
	}

	f, err := os.OpenInRoot(s.dir, filename)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		return nil, nil, ErrNotFound
	}
	return f, info, nil
}
