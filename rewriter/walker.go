package rewriter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
)

// Walker lists source files under a root directory
type Walker struct {
	fs         afs.Service
	extensions []string
	exclude    map[string]bool
}

// NewWalker creates a walker matching file extensions and skipping excluded directory names
func NewWalker(fs afs.Service, extensions, exclude []string) *Walker {
	w := &Walker{fs: fs, extensions: extensions, exclude: make(map[string]bool)}
	for _, name := range exclude {
		w.exclude[name] = true
	}
	return w
}

// Walk returns every matching file under root sorted by relative path
func (w *Walker) Walk(ctx context.Context, root string) ([]*SourceFile, error) {
	var files []*SourceFile
	var visitErr error
	err := w.fs.Walk(ctx, root, func(ctx context.Context, baseURL string, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if closer, ok := reader.(io.Closer); ok {
			_ = closer.Close()
		}
		parent = strings.Trim(filepath.ToSlash(parent), "/")
		if info.IsDir() {
			return !w.exclude[info.Name()], nil
		}
		if w.excluded(parent) || !w.matches(info.Name()) {
			return true, nil
		}
		location := filepath.Join(root, filepath.FromSlash(parent), info.Name())
		file, err := NewSourceFile(root, location, info.Mode().Perm())
		if err != nil {
			visitErr = err
			return false, err
		}
		files = append(files, file)
		return true, nil
	})
	if visitErr != nil {
		return nil, visitErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}

// excluded reports whether any directory of the slash separated parent is skipped
func (w *Walker) excluded(parent string) bool {
	if parent == "" {
		return false
	}
	for _, elem := range strings.Split(parent, "/") {
		if w.exclude[elem] {
			return true
		}
	}
	return false
}

func (w *Walker) matches(name string) bool {
	for _, ext := range w.extensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return true
		}
	}
	return false
}
