package rewriter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is reported when a file does not live under the configured root.
var ErrOutsideRoot = errors.New("file is not under root")

// A RootError indicates a file that cannot be located relative to the root.
type RootError struct {
	Root string
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("path %s relative to %s: %v", e.Path, e.Root, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// RelPath returns the slash-separated path of file relative to root.
func RelPath(root, file string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(file))
	if err != nil {
		return "", &RootError{Root: root, Path: file, Err: fmt.Errorf("%w: %v", ErrOutsideRoot, err)}
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", &RootError{Root: root, Path: file, Err: ErrOutsideRoot}
	}
	return rel, nil
}

// Depth returns the number of directories between root and the directory holding file.
func Depth(root, file string) (int, error) {
	rel, err := RelPath(root, file)
	if err != nil {
		return 0, err
	}
	return strings.Count(rel, "/"), nil
}

// DepthPrefix returns the relative prefix that reaches root from a file at depth.
func DepthPrefix(depth int) string {
	if depth <= 0 {
		return "./"
	}
	return strings.Repeat("../", depth)
}
