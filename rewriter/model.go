package rewriter

import "os"

// SourceFile represents a file under the root with its location details
type SourceFile struct {
	Path    string      `yaml:"-"`     // absolute path
	RelPath string      `yaml:"path"`  // slash separated, relative to root
	Depth   int         `yaml:"depth"` // directories between root and the file
	Mode    os.FileMode `yaml:"-"`
}

// NewSourceFile locates path under root
func NewSourceFile(root, path string, mode os.FileMode) (*SourceFile, error) {
	rel, err := RelPath(root, path)
	if err != nil {
		return nil, err
	}
	depth, err := Depth(root, path)
	if err != nil {
		return nil, err
	}
	return &SourceFile{Path: path, RelPath: rel, Depth: depth, Mode: mode}, nil
}

// Rewriter computes new file content for a source file.
type Rewriter interface {
	// Name identifies the pass in logs and reports
	Name() string
	// Rewrite returns the rewritten content and whether it differs from content
	Rewrite(file *SourceFile, content string) (string, bool)
}

// Fix records a file whose content was (or would be) rewritten
type Fix struct {
	Path   string `yaml:"path"`
	Depth  int    `yaml:"depth"`
	Before string `yaml:"before"`
	After  string `yaml:"after"`
}

// Report accumulates fixes of a single run
type Report struct {
	Pass   string `yaml:"pass"`
	Root   string `yaml:"root"`
	DryRun bool   `yaml:"dryRun"`
	Fixed  []*Fix `yaml:"fixed"`
	Total  int    `yaml:"total"`
}

// Add appends a fix and keeps the total in step
func (r *Report) Add(fix *Fix) {
	r.Fixed = append(r.Fixed, fix)
	r.Total = len(r.Fixed)
}
