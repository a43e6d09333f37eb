package rewriter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/viant/afs"
)

// Runner applies a rewriter to every source file under the configured root
type Runner struct {
	cfg      *Config
	fs       afs.Service
	rewriter Rewriter
	out      io.Writer
}

// NewRunner creates a runner printing fix notifications to out
func NewRunner(cfg *Config, rewriter Rewriter, out io.Writer) *Runner {
	return &Runner{cfg: cfg, fs: afs.New(), rewriter: rewriter, out: out}
}

// Run walks the root, rewrites files whose content changes and returns the report.
// Files rewritten before an error stay rewritten.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	root, err := filepath.Abs(r.cfg.Root)
	if err != nil {
		return nil, err
	}
	report := &Report{Pass: r.rewriter.Name(), Root: root, DryRun: r.cfg.DryRun}

	slog.Debug("list source files.", "root", root, "extensions", r.cfg.Extensions)
	files, err := NewWalker(r.fs, r.cfg.Extensions, r.cfg.Exclude).Walk(ctx, root)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		fix, err := r.process(ctx, file)
		if err != nil {
			return report, err
		}
		if fix == nil {
			continue
		}
		report.Add(fix)
		verb := "Fixed"
		if r.cfg.DryRun {
			verb = "Would fix"
		}
		fmt.Fprintf(r.out, "%s: %s\n", verb, file.RelPath)
	}
	fmt.Fprintf(r.out, "\nTotal files %s: %d\n", summaryVerb(report.Pass), report.Total)

	if r.cfg.Report != "" {
		if err = report.Export(ctx, r.fs, r.cfg.Report); err != nil {
			return report, err
		}
		slog.Info("report written.", "location", r.cfg.Report)
	}
	return report, nil
}

func (r *Runner) process(ctx context.Context, file *SourceFile) (*Fix, error) {
	data, err := r.fs.DownloadWithURL(ctx, file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Path, err)
	}
	content := string(data)
	rewritten, changed := r.rewriter.Rewrite(file, content)
	if !changed {
		slog.Debug("unchanged.", "file", file.RelPath)
		return nil, nil
	}
	fix, err := NewFix(file, content, rewritten)
	if err != nil {
		return nil, err
	}
	if r.cfg.DryRun {
		return fix, nil
	}
	mode := file.Mode
	if mode == 0 {
		mode = 0644
	}
	if err = r.fs.Upload(ctx, file.Path, mode, bytes.NewReader([]byte(rewritten))); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", file.Path, err)
	}
	return fix, nil
}

func summaryVerb(pass string) string {
	if pass == PassAlias {
		return "updated"
	}
	return "fixed"
}
