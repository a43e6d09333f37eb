package rewriter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

var digestKey = []byte("tsimports/report/highwayhash-64k")

// Digest returns the highwayhash-64 digest of content as a fixed width hex string
func Digest(content string) (string, error) {
	hash, err := highwayhash.New64(digestKey)
	if err != nil {
		return "", err
	}
	if _, err = hash.Write([]byte(content)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", hash.Sum64()), nil
}

// NewFix builds the report entry for a rewritten file
func NewFix(file *SourceFile, before, after string) (*Fix, error) {
	beforeDigest, err := Digest(before)
	if err != nil {
		return nil, err
	}
	afterDigest, err := Digest(after)
	if err != nil {
		return nil, err
	}
	return &Fix{Path: file.RelPath, Depth: file.Depth, Before: beforeDigest, After: afterDigest}, nil
}

// Export writes the report as YAML to URL
func (r *Report) Export(ctx context.Context, fs afs.Service, URL string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err = fs.Upload(ctx, URL, 0644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write report %s: %w", URL, err)
	}
	return nil
}
