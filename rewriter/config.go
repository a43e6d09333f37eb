package rewriter

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config controls which files are visited and which imports are rewritten
type Config struct {
	Root       string            `yaml:"root,omitempty"`
	Extensions []string          `yaml:"extensions,omitempty"`
	Packages   []string          `yaml:"packages,omitempty"`
	Aliases    map[string]string `yaml:"aliases,omitempty"`
	Exclude    []string          `yaml:"exclude,omitempty"`
	DryRun     bool              `yaml:"dryRun,omitempty"`
	Report     string            `yaml:"report,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is specified
func DefaultConfig() *Config {
	return &Config{
		Extensions: []string{".ts"},
		Packages:   []string{"constants", "types", "utils", "schemas"},
		Exclude:    []string{"node_modules", ".git", ".hg", ".svn", ".bzr"},
	}
}

// LoadConfig reads a YAML config from URL on top of the defaults
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	cfg := DefaultConfig()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}
	return cfg, nil
}

// Validate normalizes extensions and checks package names
func (c *Config) Validate() error {
	if len(c.Packages) == 0 {
		return fmt.Errorf("no packages configured")
	}
	for _, pkg := range c.Packages {
		if pkg == "" || strings.ContainsAny(pkg, `'"/\`) || strings.HasPrefix(pkg, ".") {
			return fmt.Errorf("invalid package name %q", pkg)
		}
	}
	for pkg, alias := range c.Aliases {
		if !c.hasPackage(pkg) {
			return fmt.Errorf("alias defined for unknown package %q", pkg)
		}
		if strings.ContainsAny(alias, `'"`) {
			return fmt.Errorf("invalid alias %q for package %q", alias, pkg)
		}
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("no extensions configured")
	}
	for i, ext := range c.Extensions {
		if ext == "" {
			return fmt.Errorf("empty extension")
		}
		if !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	return nil
}

func (c *Config) hasPackage(name string) bool {
	for _, pkg := range c.Packages {
		if pkg == name {
			return true
		}
	}
	return false
}

// Rewriter returns the rewriter implementing the named pass
func (c *Config) Rewriter(pass string) (Rewriter, error) {
	switch pass {
	case PassDepth:
		return NewDepthNormalizer(c.Packages), nil
	case PassAlias:
		return NewAliasConverter(c.Packages, c.Aliases), nil
	}
	return nil, fmt.Errorf("unknown pass %q", pass)
}
