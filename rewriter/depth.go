package rewriter

import (
	"regexp"
)

// PassDepth names the relative depth normalization pass
const PassDepth = "depth"

// expressTypesPattern matches the express type augmentation import at any relative depth.
var expressTypesPattern = regexp.MustCompile(`(\bfrom\s+)(['"])((?:\.\.?/)+)(types/express\.types)(['"])`)

// DepthNormalizer rewrites runs of two or more ../ in front of shared package
// imports so that they reach the root from the file's actual location.
// A single ../ is left alone as it may name a sibling directory.
type DepthNormalizer struct {
	pattern *regexp.Regexp
}

// NewDepthNormalizer creates a normalizer for the given package names
func NewDepthNormalizer(packages []string) *DepthNormalizer {
	// groups: 1 keyword, 2 open quote, 3 ../ run, 4 package, 5 subpath, 6 close quote
	expr := `(\bfrom\s+|\brequire\(\s*)(['"])((?:\.\./){2,})` + packageGroup(packages) + `((?:/[^'"]*)?)(['"])`
	return &DepthNormalizer{
		pattern: regexp.MustCompile(expr),
	}
}

func (n *DepthNormalizer) Name() string {
	return PassDepth
}

// Rewrite replaces the relative prefix of every matching specifier with the
// prefix computed from file.Depth.
func (n *DepthNormalizer) Rewrite(file *SourceFile, content string) (string, bool) {
	prefix := DepthPrefix(file.Depth)
	result := n.Normalize(content, prefix)
	return result, result != content
}

// Normalize rewrites content using prefix as the path back to the root.
func (n *DepthNormalizer) Normalize(content, prefix string) string {
	result := replaceAllSubmatchFunc(n.pattern, content, func(g []string) string {
		return g[1] + g[2] + prefix + g[4] + g[5] + g[6]
	})
	return replaceAllSubmatchFunc(expressTypesPattern, result, func(g []string) string {
		return g[1] + g[2] + prefix + g[4] + g[5]
	})
}
