package rewriter

import (
	"regexp"
	"strings"
)

// PassAlias names the relative-to-alias conversion pass
const PassAlias = "alias"

type aliasRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// AliasConverter replaces relative imports of shared packages with their alias.
type AliasConverter struct {
	rules []aliasRule
}

// NewAliasConverter creates a converter; aliases maps a package name to its alias,
// packages without an entry use "@" + name.
func NewAliasConverter(packages []string, aliases map[string]string) *AliasConverter {
	var rules []aliasRule
	for _, pkg := range packages {
		alias := aliases[pkg]
		if alias == "" {
			alias = DefaultAlias(pkg)
		}
		alias = strings.ReplaceAll(alias, "$", "$$")
		name := regexp.QuoteMeta(pkg)
		rules = append(rules,
			aliasRule{regexp.MustCompile(`(\bfrom\s+)(['"])(?:\.\./)+` + name + `(['"])`), "${1}${2}" + alias + "${3}"},
			aliasRule{regexp.MustCompile(`(\bfrom\s+)(['"])(?:\.\./)+` + name + `/([^'"]+)(['"])`), "${1}${2}" + alias + "/${3}${4}"},
			aliasRule{regexp.MustCompile(`(\bfrom\s+)(['"])\./` + name + `(['"])`), "${1}${2}" + alias + "${3}"},
			aliasRule{regexp.MustCompile(`(\bfrom\s+)(['"])\./` + name + `/([^'"]+)(['"])`), "${1}${2}" + alias + "/${3}${4}"},
			aliasRule{regexp.MustCompile(`(\brequire\(\s*)(['"])(?:\.\./)+` + name + `(['"])`), "${1}${2}" + alias + "${3}"},
			aliasRule{regexp.MustCompile(`(\brequire\(\s*)(['"])(?:\.\./)+` + name + `/([^'"]+)(['"])`), "${1}${2}" + alias + "/${3}${4}"},
		)
	}
	return &AliasConverter{rules: rules}
}

// DefaultAlias returns the alias used for pkg when none is configured
func DefaultAlias(pkg string) string {
	return "@" + pkg
}

func (c *AliasConverter) Name() string {
	return PassAlias
}

// Rewrite applies every rule in order; the file location is not used.
func (c *AliasConverter) Rewrite(_ *SourceFile, content string) (string, bool) {
	result := c.Convert(content)
	return result, result != content
}

// Convert returns content with relative package imports replaced by aliases
func (c *AliasConverter) Convert(content string) string {
	for _, rule := range c.rules {
		content = rule.pattern.ReplaceAllString(content, rule.replacement)
	}
	return content
}
