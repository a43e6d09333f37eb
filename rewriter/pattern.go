package rewriter

import (
	"regexp"
	"strings"
)

// packageGroup returns an alternation matching any of the package names literally.
func packageGroup(packages []string) string {
	quoted := make([]string, 0, len(packages))
	for _, pkg := range packages {
		quoted = append(quoted, regexp.QuoteMeta(pkg))
	}
	return "(" + strings.Join(quoted, "|") + ")"
}

// replaceAllSubmatchFunc replaces every match of re in src with the value returned by repl,
// which receives the match and its submatches (unmatched optional groups are empty).
func replaceAllSubmatchFunc(re *regexp.Regexp, src string, repl func(groups []string) string) string {
	indexes := re.FindAllStringSubmatchIndex(src, -1)
	if len(indexes) == 0 {
		return src
	}
	var sb strings.Builder
	sb.Grow(len(src))
	last := 0
	for _, loc := range indexes {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if start, end := loc[2*i], loc[2*i+1]; start >= 0 {
				groups[i] = src[start:end]
			}
		}
		sb.WriteString(src[last:loc[0]])
		sb.WriteString(repl(groups))
		last = loc[1]
	}
	sb.WriteString(src[last:])
	return sb.String()
}
