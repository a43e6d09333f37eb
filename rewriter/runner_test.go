package rewriter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// sourceTree is a set of files keyed by slash separated path relative to the root
type sourceTree map[string]string

func (s sourceTree) write(t *testing.T, root string) {
	t.Helper()
	for rel, content := range s {
		location := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0644))
	}
}

func readTree(t *testing.T, root string, paths ...string) sourceTree {
	t.Helper()
	result := sourceTree{}
	for _, rel := range paths {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		require.NoError(t, err)
		result[rel] = string(data)
	}
	return result
}

var movedTree = sourceTree{
	"index.ts":                 "import { A } from '../../constants';\n",
	"routes/v1/users.ts":       "import { X } from '../../../constants';\nimport { S } from '../../../schemas/user';\n",
	"routes/plain.ts":          "import { h } from '../lib/helpers';\n",
	"routes/ok.ts":             "import { U } from '../utils';\n",
	"node_modules/m/x.ts":      "import { X } from '../../../constants';\n",
	"routes/readme.md":         "from '../../../constants'\n",
	"services/user.service.ts": "const t = require('./types');\n",
}

func TestRunner_Depth(t *testing.T) {
	root := t.TempDir()
	movedTree.write(t, root)

	cfg := DefaultConfig()
	cfg.Root = root
	require.NoError(t, cfg.Validate())

	out := &bytes.Buffer{}
	report, err := NewRunner(cfg, NewDepthNormalizer(cfg.Packages), out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Fixed: index.ts\nFixed: routes/v1/users.ts\n\nTotal files fixed: 2\n", out.String())
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, PassDepth, report.Pass)
	assert.Equal(t, "routes/v1/users.ts", report.Fixed[1].Path)
	assert.Equal(t, 2, report.Fixed[1].Depth)
	assert.NotEqual(t, report.Fixed[1].Before, report.Fixed[1].After)

	actual := readTree(t, root, "index.ts", "routes/v1/users.ts", "routes/plain.ts", "routes/ok.ts", "node_modules/m/x.ts", "routes/readme.md")
	assert.Equal(t, sourceTree{
		"index.ts":            "import { A } from './constants';\n",
		"routes/v1/users.ts":  "import { X } from '../../constants';\nimport { S } from '../../schemas/user';\n",
		"routes/plain.ts":     "import { h } from '../lib/helpers';\n",
		"routes/ok.ts":        "import { U } from '../utils';\n",
		"node_modules/m/x.ts": "import { X } from '../../../constants';\n",
		"routes/readme.md":    "from '../../../constants'\n",
	}, actual)

	out.Reset()
	report, err = NewRunner(cfg, NewDepthNormalizer(cfg.Packages), out).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, "\nTotal files fixed: 0\n", out.String())
}

func TestRunner_Alias(t *testing.T) {
	root := t.TempDir()
	movedTree.write(t, root)

	cfg := DefaultConfig()
	cfg.Root = root
	require.NoError(t, cfg.Validate())

	out := &bytes.Buffer{}
	report, err := NewRunner(cfg, NewAliasConverter(cfg.Packages, cfg.Aliases), out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Fixed: index.ts\nFixed: routes/ok.ts\nFixed: routes/v1/users.ts\n\nTotal files updated: 3\n", out.String())
	assert.Equal(t, 3, report.Total)
	actual := readTree(t, root, "routes/v1/users.ts", "services/user.service.ts")
	assert.Equal(t, "import { X } from '@constants';\nimport { S } from '@schemas/user';\n", actual["routes/v1/users.ts"])
	assert.Equal(t, "const t = require('./types');\n", actual["services/user.service.ts"])
}

func TestRunner_DryRunWithReport(t *testing.T) {
	root := t.TempDir()
	movedTree.write(t, root)

	cfg := DefaultConfig()
	cfg.Root = root
	cfg.DryRun = true
	cfg.Report = filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, cfg.Validate())

	out := &bytes.Buffer{}
	_, err := NewRunner(cfg, NewDepthNormalizer(cfg.Packages), out).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Would fix: index.ts\nWould fix: routes/v1/users.ts\n\nTotal files fixed: 2\n", out.String())
	assert.Equal(t, movedTree["routes/v1/users.ts"], readTree(t, root, "routes/v1/users.ts")["routes/v1/users.ts"])

	data, err := os.ReadFile(cfg.Report)
	require.NoError(t, err)
	report := &Report{}
	require.NoError(t, yaml.Unmarshal(data, report))
	assert.Equal(t, PassDepth, report.Pass)
	assert.True(t, report.DryRun)
	assert.Equal(t, 2, report.Total)
	require.Len(t, report.Fixed, 2)
	assert.Equal(t, "index.ts", report.Fixed[0].Path)
	digest, err := Digest(movedTree["index.ts"])
	require.NoError(t, err)
	assert.Equal(t, digest, report.Fixed[0].Before)
}

func TestRunner_SkipsExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	sourceTree{
		"routes/v1/u.ts": "import { X } from '../../../constants';\n",
	}.write(t, root)
	pkgDir := filepath.Join(root, "node_modules", "pkg")
	require.NoError(t, os.MkdirAll(pkgDir, 0755))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.js"), filepath.Join(pkgDir, "dangling.js")))

	cfg := DefaultConfig()
	cfg.Root = root
	require.NoError(t, cfg.Validate())

	out := &bytes.Buffer{}
	report, err := NewRunner(cfg, NewDepthNormalizer(cfg.Packages), out).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, "Fixed: routes/v1/u.ts\n\nTotal files fixed: 1\n", out.String())
	assert.Equal(t, "import { X } from '../../constants';\n", readTree(t, root, "routes/v1/u.ts")["routes/v1/u.ts"])
}

func TestRunner_Extensions(t *testing.T) {
	root := t.TempDir()
	sourceTree{
		"a/view.tsx": "import { X } from '../../constants';\n",
		"a/model.ts": "import { X } from '../../constants';\n",
	}.write(t, root)

	cfg := DefaultConfig()
	cfg.Root = root
	cfg.Extensions = []string{"tsx"}
	require.NoError(t, cfg.Validate())

	out := &bytes.Buffer{}
	report, err := NewRunner(cfg, NewDepthNormalizer(cfg.Packages), out).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Total)
	assert.Equal(t, "a/view.tsx", report.Fixed[0].Path)
}
