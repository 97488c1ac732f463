package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/strata/internal/convention"
	"github.com/agentic-research/strata/internal/index"
	"github.com/agentic-research/strata/internal/load"
	"github.com/agentic-research/strata/internal/scan"
)

// testFixture bundles the shared state for integration tests: a scheme
// file on disk, the compiled convention, and a dataset tree generated
// through the convention itself.
type testFixture struct {
	dataDir string
	conv    *convention.Convention
}

const testSchemeYAML = `
version: v1
attributes:
  - key: sub
    required: true
  - key: ses
  - key: task
  - key: modality
    value_only: true
    required: true
  - key: suffix
    value_only: true
    required: true
levels:
  - name: subject
    fields: [sub]
  - name: session
    fields: [ses]
  - name: modality
    fields: [modality]
  - name: file
    fields: [sub, ses, task]
    terminals:
      - key: suffix
`

var testSubjects = []map[string]string{
	{"sub": "01", "ses": "pre", "modality": "anat", "suffix": "T1w"},
	{"sub": "01", "ses": "post", "modality": "anat", "suffix": "T1w"},
	{"sub": "02", "modality": "func", "task": "rest", "suffix": "bold"},
	{"sub": "03", "ses": "pre", "modality": "func", "task": "nback", "suffix": "bold"},
}

// setup writes the scheme to disk, compiles it through the file
// loader, and materializes a dataset tree by generating a path for
// every attribute set.
func setup(t *testing.T) *testFixture {
	t.Helper()

	dir := t.TempDir()
	schemePath := filepath.Join(dir, "scheme.yaml")
	require.NoError(t, os.WriteFile(schemePath, []byte(testSchemeYAML), 0o644))

	conv, err := load.File(schemePath)
	require.NoError(t, err)

	dataDir := filepath.Join(dir, "data")
	for _, attrs := range testSubjects {
		p, err := conv.GenPath(attrs)
		require.NoError(t, err)
		full := filepath.Join(dataDir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("data"), 0o644))
	}
	// A sidecar outside the convention.
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "README"), []byte("hi"), 0o644))

	return &testFixture{dataDir: dataDir, conv: conv}
}

func TestScanRecoversGeneratedAttributes(t *testing.T) {
	fx := setup(t)

	res, err := scan.Tree(osfs.New(fx.dataDir), fx.conv, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, res.Entries, len(testSubjects))
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "README", res.Violations[0].Path)

	// Every generated attribute set comes back intact.
	recovered := make(map[string]map[string]string)
	for _, e := range res.Entries {
		recovered[e.Attrs["sub"]+"/"+e.Attrs["suffix"]+"/"+e.Attrs["ses"]] = e.Attrs
	}
	for _, want := range testSubjects {
		got, ok := recovered[want["sub"]+"/"+want["suffix"]+"/"+want["ses"]]
		require.True(t, ok, "missing %v", want)
		assert.Equal(t, want, got)
	}

	assert.True(t, res.Coverage.Universal("sub"))
	assert.Equal(t, 3, res.Coverage.Count("ses"))
	assert.Equal(t, 2, res.Coverage.Cardinality("task"))
}

func TestScanSelectAndIndex(t *testing.T) {
	fx := setup(t)

	res, err := scan.Tree(osfs.New(fx.dataDir), fx.conv, zerolog.Nop())
	require.NoError(t, err)

	rest, err := scan.Select(res.Entries, "$[?(@.task == 'rest')]")
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "02", rest[0].Attrs["sub"])

	dbPath := filepath.Join(t.TempDir(), "strata.db")
	w, err := index.NewWriter(dbPath)
	require.NoError(t, err)
	for _, e := range res.Entries {
		require.NoError(t, w.Add(e))
	}
	require.NoError(t, w.Close())

	paths, err := index.Query(dbPath, "modality", "func")
	require.NoError(t, err)
	require.Len(t, paths, 2)

	// Indexed paths parse back to the attributes they were stored with.
	attrs, err := fx.conv.IntoAttributes(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "func", attrs["modality"])
}
