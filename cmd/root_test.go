package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConvention_DefaultIsBIDS(t *testing.T) {
	schemePath = ""
	conv, err := loadConvention()
	require.NoError(t, err)

	p, err := conv.GenPath(map[string]string{
		"sub": "01", "ses": "pre", "modality": "anat", "suffix": "T1w",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-01/ses-pre/anat/sub-01_ses-pre_T1w", p)
}

func TestLoadConvention_SchemeFlag(t *testing.T) {
	scheme := `
attributes:
  - key: name
    required: true
  - key: kind
    value_only: true
    required: true
levels:
  - name: kind
    fields: [kind]
  - name: file
    fields: [name]
`
	p := filepath.Join(t.TempDir(), "scheme.yaml")
	require.NoError(t, os.WriteFile(p, []byte(scheme), 0o644))

	schemePath = p
	t.Cleanup(func() { schemePath = "" })

	conv, err := loadConvention()
	require.NoError(t, err)

	out, err := conv.GenPath(map[string]string{"name": "jen", "kind": "notes"})
	require.NoError(t, err)
	assert.Equal(t, "notes/name-jen", out)
}

func TestLoadConvention_BadScheme(t *testing.T) {
	p := filepath.Join(t.TempDir(), "scheme.yaml")
	require.NoError(t, os.WriteFile(p, []byte("attributes: {not: a list}"), 0o644))

	schemePath = p
	t.Cleanup(func() { schemePath = "" })

	_, err := loadConvention()
	require.Error(t, err)
}
