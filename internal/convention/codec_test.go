package convention

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileTest(t *testing.T) *Convention {
	t.Helper()
	conv, err := Compile(testScheme())
	require.NoError(t, err)
	return conv
}

func TestGenPath(t *testing.T) {
	conv := compileTest(t)

	p, err := conv.GenPath(map[string]string{
		"sub": "01", "ses": "pre", "modality": "anat", "suffix": "T1w",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-01/ses-pre/anat/sub-01_ses-pre_T1w", p)
}

func TestGenPath_MissingRequired(t *testing.T) {
	conv := compileTest(t)

	_, err := conv.GenPath(map[string]string{"ses": "pre"})
	var missing *MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "sub", missing.Key)
}

func TestGenPath_OptionalOmitted(t *testing.T) {
	conv := compileTest(t)

	p, err := conv.GenPath(map[string]string{
		"sub": "01", "modality": "anat", "suffix": "T1w",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-01/anat/sub-01_T1w", p)

	attrs, err := conv.IntoAttributes(p)
	require.NoError(t, err)
	assert.NotContains(t, attrs, "ses")
	assert.Equal(t, "01", attrs["sub"])
}

func TestGenPath_UnknownKeysIgnored(t *testing.T) {
	conv := compileTest(t)

	p, err := conv.GenPath(map[string]string{
		"sub": "01", "ses": "pre", "modality": "anat", "suffix": "T1w",
		"pencils": "5", "desc": "extra metadata",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-01/ses-pre/anat/sub-01_ses-pre_T1w", p)
}

func TestGenPath_Deterministic(t *testing.T) {
	conv := compileTest(t)

	// Same content, built in different insertion orders.
	a := map[string]string{}
	for _, kv := range [][2]string{{"sub", "01"}, {"ses", "pre"}, {"modality", "anat"}, {"suffix", "T1w"}} {
		a[kv[0]] = kv[1]
	}
	b := map[string]string{}
	for _, kv := range [][2]string{{"suffix", "T1w"}, {"modality", "anat"}, {"ses", "pre"}, {"sub", "01"}} {
		b[kv[0]] = kv[1]
	}

	pa, err := conv.GenPath(a)
	require.NoError(t, err)
	pb, err := conv.GenPath(b)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestIntoAttributes(t *testing.T) {
	conv := compileTest(t)

	attrs, err := conv.IntoAttributes("sub-01/ses-pre/anat/sub-01_ses-pre_T1w")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"sub": "01", "ses": "pre", "modality": "anat", "suffix": "T1w",
	}, attrs)
}

func TestRoundTrip(t *testing.T) {
	conv := compileTest(t)

	cases := []map[string]string{
		{"sub": "01", "ses": "pre", "modality": "anat", "suffix": "T1w"},
		{"sub": "02", "modality": "func", "suffix": "bold"},
		{"sub": "x", "ses": "post", "modality": "fmap", "suffix": "phasediff"},
	}
	for _, attrs := range cases {
		p, err := conv.GenPath(attrs)
		require.NoError(t, err)
		back, err := conv.IntoAttributes(p)
		require.NoError(t, err)
		assert.Equal(t, attrs, back, "round trip of %q", p)
	}
}

// An explicitly empty segment aligns against the optional level and
// contributes nothing, same as omitting the level entirely.
func TestIntoAttributes_EmptySegment(t *testing.T) {
	conv := compileTest(t)

	attrs, err := conv.IntoAttributes("sub-01//anat/sub-01_T1w")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"sub": "01", "modality": "anat", "suffix": "T1w",
	}, attrs)
}

func TestIntoAttributes_BadDepth(t *testing.T) {
	conv := compileTest(t)

	// Filename missing entirely.
	_, err := conv.IntoAttributes("sub-01/ses-pre/anat")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Reason, "depth")

	// One directory level too many.
	_, err = conv.IntoAttributes("extra/sub-01/ses-pre/anat/sub-01_ses-pre_T1w")
	require.ErrorAs(t, err, &perr)
}

func TestIntoAttributes_UnrecognizedComponent(t *testing.T) {
	conv := compileTest(t)

	// Undeclared prefix at a directory level that cannot be skipped.
	_, err := conv.IntoAttributes("xx-01/ses-pre/anat/sub-01_ses-pre_T1w")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "xx-01", perr.Token)

	// Undeclared prefix in the filename: the free-form suffix absorbs
	// one stray token, the next one has nowhere to go.
	_, err = conv.IntoAttributes("sub-01/ses-pre/anat/sub-01_foo-3_T1w")
	require.ErrorAs(t, err, &perr)
}

func TestIntoAttributes_ConflictingOccurrences(t *testing.T) {
	conv := compileTest(t)

	_, err := conv.IntoAttributes("sub-01/ses-pre/anat/sub-02_ses-pre_T1w")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Reason, "conflicting")
}

func TestLongestPrefixWins(t *testing.T) {
	conv, err := NewBuilder("").
		PrefixedAttribute("rec", "r").
		PrefixedAttribute("run", "run-").
		OptionalValueAttribute("suffix").
		Fname("rec", "run").
		Suffix("suffix").
		Build()
	require.NoError(t, err)

	attrs, err := conv.IntoAttributes("rx_run-2_bold")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"rec": "x", "run": "2", "suffix": "bold"}, attrs)

	// "run-2" alone must land on the longer prefix even though "r"
	// also matches it.
	attrs, err = conv.IntoAttributes("run-2")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"run": "2"}, attrs)
}

func TestRootPrefix(t *testing.T) {
	conv, err := NewBuilder("/data/project").
		Attribute("sub").
		ValueAttribute("suffix").
		Level("sub").
		Fname("sub").
		Suffix("suffix").
		Build()
	require.NoError(t, err)

	p, err := conv.GenPath(map[string]string{"sub": "01", "suffix": "T1w"})
	require.NoError(t, err)
	assert.Equal(t, "/data/project/sub-01/sub-01_T1w", p)

	attrs, err := conv.IntoAttributes(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"sub": "01", "suffix": "T1w"}, attrs)
}

func TestExtensionTerminal(t *testing.T) {
	conv, err := NewBuilder("").
		Attribute("sub").
		ValueAttribute("suffix").
		OptionalValueAttribute("ext").
		Fname("sub").
		Suffix("suffix").
		Extension("ext").
		Build()
	require.NoError(t, err)

	p, err := conv.GenPath(map[string]string{"sub": "01", "suffix": "T1w", "ext": "nii.gz"})
	require.NoError(t, err)
	assert.Equal(t, "sub-01_T1w.nii.gz", p)

	// Values embedding the joiner are undefined behavior: "nii.gz"
	// contains the extension joiner, so only the last dot-component
	// comes back and the rest leaks into the suffix. Documented, not
	// guessed at.
	attrs, err := conv.IntoAttributes(p)
	require.NoError(t, err)
	assert.Equal(t, "gz", attrs["ext"])
	assert.Equal(t, "T1w.nii", attrs["suffix"])
}

// Values containing the level joiner cannot survive a round trip; the
// parser reports the stray token rather than guessing.
func TestJoinerInValueIsUndefined(t *testing.T) {
	conv := compileTest(t)

	p, err := conv.GenPath(map[string]string{
		"sub": "01", "ses": "pre", "modality": "anat", "suffix": "T1w_extra",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-01/ses-pre/anat/sub-01_ses-pre_T1w_extra", p)

	_, err = conv.IntoAttributes(p)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}
