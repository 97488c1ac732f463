// Package bids provides the built-in BIDS naming scheme
// (sub-XX/ses-YY/<modality>/sub-XX_ses-YY_..._<suffix>).
package bids

import (
	"github.com/agentic-research/strata/api"
	"github.com/agentic-research/strata/internal/convention"
)

// entity keys that appear between subject/session and the suffix, in
// emission order. All optional.
var entities = []string{"task", "acq", "ce", "rec", "run", "dir", "echo", "part"}

// Scheme returns the declarative BIDS layout.
func Scheme() *api.Scheme {
	atts := []api.AttributeSpec{
		{Key: "sub", Required: true},
		{Key: "ses"},
		{Key: "modality", ValueOnly: true, Required: true},
	}
	for _, e := range entities {
		atts = append(atts, api.AttributeSpec{Key: e})
	}
	atts = append(atts, api.AttributeSpec{Key: "suffix", ValueOnly: true, Required: true})

	fname := append([]string{"sub", "ses"}, entities...)
	return &api.Scheme{
		Version:    "v1",
		Attributes: atts,
		Levels: []api.LevelSpec{
			{Name: "subject", Fields: []string{"sub"}},
			{Name: "session", Fields: []string{"ses"}},
			{Name: "modality", Fields: []string{"modality"}},
			{Name: "file", Fields: fname, Terminals: []api.TerminalSpec{{Key: "suffix"}}},
		},
	}
}

// Convention compiles the BIDS scheme. The layout is static, so a
// compile failure is a programming error; it is surfaced anyway to
// keep call sites uniform with user-supplied schemes.
func Convention() (*convention.Convention, error) {
	return convention.Compile(Scheme())
}
