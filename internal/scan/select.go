package scan

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Select keeps the entries for which the JSONPath expression matches at
// least one value. Each entry is presented to the expression as
// {"path": ..., "attrs": {...}}, so "attrs.ses" keeps entries that have
// a session and "$[?(@.modality == 'anat')]" filters on value.
func Select(entries []Entry, selector string) ([]Entry, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath %q: %w", selector, err)
	}
	var out []Entry
	for _, e := range entries {
		if len(x.Get(e.doc())) > 0 {
			out = append(out, e)
		}
	}
	return out, nil
}

// doc converts an entry to the generic shape ojg evaluates against.
func (e Entry) doc() any {
	attrs := make(map[string]any, len(e.Attrs))
	for k, v := range e.Attrs {
		attrs[k] = v
	}
	return map[string]any{"path": e.Path, "attrs": attrs}
}
