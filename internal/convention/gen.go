package convention

import "strings"

// GenPath serializes an attribute mapping into a path string.
//
// Levels are walked in convention order, fields within each level in
// declaration order, so the output never depends on map iteration
// order. A required field with no value fails with
// *MissingAttributeError; an optional one is skipped. Keys present in
// attrs but not declared by the convention are ignored, which lets
// callers pass along metadata that lives outside the path.
//
// A directory level whose fields are all absent is omitted from the
// path; that can only happen when everything in the level is optional.
func (c *Convention) GenPath(attrs map[string]string) (string, error) {
	segs := make([]string, 0, len(c.levels))
	for _, lvl := range c.levels {
		seg, err := genLevel(lvl, attrs)
		if err != nil {
			return "", err
		}
		if seg == "" {
			continue
		}
		segs = append(segs, seg)
	}
	p := strings.Join(segs, "/")
	if c.root != "" {
		p = c.root + "/" + p
	}
	return p, nil
}

func genLevel(lvl Level, attrs map[string]string) (string, error) {
	var parts []string
	for _, f := range lvl.Fields {
		v, ok := attrs[f.Key]
		if !ok {
			if f.Required {
				return "", &MissingAttributeError{Key: f.Key}
			}
			continue
		}
		parts = append(parts, f.Prefix+v)
	}
	seg := strings.Join(parts, lvl.Join)
	for _, t := range lvl.Terminals {
		v, ok := attrs[t.Key]
		if !ok {
			if t.Required {
				return "", &MissingAttributeError{Key: t.Key}
			}
			continue
		}
		if seg == "" {
			seg = v
		} else {
			seg += t.Join + v
		}
	}
	return seg, nil
}
