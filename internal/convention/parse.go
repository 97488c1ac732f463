package convention

import "strings"

// IntoAttributes parses a path generated by this convention back into
// its attribute mapping. It is the structural inverse of GenPath:
// parsing a generated path reconstructs exactly the attributes that
// contributed to it.
//
// The path is split on "/" and segments are aligned against the
// convention's levels left to right. When the path has fewer segments
// than the convention has levels, levels whose content is entirely
// optional may be skipped; any other depth mismatch is a *ParseError.
// Optional attributes absent from the path are absent from the result,
// never present with an empty value.
func (c *Convention) IntoAttributes(path string) (map[string]string, error) {
	p := path
	if c.root != "" {
		p = strings.TrimPrefix(p, c.root+"/")
	}
	segs := strings.Split(p, "/")

	if len(segs) > len(c.levels) {
		return nil, &ParseError{Level: len(c.levels), Token: segs[len(c.levels)], Reason: "unexpected path depth"}
	}
	skip := len(c.levels) - len(segs)

	attrs := make(map[string]string)
	li := 0
	for _, seg := range segs {
		var lastErr *ParseError
		matched := false
		for li < len(c.levels) {
			lvl := c.levels[li]
			got, err := parseLevel(li, lvl, seg)
			if err == nil {
				if mergeErr := mergeAttrs(attrs, got, li); mergeErr != nil {
					return nil, mergeErr
				}
				li++
				matched = true
				break
			}
			lastErr = err
			// An optional level may simply be absent from the path.
			if skip > 0 && lvl.skippable() {
				skip--
				li++
				continue
			}
			return nil, err
		}
		if !matched {
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, &ParseError{Level: li, Token: seg, Reason: "unexpected path depth"}
		}
	}
	for ; li < len(c.levels); li++ {
		if !c.levels[li].skippable() {
			return nil, &ParseError{Level: li, Reason: "unexpected path depth"}
		}
	}
	return attrs, nil
}

// mergeAttrs folds one level's attributes into the accumulated map.
// An attribute that occurs at several levels (a BIDS subject appears in
// both a directory and the filename) must carry the same value at each
// occurrence.
func mergeAttrs(dst, src map[string]string, level int) *ParseError {
	for k, v := range src {
		if prev, ok := dst[k]; ok && prev != v {
			return &ParseError{Level: level, Token: v, Reason: "conflicting values for attribute " + k}
		}
		dst[k] = v
	}
	return nil
}

// slot is one token destination during level parsing: a field, or a
// terminal that shares the level's joiner and therefore arrives as a
// trailing token.
type slot struct {
	key    string
	prefix string // "" absorbs the token verbatim
}

// parseLevel matches one path segment against one level.
//
// Terminals attached by a joiner other than the level's are peeled off
// the right edge first (an extension after "."). The remainder is
// split on the level joiner and the tokens are claimed left to right:
// among the not-yet-passed slots, the longest matching prefix wins,
// with declaration order breaking ties; a value-only slot takes the
// token verbatim when no prefix matches. A token nothing can claim is
// a *ParseError.
func parseLevel(idx int, lvl Level, seg string) (map[string]string, *ParseError) {
	attrs := make(map[string]string)

	rest := seg
	for i := len(lvl.Terminals) - 1; i >= 0; i-- {
		t := lvl.Terminals[i]
		if t.Join == lvl.Join {
			continue
		}
		if j := strings.LastIndex(rest, t.Join); j >= 0 {
			attrs[t.Key] = rest[j+len(t.Join):]
			rest = rest[:j]
		}
	}

	slots := make([]slot, 0, len(lvl.Fields)+len(lvl.Terminals))
	for _, f := range lvl.Fields {
		slots = append(slots, slot{key: f.Key, prefix: f.Prefix})
	}
	for _, t := range lvl.Terminals {
		if t.Join == lvl.Join {
			slots = append(slots, slot{key: t.Key})
		}
	}

	var tokens []string
	if rest != "" {
		tokens = strings.Split(rest, lvl.Join)
	}

	si := 0
	for _, tok := range tokens {
		best, fallback := -1, -1
		for k := si; k < len(slots); k++ {
			s := slots[k]
			if s.prefix == "" {
				if fallback == -1 {
					fallback = k
				}
				continue
			}
			if strings.HasPrefix(tok, s.prefix) && (best == -1 || len(s.prefix) > len(slots[best].prefix)) {
				best = k
			}
		}
		if best == -1 {
			best = fallback
		}
		if best == -1 {
			return nil, &ParseError{Level: idx, Token: tok, Reason: "unrecognized component"}
		}
		attrs[slots[best].key] = strings.TrimPrefix(tok, slots[best].prefix)
		si = best + 1
	}
	return attrs, nil
}
