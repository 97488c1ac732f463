// Package convention compiles a declarative api.Scheme into an
// immutable Convention and implements the bidirectional codec between
// attribute mappings and path strings.
//
// A compiled Convention performs no I/O and holds no mutable state, so
// a single instance is safe for any number of concurrent GenPath and
// IntoAttributes calls.
package convention

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agentic-research/strata/api"
)

// DefaultJoin separates components within a level unless the scheme
// overrides it.
const DefaultJoin = "_"

// Field is one resolved attribute occurrence within a level.
type Field struct {
	Key      string
	Prefix   string // "" for value-only fields
	Required bool
}

// Terminal is a value-only occurrence attached at the end of the
// filename level by its own joiner.
type Terminal struct {
	Key      string
	Join     string
	Required bool
}

// Level is one compiled path segment: ordered fields plus optional
// terminals.
type Level struct {
	Name      string
	Join      string
	Fields    []Field
	Terminals []Terminal
}

// skippable reports whether a generated path may omit this level
// entirely, which is the case when nothing in it is required.
func (l Level) skippable() bool {
	for _, f := range l.Fields {
		if f.Required {
			return false
		}
	}
	for _, t := range l.Terminals {
		if t.Required {
			return false
		}
	}
	return true
}

// Convention is a compiled naming convention. Immutable after Compile.
type Convention struct {
	root   string
	levels []Level
	keys   []string // sorted unique attribute keys
}

// Compile validates a Scheme and resolves its attribute references
// into a Convention. All validation failures are *ConfigError.
func Compile(s *api.Scheme) (*Convention, error) {
	if len(s.Levels) == 0 {
		return nil, configErrf("scheme has no levels")
	}

	atts := make(map[string]api.AttributeSpec, len(s.Attributes))
	for _, a := range s.Attributes {
		if a.Key == "" {
			return nil, configErrf("attribute with empty key")
		}
		if _, dup := atts[a.Key]; dup {
			return nil, configErrf("duplicate attribute key %q", a.Key)
		}
		atts[a.Key] = a
	}

	levels := make([]Level, 0, len(s.Levels))
	for i, ls := range s.Levels {
		lvl := Level{Name: ls.Name, Join: ls.Join}
		if lvl.Join == "" {
			lvl.Join = DefaultJoin
		}
		for _, key := range ls.Fields {
			a, ok := atts[key]
			if !ok {
				return nil, configErrf("level %q references unknown attribute %q", levelName(ls.Name, i), key)
			}
			lvl.Fields = append(lvl.Fields, Field{
				Key:      a.Key,
				Prefix:   effectivePrefix(a),
				Required: a.Required,
			})
		}
		for _, ts := range ls.Terminals {
			if i != len(s.Levels)-1 {
				return nil, configErrf("level %q declares terminal %q outside the filename level", levelName(ls.Name, i), ts.Key)
			}
			a, ok := atts[ts.Key]
			if !ok {
				return nil, configErrf("terminal references unknown attribute %q", ts.Key)
			}
			join := ts.Join
			if join == "" {
				join = DefaultJoin
			}
			lvl.Terminals = append(lvl.Terminals, Terminal{
				Key:      a.Key,
				Join:     join,
				Required: a.Required,
			})
		}
		levels = append(levels, lvl)
	}

	keys := make([]string, 0, len(atts))
	for k := range atts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := &Convention{root: strings.TrimSuffix(s.Root, "/"), levels: levels, keys: keys}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// effectivePrefix resolves the emitted prefix for an attribute:
// explicit prefix wins, value-only means none, otherwise "<key>-".
func effectivePrefix(a api.AttributeSpec) string {
	if a.ValueOnly {
		return ""
	}
	if a.Prefix != "" {
		return a.Prefix
	}
	return a.Key + "-"
}

func levelName(name string, idx int) string {
	if name != "" {
		return name
	}
	return "#" + strconv.Itoa(idx)
}

// validate enforces the construction-time invariants that keep parsing
// unambiguous.
func (c *Convention) validate() error {
	for i, lvl := range c.levels {
		if len(lvl.Fields)+len(lvl.Terminals) == 0 {
			return configErrf("level %q has no fields", levelName(lvl.Name, i))
		}
		prefixes := make(map[string]string, len(lvl.Fields))
		valueOnly := -1
		for fi, f := range lvl.Fields {
			if f.Prefix == "" {
				if valueOnly >= 0 {
					return configErrf("level %q has more than one value-only field", levelName(lvl.Name, i))
				}
				valueOnly = fi
				continue
			}
			if other, dup := prefixes[f.Prefix]; dup {
				return configErrf("level %q: fields %q and %q share prefix %q", levelName(lvl.Name, i), other, f.Key, f.Prefix)
			}
			prefixes[f.Prefix] = f.Key
		}
		// A value-only field swallows whatever token reaches it, so any
		// prefixed field after it could never be matched.
		if valueOnly >= 0 && valueOnly != len(lvl.Fields)-1 {
			return configErrf("level %q: value-only field %q must be last", levelName(lvl.Name, i), lvl.Fields[valueOnly].Key)
		}
	}
	// A skippable level may be omitted from a generated path, so no
	// segment generated for a later level may also parse at it: the
	// alignment in IntoAttributes would claim the segment for the
	// earlier level and silently misattribute its values. Only levels
	// up to and including the next non-skippable one can ever be
	// tested against the skippable slot, so the scan stops there.
	for i, lvl := range c.levels {
		if !lvl.skippable() {
			continue
		}
		for j := i + 1; j < len(c.levels); j++ {
			if shadows(lvl, c.levels[j]) {
				return configErrf("optional level %q is ambiguous with level %q: segments of the latter also parse as the former",
					levelName(lvl.Name, i), levelName(c.levels[j].Name, j))
			}
			if !c.levels[j].skippable() {
				break
			}
		}
	}
	return nil
}

// shadows reports whether a segment generated for level b would also
// parse at level a regardless of attribute values. The check is
// structural: a prefixed slot claims a token only when the slot's
// prefix is a prefix of the token's emitted prefix, and a value-only
// slot claims any token. Collisions that depend on a particular value
// (a value that happens to start with another level's prefix) are left
// to the parser.
func shadows(a, b Level) bool {
	var req []string
	for _, f := range b.Fields {
		if f.Required {
			req = append(req, f.Prefix)
		}
	}
	for _, t := range b.Terminals {
		if t.Required && t.Join == b.Join {
			req = append(req, "")
		}
	}
	if len(req) > 0 {
		return claims(a, req)
	}
	// Entirely optional level: any single field may form the whole
	// segment on its own.
	for _, f := range b.Fields {
		if claims(a, []string{f.Prefix}) {
			return true
		}
	}
	for _, t := range b.Terminals {
		if t.Join == b.Join && claims(a, []string{""}) {
			return true
		}
	}
	return false
}

// claims mirrors the slot matching of parseLevel over the emitted
// prefixes of a candidate segment's tokens.
func claims(lvl Level, tokenPrefixes []string) bool {
	slots := make([]slot, 0, len(lvl.Fields)+len(lvl.Terminals))
	for _, f := range lvl.Fields {
		slots = append(slots, slot{key: f.Key, prefix: f.Prefix})
	}
	for _, t := range lvl.Terminals {
		if t.Join == lvl.Join {
			slots = append(slots, slot{key: t.Key})
		}
	}
	si := 0
	for _, p := range tokenPrefixes {
		best, fallback := -1, -1
		for k := si; k < len(slots); k++ {
			s := slots[k]
			if s.prefix == "" {
				if fallback == -1 {
					fallback = k
				}
				continue
			}
			if p != "" && strings.HasPrefix(p, s.prefix) && (best == -1 || len(s.prefix) > len(slots[best].prefix)) {
				best = k
			}
		}
		if best == -1 {
			best = fallback
		}
		if best == -1 {
			return false
		}
		si = best + 1
	}
	return true
}

// Root returns the path prefix prepended to generated paths, without a
// trailing slash. Empty when the convention is root-relative.
func (c *Convention) Root() string { return c.root }

// NumLevels returns the number of levels, the last being the filename.
func (c *Convention) NumLevels() int { return len(c.levels) }

// FieldsForLevel returns the ordered fields of one level.
func (c *Convention) FieldsForLevel(i int) ([]Field, error) {
	if i < 0 || i >= len(c.levels) {
		return nil, configErrf("unknown level %d", i)
	}
	return c.levels[i].Fields, nil
}

// AllKeys returns every attribute key the convention declares, sorted.
func (c *Convention) AllKeys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// HasKey reports whether the convention declares key.
func (c *Convention) HasKey(key string) bool {
	n := sort.SearchStrings(c.keys, key)
	return n < len(c.keys) && c.keys[n] == key
}
