package convention

import "github.com/agentic-research/strata/api"

// Builder assembles a Convention imperatively: declare attributes
// first, then lay out levels top-down and finish with the filename.
// Errors are deferred to Build so call sites can chain without
// checking each step.
type Builder struct {
	scheme    api.Scheme
	fnameDone bool
	err       error
}

// NewBuilder starts a convention rooted at root ("" for relative
// paths).
func NewBuilder(root string) *Builder {
	return &Builder{scheme: api.Scheme{Version: "v1", Root: root}}
}

// Attribute declares a required attribute emitted as "<key>-<value>".
func (b *Builder) Attribute(key string) *Builder {
	return b.attribute(api.AttributeSpec{Key: key, Required: true})
}

// OptionalAttribute declares an attribute that may be omitted.
func (b *Builder) OptionalAttribute(key string) *Builder {
	return b.attribute(api.AttributeSpec{Key: key})
}

// ValueAttribute declares a required attribute emitted bare, with no
// key prefix (a modality directory, a filename suffix).
func (b *Builder) ValueAttribute(key string) *Builder {
	return b.attribute(api.AttributeSpec{Key: key, ValueOnly: true, Required: true})
}

// OptionalValueAttribute declares an omissible bare attribute.
func (b *Builder) OptionalValueAttribute(key string) *Builder {
	return b.attribute(api.AttributeSpec{Key: key, ValueOnly: true})
}

// PrefixedAttribute declares a required attribute with an explicit
// prefix literal.
func (b *Builder) PrefixedAttribute(key, prefix string) *Builder {
	return b.attribute(api.AttributeSpec{Key: key, Prefix: prefix, Required: true})
}

func (b *Builder) attribute(a api.AttributeSpec) *Builder {
	if b.err != nil {
		return b
	}
	for _, prev := range b.scheme.Attributes {
		if prev.Key == a.Key {
			b.err = configErrf("attempted to overwrite attribute %q", a.Key)
			return b
		}
	}
	b.scheme.Attributes = append(b.scheme.Attributes, a)
	return b
}

// Level appends a directory level referencing the given attribute keys
// in order.
func (b *Builder) Level(keys ...string) *Builder {
	if b.err != nil {
		return b
	}
	if b.fnameDone {
		b.err = configErrf("attempted to add a level after the filename")
		return b
	}
	b.scheme.Levels = append(b.scheme.Levels, api.LevelSpec{Fields: keys})
	return b
}

// Fname defines the filename level and closes the layout; no further
// levels may be added.
func (b *Builder) Fname(keys ...string) *Builder {
	if b.err != nil {
		return b
	}
	if b.fnameDone {
		b.err = configErrf("attempted to define a second filename")
		return b
	}
	b.Level(keys...)
	b.fnameDone = true
	return b
}

// Suffix attaches a terminal attribute to the filename with the
// default joiner.
func (b *Builder) Suffix(key string) *Builder {
	return b.terminal(api.TerminalSpec{Key: key})
}

// Extension attaches a terminal attribute to the filename joined by
// ".".
func (b *Builder) Extension(key string) *Builder {
	return b.terminal(api.TerminalSpec{Key: key, Join: "."})
}

func (b *Builder) terminal(t api.TerminalSpec) *Builder {
	if b.err != nil {
		return b
	}
	if !b.fnameDone {
		b.err = configErrf("terminal %q declared before the filename", t.Key)
		return b
	}
	last := &b.scheme.Levels[len(b.scheme.Levels)-1]
	last.Terminals = append(last.Terminals, t)
	return b
}

// Scheme returns the declarative form accumulated so far.
func (b *Builder) Scheme() *api.Scheme {
	s := b.scheme
	return &s
}

// Build compiles the accumulated scheme. A convention without a
// filename level has no path target and is rejected.
func (b *Builder) Build() (*Convention, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.fnameDone {
		return nil, configErrf("no path target completed: define a filename")
	}
	return Compile(b.Scheme())
}
