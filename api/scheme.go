package api

// Scheme is the declarative definition of a naming convention.
// It maps named attributes onto the segments of a hierarchical path.
// A Scheme is plain data: it can be embedded in code or decoded from
// JSON, YAML, or HCL, and is compiled into an immutable engine by
// internal/convention.
type Scheme struct {
	// Version of the strata scheme format.
	Version string `json:"version,omitempty" yaml:"version,omitempty" hcl:"version,optional"`
	// Root is an optional path prefix prepended to every generated path
	// and stripped before parsing.
	Root string `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	// Attributes declares every attribute the convention knows about.
	// Keys must be unique; levels reference attributes by key.
	Attributes []AttributeSpec `json:"attributes" yaml:"attributes" hcl:"attribute,block"`
	// Levels are the path segments in order. The last level names the
	// file; all preceding levels name directories.
	Levels []LevelSpec `json:"levels" yaml:"levels" hcl:"level,block"`
}

// AttributeSpec declares one named attribute slot.
type AttributeSpec struct {
	// Key identifies the attribute (e.g. "sub", "ses", "suffix").
	Key string `json:"key" yaml:"key" hcl:"key,label"`
	// Prefix is the literal emitted before the value in a path component
	// (e.g. "sub-"). Empty means "<key>-" unless ValueOnly is set.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty" hcl:"prefix,optional"`
	// ValueOnly emits the bare value with no prefix. Value-only
	// attributes absorb an unmatched token when parsing.
	ValueOnly bool `json:"value_only,omitempty" yaml:"value_only,omitempty" hcl:"value_only,optional"`
	// Required makes omission during generation an error.
	Required bool `json:"required,omitempty" yaml:"required,omitempty" hcl:"required,optional"`
}

// LevelSpec describes one path segment as an ordered list of attribute
// references.
type LevelSpec struct {
	// Name of the level, used in diagnostics.
	Name string `json:"name" yaml:"name" hcl:"name,label"`
	// Join separates components within the segment. Default "_".
	Join string `json:"join,omitempty" yaml:"join,omitempty" hcl:"join,optional"`
	// Fields are attribute keys in emission order.
	Fields []string `json:"fields" yaml:"fields" hcl:"fields,optional"`
	// Terminals attach after the fields with their own joiner
	// (e.g. "_" before a suffix, "." before an extension). Only the
	// final (filename) level may declare terminals.
	Terminals []TerminalSpec `json:"terminals,omitempty" yaml:"terminals,omitempty" hcl:"terminal,block"`
}

// TerminalSpec references an attribute emitted at the end of the
// filename with a dedicated joiner. Terminal values are always emitted
// bare, so the referenced attribute should be value-only.
type TerminalSpec struct {
	Key string `json:"key" yaml:"key" hcl:"key,label"`
	// Join emitted before the value. Default "_".
	Join string `json:"join,omitempty" yaml:"join,omitempty" hcl:"join,optional"`
}
