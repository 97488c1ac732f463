package convention

import "fmt"

// ConfigError reports a structurally invalid convention definition.
// It is returned at compile time and never recovered internally.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "convention config: " + e.Reason
}

func configErrf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// MissingAttributeError reports a required attribute with no value
// during path generation.
type MissingAttributeError struct {
	Key string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("missing required attribute %q", e.Key)
}

// ParseError reports a path that does not conform to the convention.
// Level is the index of the level the parser was aligning when it
// failed; Token is the offending path component, if any.
type ParseError struct {
	Level  int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("parse path: %s %q at level %d", e.Reason, e.Token, e.Level)
	}
	return fmt.Sprintf("parse path: %s at level %d", e.Reason, e.Level)
}
