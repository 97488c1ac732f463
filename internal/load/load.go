// Package load reads declarative scheme files. The on-disk format is
// picked by extension: JSON, YAML, or HCL. Every format decodes into
// the same api.Scheme and goes through the same compilation, so
// structural validation does not depend on how the scheme was written.
package load

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v3"

	"github.com/agentic-research/strata/api"
	"github.com/agentic-research/strata/internal/convention"
)

// Scheme decodes a scheme file without compiling it.
func Scheme(path string) (*api.Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scheme %s: %w", path, err)
	}
	var s api.Scheme
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode scheme %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode scheme %s: %w", path, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(path, data, nil, &s); err != nil {
			return nil, fmt.Errorf("decode scheme %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported scheme format %q (want .json, .yaml, or .hcl)", ext)
	}
	return &s, nil
}

// File decodes and compiles a scheme file.
func File(path string) (*convention.Convention, error) {
	s, err := Scheme(path)
	if err != nil {
		return nil, err
	}
	return convention.Compile(s)
}
