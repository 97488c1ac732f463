// Package scan walks a dataset tree and parses every file path against
// a convention. The filesystem is abstracted behind billy.Filesystem so
// the same walker runs over the real disk and over an in-memory tree in
// tests.
package scan

import (
	"fmt"
	"path"
	"sort"

	billy "github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"

	"github.com/agentic-research/strata/internal/convention"
)

// Entry is one conforming file: its path relative to the scan root and
// the attributes recovered from it.
type Entry struct {
	Path  string            `json:"path"`
	Attrs map[string]string `json:"attrs"`
}

// Violation is one file whose path the convention could not parse.
type Violation struct {
	Path string
	Err  error
}

// Result bundles a completed scan.
type Result struct {
	Entries    []Entry
	Violations []Violation
	Coverage   *Coverage
}

// Tree walks fsys from its root and parses every regular file path with
// conv. Directories are not parsed on their own; only complete file
// paths are, since the convention describes the path down to the
// filename. Non-conforming paths are collected, not fatal: a dataset
// usually carries sidecar files outside the convention.
func Tree(fsys billy.Filesystem, conv *convention.Convention, log zerolog.Logger) (*Result, error) {
	res := &Result{}
	if err := walk(fsys, "", res, conv, log); err != nil {
		return nil, err
	}
	// ReadDir order is backend-dependent; pin the result order so scans
	// are reproducible.
	sort.Slice(res.Entries, func(i, j int) bool { return res.Entries[i].Path < res.Entries[j].Path })
	sort.Slice(res.Violations, func(i, j int) bool { return res.Violations[i].Path < res.Violations[j].Path })
	res.Coverage = buildCoverage(res.Entries)
	log.Info().
		Int("entries", len(res.Entries)).
		Int("violations", len(res.Violations)).
		Msg("scan complete")
	return res, nil
}

func walk(fsys billy.Filesystem, dir string, res *Result, conv *convention.Convention, log zerolog.Logger) error {
	name := dir
	if name == "" {
		name = "."
	}
	infos, err := fsys.ReadDir(name)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", name, err)
	}
	for _, fi := range infos {
		rel := path.Join(dir, fi.Name())
		if fi.IsDir() {
			if err := walk(fsys, rel, res, conv, log); err != nil {
				return err
			}
			continue
		}
		attrs, err := conv.IntoAttributes(rel)
		if err != nil {
			log.Warn().Str("path", rel).Err(err).Msg("path does not conform")
			res.Violations = append(res.Violations, Violation{Path: rel, Err: err})
			continue
		}
		res.Entries = append(res.Entries, Entry{Path: rel, Attrs: attrs})
	}
	return nil
}
