package cmd

import (
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/strata/internal/scan"
)

var scanSelect string

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Scan a dataset tree against the scheme",
	Long: `Scan walks a directory, parses every file path under the active
scheme, and prints one JSON object per conforming file. Non-conforming
paths are reported on stderr. --select filters entries with a JSONPath
expression evaluated against {"path": ..., "attrs": {...}}.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, err := loadConvention()
		if err != nil {
			return err
		}
		log := newLogger()

		res, err := scan.Tree(osfs.New(args[0]), conv, log)
		if err != nil {
			return err
		}

		entries := res.Entries
		if scanSelect != "" {
			entries, err = scan.Select(entries, scanSelect)
			if err != nil {
				return err
			}
		}
		for _, e := range entries {
			attrs := make(map[string]any, len(e.Attrs))
			for k, v := range e.Attrs {
				attrs[k] = v
			}
			fmt.Println(oj.JSON(map[string]any{"path": e.Path, "attrs": attrs}, &oj.Options{Sort: true}))
		}

		for _, k := range res.Coverage.Keys() {
			log.Debug().
				Str("key", k).
				Int("count", res.Coverage.Count(k)).
				Int("cardinality", res.Coverage.Cardinality(k)).
				Bool("universal", res.Coverage.Universal(k)).
				Msg("coverage")
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanSelect, "select", "", "JSONPath filter over scanned entries")
	rootCmd.AddCommand(scanCmd)
}
