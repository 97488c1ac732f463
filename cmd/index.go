package cmd

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/strata/internal/index"
	"github.com/agentic-research/strata/internal/scan"
)

var indexCmd = &cobra.Command{
	Use:   "index [dir] [out.db]",
	Short: "Build a SQLite attribute index from a dataset tree",
	Args:  cobra.ExactArgs(2),
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

		_ = os.Remove(args[1]) // rebuild from scratch
		writer, err := index.NewWriter(args[1])
		if err != nil {
			return err
		}
		for _, e := range res.Entries {
			if err := writer.Add(e); err != nil {
				_ = writer.Close()
				return err
			}
		}
		if err := writer.Close(); err != nil {
			return err
		}
		fmt.Printf("Indexed %d files into %s (%d non-conforming skipped).\n",
			len(res.Entries), args[1], len(res.Violations))
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query [index.db] [key] [value]",
	Short: "Look up indexed files by attribute value",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := index.Query(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(queryCmd)
}
