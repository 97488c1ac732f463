package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentic-research/strata/internal/load"
)

var checkCmd = &cobra.Command{
	Use:   "check [scheme-file]",
	Short: "Validate a scheme file",
	Long: `Check decodes and compiles a scheme file, reporting structural
problems (duplicate keys, ambiguous prefixes, empty levels) without
touching any data.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, err := load.File(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: ok (%d levels, attributes: %s)\n",
			args[0], conv.NumLevels(), strings.Join(conv.AllKeys(), ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
