package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [path]",
	Short: "Recover attributes from a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, err := loadConvention()
		if err != nil {
			return err
		}
		attrs, err := conv.IntoAttributes(args[0])
		if err != nil {
			return err
		}
		out := make(map[string]any, len(attrs))
		for k, v := range attrs {
			out[k] = v
		}
		fmt.Println(oj.JSON(out, &oj.Options{Sort: true}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
