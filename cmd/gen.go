package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var genStdin bool

var genCmd = &cobra.Command{
	Use:   "gen [key=value ...]",
	Short: "Generate a path from attributes",
	Long: `Gen serializes attributes into a path under the active scheme.
Attributes are given as key=value arguments, or as a JSON object on
stdin with --stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, err := loadConvention()
		if err != nil {
			return err
		}

		attrs := make(map[string]string)
		if genStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			v, err := oj.Parse(data)
			if err != nil {
				return fmt.Errorf("parse attributes: %w", err)
			}
			obj, ok := v.(map[string]any)
			if !ok {
				return fmt.Errorf("attributes must be a JSON object, got %T", v)
			}
			for k, raw := range obj {
				s, ok := raw.(string)
				if !ok {
					return fmt.Errorf("attribute %q must be a string, got %T", k, raw)
				}
				attrs[k] = s
			}
		}
		for _, arg := range args {
			k, v, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("attribute %q is not key=value", arg)
			}
			attrs[k] = v
		}

		p, err := conv.GenPath(attrs)
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	},
}

func init() {
	genCmd.Flags().BoolVar(&genStdin, "stdin", false, "Read a JSON attribute object from stdin")
	rootCmd.AddCommand(genCmd)
}
