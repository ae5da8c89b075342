package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojslint/pkg/lint"
	_ "github.com/yaklabco/gojslint/pkg/lint/rules" // Register built-in rules
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		RunE: func(_ *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tFIXABLE\tDESCRIPTION")

			for _, id := range lint.DefaultRegistry.IDs() {
				rule, ok := lint.DefaultRegistry.Get(id)
				if !ok {
					continue
				}
				meta := rule.Meta()
				fixable := ""
				description := ""
				ruleType := ""
				if meta != nil {
					fixable = meta.Fixable
					description = meta.Docs.Description
					ruleType = string(meta.Type)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, ruleType, fixable, description)
			}
			return tw.Flush()
		},
	}
}
