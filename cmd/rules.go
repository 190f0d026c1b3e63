package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dnlab/dncheck"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the inference rule codes the checker accepts",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tREFS\tAPPLIES TO\tSUMMARY")
		for _, rule := range dncheck.Rules() {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", rule.Code, rule.Arity, rule.Polarity, rule.Summary)
		}
		_ = w.Flush()
	},
}
