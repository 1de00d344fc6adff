package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// coinsCmd 列出支持的币种
var coinsCmd = &cobra.Command{
	Use:   "coins",
	Short: "列出支持的币种和派生方案",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SYMBOL\tNAME\tCOIN TYPE\tCURVE\tDERIVATIONS")
		for _, c := range addressService.Coins(cmd.Context()) {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", c.Symbol, c.Name, c.CoinType, c.Curve, strings.Join(c.Derivations, ","))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(coinsCmd)
}
