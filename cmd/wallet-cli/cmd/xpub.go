package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	xpubCoin   string
	xpubChange uint32
	xpubIndex  uint32
	xpubCount  uint32
	xpubTo     string
)

// xpubCmd 扩展公钥相关操作: watch-only 地址派生和版本号转换
var xpubCmd = &cobra.Command{
	Use:   "xpub <extended-key>",
	Short: "用账户扩展公钥派生地址，或转换版本号",
	Long: `传入账户级扩展公钥 (xpub/ypub/zpub/Ltub/dgub)，按版本号选择地址类型，
派生 change/index 的地址。指定 --to 时只转换版本号，例如 xpub -> zpub。`,
	Args: cobra.ExactArgs(1),
	Example: `  wallet-cli xpub zpub6qeRC8... --coin BTC --count 5
  wallet-cli xpub xpub6CRVjH... --to zpub`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if xpubTo != "" {
			remapped, err := addressService.RemapExtended(cmd.Context(), args[0], xpubTo)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, remapped)
			return nil
		}

		symbol := xpubCoin
		if symbol == "" {
			symbol = cfg.Wallet.DefaultCoin
		}
		for i := uint32(0); i < xpubCount; i++ {
			addr, err := addressService.DeriveFromExtended(cmd.Context(), symbol, args[0], xpubChange, xpubIndex+i)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d/%d: %s\n", xpubChange, xpubIndex+i, addr)
		}
		return nil
	},
}

func init() {
	xpubCmd.Flags().StringVar(&xpubCoin, "coin", "", "币种符号 (默认读取 wallet.default_coin)")
	xpubCmd.Flags().Uint32Var(&xpubChange, "change", 0, "0 为收款地址，1 为找零地址")
	xpubCmd.Flags().Uint32Var(&xpubIndex, "index", 0, "起始地址索引")
	xpubCmd.Flags().Uint32Var(&xpubCount, "count", 1, "派生的地址数量")
	xpubCmd.Flags().StringVar(&xpubTo, "to", "", "目标版本 (xpub/ypub/zpub/tpub/Ltub/dgub)")
	rootCmd.AddCommand(xpubCmd)
}
