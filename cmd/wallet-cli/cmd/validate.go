package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hdwallet-core/pkg/errno"
)

// validateCmd 校验地址格式
var validateCmd = &cobra.Command{
	Use:     "validate <coin> <address>",
	Short:   "校验地址格式",
	Args:    cobra.ExactArgs(2),
	Example: `  wallet-cli validate BTC bc1qh493z9tmfegw2z4ly26whu8crh3ukwl4v4jkvj`,
	RunE: func(cmd *cobra.Command, args []string) error {
		valid, err := addressService.ValidateAddress(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if valid {
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s 地址有效: %s\n", args[0], args[1])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "❌ %s 地址无效: %s\n", args[0], args[1])
		return fmt.Errorf("%w: %s", errno.ErrInvalidAddress, args[1])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
