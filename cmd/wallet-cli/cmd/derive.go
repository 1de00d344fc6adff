package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hdwallet-core/internal/service"
	"hdwallet-core/pkg/coin"
	"hdwallet-core/pkg/errno"
	"hdwallet-core/pkg/keystore"
)

var (
	deriveMnemonic    string
	deriveKeystore    string
	deriveCoin        string
	deriveAccount     int64
	deriveDerivation  string
	derivePath        string
	deriveShowPrivate bool
	deriveJSON        bool
)

// deriveCmd 从助记词派生地址
var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "从助记词派生地址",
	Long: `从 BIP-39 助记词派生指定币种的地址。
助记词可以通过 --mnemonic、环境变量 WALLET_MNEMONIC 或加密的 --keystore 文件传入。
不指定 --derivation 和 --path 时，输出该币种所有派生方案的地址。`,
	Example: `  wallet-cli derive --coin BTC --account 1
  wallet-cli derive --coin ETH --path "m/44'/60'/0'/0/5"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mnemonic, err := resolveMnemonic()
		if err != nil {
			return err
		}

		symbol := deriveCoin
		if symbol == "" {
			symbol = cfg.Wallet.DefaultCoin
		}
		account := cfg.Wallet.Account
		if cmd.Flags().Changed("account") {
			if deriveAccount < 0 || deriveAccount >= 1<<31 {
				return fmt.Errorf("%w: account 必须在 [0, 2^31) 内", errno.ErrDerivePath)
			}
			account = uint32(deriveAccount)
		}

		results, err := addressService.Generate(cmd.Context(), service.GenerateRequest{
			Mnemonic:   mnemonic,
			Passphrase: cfg.Wallet.Passphrase,
			Coin:       symbol,
			Account:    account,
			Derivation: deriveDerivation,
			Path:       derivePath,
		})
		if err != nil {
			return err
		}
		if !deriveShowPrivate {
			for i := range results {
				redact(&results[i])
			}
		}

		if deriveJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		for _, res := range results {
			printResult(cmd, res)
		}
		return nil
	},
}

// resolveMnemonic 依次尝试 --mnemonic、WALLET_MNEMONIC、keystore 文件
func resolveMnemonic() (string, error) {
	if strings.TrimSpace(deriveMnemonic) != "" {
		return deriveMnemonic, nil
	}
	if env := os.Getenv("WALLET_MNEMONIC"); strings.TrimSpace(env) != "" {
		return env, nil
	}

	file := deriveKeystore
	if file == "" {
		file = cfg.Wallet.Keystore
	}
	if file == "" {
		return "", errors.New("需要通过 --mnemonic、WALLET_MNEMONIC 或 --keystore 提供助记词")
	}
	k, err := keystore.LoadFromFile(file)
	if err != nil {
		return "", err
	}
	pw, err := keystorePassword()
	if err != nil {
		return "", err
	}
	return keystore.Decrypt(k, pw)
}

// redact 清掉所有私钥相关字段
func redact(res *coin.AddressResult) {
	res.PrivateKey = ""
	res.PrivateAddress = ""
	res.ExtendedPrivate = ""
}

func printResult(cmd *cobra.Command, res coin.AddressResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "---------------------------------------------------")
	fmt.Fprintf(out, "币种: %s  派生方案: %s\n", res.Coin, res.Derivation)
	fmt.Fprintf(out, "路径: %s\n", res.Path)
	fmt.Fprintf(out, "地址: %s\n", res.PublicAddress)
	fmt.Fprintf(out, "公钥: %s\n", res.PublicKey)
	if res.EncodedPublicKey != "" {
		fmt.Fprintf(out, "公钥 (编码): %s\n", res.EncodedPublicKey)
	}
	if res.ExtendedPublic != "" {
		fmt.Fprintf(out, "账户扩展公钥: %s\n", res.ExtendedPublic)
	}
	if res.PrivateKey != "" {
		fmt.Fprintf(out, "私钥: %s\n", res.PrivateKey)
		fmt.Fprintf(out, "私钥 (导入格式): %s\n", res.PrivateAddress)
	}
	if res.ExtendedPrivate != "" {
		fmt.Fprintf(out, "账户扩展私钥: %s\n", res.ExtendedPrivate)
	}
}

func init() {
	deriveCmd.Flags().StringVar(&deriveMnemonic, "mnemonic", "", "BIP-39 助记词")
	deriveCmd.Flags().StringVar(&deriveKeystore, "keystore", "", "加密助记词文件 (默认读取 wallet.keystore)")
	deriveCmd.Flags().StringVar(&deriveCoin, "coin", "", "币种符号 (默认读取 wallet.default_coin)")
	deriveCmd.Flags().Int64Var(&deriveAccount, "account", 0, "账户编号，替换路径中的 ACCOUNT")
	deriveCmd.Flags().StringVar(&deriveDerivation, "derivation", "", "派生方案，如 segwit/wrapped-segwit/legacy")
	deriveCmd.Flags().StringVar(&derivePath, "path", "", "显式派生路径，coin type 必须与币种一致")
	deriveCmd.Flags().BoolVar(&deriveShowPrivate, "show-private", false, "同时输出私钥")
	deriveCmd.Flags().BoolVar(&deriveJSON, "json", false, "以 JSON 输出")
	rootCmd.AddCommand(deriveCmd)
}
