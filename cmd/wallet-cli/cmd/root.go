package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hdwallet-core/internal/service"
	"hdwallet-core/pkg/coin"
	"hdwallet-core/pkg/config"
	"hdwallet-core/pkg/logger"
)

var (
	cfgFile  string
	logLevel string
	password string

	cfg            *config.Config
	addressService service.AddressService
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "wallet-cli",
	Short: "分层确定性钱包命令行工具",
	Long: `一个用 Go 语言编写的 HD 钱包工具。
支持 BIP-39 助记词、BIP-32 (secp256k1) 和 SLIP-10 (ed25519) 派生，
以及 BTC/LTC/DOGE/EVM/XRP/Stellar/Solana/Tezos/Polkadot 等地址格式。`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		if logLevel != "" {
			cfg.App.LogLevel = logLevel
		}
		if err := logger.Init(cfg.App.Env, cfg.App.LogLevel); err != nil {
			return err
		}
		// CLI 是一次性进程，不需要缓存
		addressService = service.NewAddressService(coin.Default(), nil, 0)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认查找 ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (debug/info/warn/error)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "keystore 密码 (也可以用环境变量 WALLET_KEYSTORE_PASSWORD)")
}

// keystorePassword 命令行参数优先，其次是环境变量
func keystorePassword() (string, error) {
	if password != "" {
		return password, nil
	}
	if env := os.Getenv("WALLET_KEYSTORE_PASSWORD"); env != "" {
		return env, nil
	}
	return "", errors.New("需要通过 --password 或 WALLET_KEYSTORE_PASSWORD 提供 keystore 密码")
}
