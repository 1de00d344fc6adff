package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"hdwallet-core/internal/service"
	"hdwallet-core/pkg/bip32"
	"hdwallet-core/pkg/bip39"
	"hdwallet-core/pkg/keystore"
)

var (
	newBits     int
	newKeystore string
)

// newCmd 代表 new 命令
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "创建一个新的钱包",
	Long:  `生成一个新的随机 BIP-39 助记词，并显示种子和默认币种的地址。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bits := newBits
		if bits == 0 {
			bits = cfg.Wallet.MnemonicBits
		}

		fmt.Println("正在生成新钱包...")
		fmt.Println("---------------------------------------------------")

		// 1. 生成助记词
		mnemonicService := bip39.NewMnemonicService()
		mnemonic, err := mnemonicService.GenerateMnemonic(bits)
		if err != nil {
			return err
		}
		fmt.Printf("助记词 (Mnemonic): \n%s\n", mnemonic)
		fmt.Println("---------------------------------------------------")

		if newKeystore != "" {
			pw, err := keystorePassword()
			if err != nil {
				return err
			}
			k, err := keystore.Encrypt(mnemonic, pw, keystore.StandardScrypt)
			if err != nil {
				return err
			}
			if err := k.SaveToFile(newKeystore); err != nil {
				return err
			}
			fmt.Printf("助记词已加密保存到: %s (id %s)\n", newKeystore, k.ID)
			fmt.Println("---------------------------------------------------")
		}

		// 2. 生成种子
		seed := mnemonicService.MnemonicToSeed(mnemonic, cfg.Wallet.Passphrase)
		fmt.Printf("种子 (Seed Hex): %s\n", hex.EncodeToString(seed))

		wallet, err := bip32.NewMasterKeyFromSeed(seed, nil)
		if err != nil {
			return err
		}
		masterKey := wallet.MasterKey()
		fmt.Printf("主私钥 (xprv): %s\n", masterKey.String())
		fmt.Printf("主公钥 (xpub): %s\n", masterKey.Neuter().String())
		fmt.Println("---------------------------------------------------")

		// 3. 默认币种的每种派生方案
		results, err := addressService.Generate(cmd.Context(), service.GenerateRequest{
			Mnemonic:   mnemonic,
			Passphrase: cfg.Wallet.Passphrase,
			Coin:       cfg.Wallet.DefaultCoin,
			Account:    cfg.Wallet.Account,
		})
		if err != nil {
			return err
		}
		for _, res := range results {
			fmt.Printf("%s [%s] %s: %s\n", res.Coin, res.Derivation, res.Path, res.PublicAddress)
			if res.ExtendedPublic != "" {
				fmt.Printf("  账户扩展公钥: %s\n", res.ExtendedPublic)
			}
		}
		fmt.Println("---------------------------------------------------")
		fmt.Println("请妥善保管您的助记词！任何拥有助记词的人都可以控制该钱包的所有资产。")
		return nil
	},
}

func init() {
	newCmd.Flags().IntVar(&newBits, "bits", 0, "熵的位数 128-256 (默认读取 wallet.mnemonic_bits)")
	newCmd.Flags().StringVar(&newKeystore, "keystore", "", "把助记词加密保存到该文件")
	rootCmd.AddCommand(newCmd)
}
