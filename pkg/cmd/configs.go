package cmd

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/yeisme/docvault/pkg/configs"
)

// registerConfigsCommands 注册 config 子命令.
func registerConfigsCommands() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "inspect the effective configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "print the config file in use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := configs.GetViper()
			if v == nil {
				return fmt.Errorf("config not initialized")
			}

			if used := v.ConfigFileUsed(); used != "" {
				fmt.Fprintln(cmd.OutOrStdout(), used)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "(defaults and environment only)")
			}

			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "dump the merged configuration as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := configs.GetViper()
			if v == nil {
				return fmt.Errorf("config not initialized")
			}

			if debug {
				v.Debug()
			}

			b, err := sonic.ConfigDefault.MarshalIndent(configs.GetConfig(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			return nil
		},
	})

	rootCmd.AddCommand(configCmd)
}
