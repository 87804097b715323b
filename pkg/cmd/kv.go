package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/docvault/pkg/internal/storage/kv"
)

// registerKVCommands 注册 KV 子命令.
func registerKVCommands() {
	kvCmd := &cobra.Command{
		Use:   "kv",
		Short: "key-value backend commands",
	}

	kvCmd.AddCommand(&cobra.Command{
		Use:     "backends",
		Short:   "list compiled-in kv backends",
		Aliases: []string{"ls"},
		Run: func(cmd *cobra.Command, _ []string) {
			for _, t := range kv.GetRegisteredKVTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), string(t))
			}
		},
	})

	rootCmd.AddCommand(kvCmd)
}
