package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/docvault/pkg/internal/storage/db"
)

// registerDBCommands 注册数据库子命令.
func registerDBCommands() {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "database backend commands",
	}

	dbCmd.AddCommand(&cobra.Command{
		Use:     "drivers",
		Short:   "list compiled-in database drivers",
		Aliases: []string{"ls"},
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	})

	rootCmd.AddCommand(dbCmd)
}
