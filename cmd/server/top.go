package main

import (
	"encoding/json"
	"fmt"

	"go-file-share/pkg/config"

	"github.com/spf13/cobra"
)

func init() {
	TopCommand.Flags().Int("k", 1, "number of files to return")
	RootCmd.AddCommand(&TopCommand)
}

// TopCommand 在命令行输出分享最广的文件
var TopCommand = cobra.Command{
	Use:   "top",
	Short: "Print the most shared files as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := cmd.Flags().GetInt("k")
		if err != nil {
			return err
		}

		cfg := config.GlobalConfig
		a, err := newApp(cmd.Context(), &cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ranked, err := a.services.Files.TopShared(cmd.Context(), k)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(ranked, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode ranking: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
