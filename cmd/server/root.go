package main

import (
	"fmt"

	"go-file-share/pkg/config"
	"go-file-share/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	// flags
	configDir  string
	configName string
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", config.Dir(), "directory holding the configuration files")
	RootCmd.PersistentFlags().StringVar(&configName, "config", "config", "configuration file name, without extension")
}

var RootCmd = cobra.Command{
	Use:          "fileshare",
	Short:        "Share files with users and groups",
	Long:         "REST backend for users, groups and files, with direct and group sharing and a most shared files ranking",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 初始化配置
		cfg, err := config.Load(configDir, configName)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		config.GlobalConfig = *cfg

		// 初始化日志
		if err := logger.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}
