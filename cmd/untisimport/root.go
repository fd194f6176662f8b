package main

import (
	"github.com/spf13/cobra"

	"organizer/backend/config"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "untisimport",
		Short:         "Untis XML 课表导入工具",
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径（默认 ./config/config.yaml）")

	loadConfig := func() (*config.Config, error) { return config.Load(configPath) }

	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newValidateCmd(loadConfig))
	cmd.AddCommand(newTokenCmd(loadConfig))
	return cmd
}
