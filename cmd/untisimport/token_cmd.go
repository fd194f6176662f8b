package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"organizer/backend/config"
	"organizer/backend/pkg/jwt"
)

// newTokenCmd 为上传接口签发 Access Token（运维使用）
func newTokenCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		userID string
		role   string
		orgID  int64
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "签发上传接口使用的 JWT",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "admin" && role != "scheduler" {
				return fmt.Errorf("role 只能是 admin 或 scheduler")
			}
			if role == "scheduler" && orgID == 0 {
				return fmt.Errorf("scheduler 必须绑定 --org")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			token, err := jwt.NewManager(&cfg.Auth).GenerateAccessToken(userID, role, orgID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "用户标识 (required)")
	cmd.Flags().StringVar(&role, "role", "scheduler", "admin|scheduler")
	cmd.Flags().Int64Var(&orgID, "org", 0, "绑定的组织 ID，0 表示不限")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
