package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"organizer/backend/config"
	"organizer/backend/internal/repository"
	"organizer/backend/internal/service"
	"organizer/backend/pkg/database"
	"organizer/backend/pkg/i18n"
	applogger "organizer/backend/pkg/logger"
	"organizer/backend/pkg/redis"
)

type validateResult struct {
	OrganizationID int64    `json:"organization_id"`
	OK             bool     `json:"ok"`
	Errors         []string `json:"errors"`
	Warnings       []string `json:"warnings"`
	Stats          any      `json:"stats"`
}

// errRejected 导入被拒绝时以非零码退出
var errRejected = errors.New("课表未通过校验")

// newValidateCmd 与 HTTP 上传走同一条导入流程
func newValidateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		file   string
		orgID  int64
		locale string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "校验 Untis XML 并同步到数据库",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if locale == "" {
				locale = cfg.Import.Locale
			}
			if !i18n.Supported(locale) {
				return fmt.Errorf("不支持的语言 %q", locale)
			}

			doc, err := parseFile(file)
			if err != nil {
				return err
			}

			logger, err := applogger.NewLogger(&cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			if err := database.RunMigrations(sqlDB, logger); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if cfg.Redis.Addr != "" {
				rdb, err := redis.NewClient(&cfg.Redis, logger)
				if err != nil {
					logger.Warn("Redis 不可用，跳过导入锁", zap.Error(err))
				} else {
					defer rdb.Close()
					unlock, err := redis.NewImportLocker(rdb, cfg.Import.LockTTL).Lock(ctx, orgID)
					if err != nil {
						return err
					}
					defer unlock(context.WithoutCancel(ctx))
				}
			}

			bundle, err := i18n.NewBundle(cfg.Import.Locale)
			if err != nil {
				return err
			}

			svc := service.NewScheduleImportService(&cfg.Import, repository.NewRepository(db), bundle.Translator(locale), logger)

			start := time.Now()
			res, err := svc.Validate(ctx, doc, orgID)
			if err != nil {
				return err
			}

			out := commandOutput{
				Command:    "validate",
				DurationMS: time.Since(start).Milliseconds(),
				Result: validateResult{
					OrganizationID: orgID,
					OK:             res.OK,
					Errors:         res.Errors,
					Warnings:       res.Warnings,
					Stats:          res.Stats,
				},
			}
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if !res.OK {
				return errRejected
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Untis XML 文件 (required)")
	cmd.Flags().Int64Var(&orgID, "org", 0, "组织 ID (required)")
	cmd.Flags().StringVar(&locale, "locale", "", "报告语言 en|zh（默认取配置）")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}
