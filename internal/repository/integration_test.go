//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"organizer/backend/internal/model"
	"organizer/backend/internal/repository"
	"organizer/backend/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=organizer password=organizer dbname=organizer_test sslmode=disable TimeZone=Europe/Berlin"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupOrganization 创建测试组织并返回清理函数
func setupOrganization(t *testing.T) (*model.Organization, func()) {
	t.Helper()
	org := &model.Organization{Name: fmt.Sprintf("测试组织-%d", time.Now().UnixNano())}
	if err := testDB.Create(org).Error; err != nil {
		t.Fatalf("创建组织失败: %v", err)
	}
	return org, func() {
		testDB.Where("organization_id = ?", org.ID).Delete(&model.Room{})
		testDB.Where("organization_id = ?", org.ID).Delete(&model.Building{})
		testDB.Delete(org)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 自然键读写
// ═══════════════════════════════════════════════════════════

func TestTable_RoundTrip(t *testing.T) {
	org, cleanup := setupOrganization(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	building := &model.Building{OrganizationID: org.ID, Name: "A1"}
	if err := repo.Buildings.Save(ctx, building); err != nil {
		t.Fatalf("保存楼宇失败: %v", err)
	}

	room := &model.Room{OrganizationID: org.ID, Code: "A1.01", Name: "A1.01"}
	if err := repo.Rooms.Save(ctx, room); err != nil {
		t.Fatalf("保存教室失败: %v", err)
	}
	if room.ID == 0 {
		t.Fatal("Save 后 ID 未回写")
	}

	if err := repo.Rooms.Update(ctx, room, map[string]any{"building_id": &building.ID}); err != nil {
		t.Fatalf("更新教室失败: %v", err)
	}

	got, found, err := repo.Rooms.Load(ctx, map[string]any{"organization_id": org.ID, "code": "A1.01"})
	if err != nil || !found {
		t.Fatalf("按自然键读取失败: found=%v err=%v", found, err)
	}
	if got.BuildingID == nil || *got.BuildingID != building.ID {
		t.Errorf("building_id 未持久化: %+v", got.BuildingID)
	}

	_, found, err = repo.Rooms.Load(ctx, map[string]any{"organization_id": org.ID, "code": "missing"})
	if err != nil || found {
		t.Errorf("期望未找到: found=%v err=%v", found, err)
	}
}

func TestTable_GridPeriodsJSON(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	code := fmt.Sprintf("Raster-%d", time.Now().UnixNano())
	grid := &model.Grid{
		Code: code,
		Periods: datatypes.NewJSONType(model.GridPeriods{
			1: {StartTime: "08:00:00", EndTime: "09:30:00"},
			2: {StartTime: "09:50:00", EndTime: "11:20:00", Label: "Pause"},
		}),
		FirstDay: 1,
		LastDay:  5,
	}
	if err := repo.Grids.Save(ctx, grid); err != nil {
		t.Fatalf("保存栅格失败: %v", err)
	}
	defer testDB.Delete(grid)

	got, found, err := repo.Grids.Load(ctx, map[string]any{"code": code})
	if err != nil || !found {
		t.Fatalf("读取栅格失败: found=%v err=%v", found, err)
	}
	p, ok := got.Period(2)
	if !ok || p.StartTime != "09:50:00" || p.Label != "Pause" {
		t.Errorf("period 2 不一致: %+v", p)
	}
}
