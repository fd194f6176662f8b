package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Table 按自然键读写单张表的最小存储接口
//
// keys 为 列名 → 值，nil 值匹配 NULL。
// Save 写入新行并回写自增 ID；Update 只写 changed 中列出的列。
type Table[T any] interface {
	Load(ctx context.Context, keys map[string]any) (*T, bool, error)
	Save(ctx context.Context, row *T) error
	Update(ctx context.Context, row *T, changed map[string]any) error
}

type gormTable[T any] struct {
	db *gorm.DB
}

// NewTable 创建基于 gorm 的 Table 实现
func NewTable[T any](db *gorm.DB) Table[T] {
	return &gormTable[T]{db: db}
}

func (r *gormTable[T]) Load(ctx context.Context, keys map[string]any) (*T, bool, error) {
	var row T
	err := r.db.WithContext(ctx).
		Where(keys).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("按自然键查询失败: %w", err)
	}
	return &row, true, nil
}

func (r *gormTable[T]) Save(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("写入失败: %w", err)
	}
	return nil
}

func (r *gormTable[T]) Update(ctx context.Context, row *T, changed map[string]any) error {
	if len(changed) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(row).Updates(changed).Error; err != nil {
		return fmt.Errorf("更新失败: %w", err)
	}
	return nil
}
