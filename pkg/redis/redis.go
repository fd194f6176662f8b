package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"organizer/backend/config"
	apperrors "organizer/backend/pkg/errors"
)

// Client Redis 客户端封装
// 用于同一组织的导入互斥
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 导入锁 ──

const importLockPrefix = "untis:import:lock:"

// Lock 已持有的导入锁
type Lock struct {
	client *Client
	key    string
	token  string
}

// releaseScript 仅当 token 匹配时删除，避免释放他人在 TTL 过期后取得的锁
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireImportLock 获取组织的导入锁，已被占用时返回 ErrImportInProgress
func (c *Client) AcquireImportLock(ctx context.Context, organizationID int64, ttl time.Duration) (*Lock, error) {
	key := fmt.Sprintf("%s%d", importLockPrefix, organizationID)
	token := uuid.New().String()

	ok, err := c.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("获取导入锁失败: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrImportInProgress
	}
	return &Lock{client: c, key: key, token: token}, nil
}

// Release 释放导入锁；锁已过期或被他人持有时返回 ErrLockNotHeld
func (l *Lock) Release(ctx context.Context) error {
	n, err := releaseScript.Run(ctx, l.client.rdb, []string{l.key}, l.token).Int64()
	if err != nil {
		return fmt.Errorf("释放导入锁失败: %w", err)
	}
	if n == 0 {
		l.client.logger.Warn("导入锁已失效", zap.String("key", l.key))
		return apperrors.ErrLockNotHeld
	}
	return nil
}

// PingContext 健康检查
func (c *Client) PingContext(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}

// ImportLocker 以固定 TTL 获取导入锁
type ImportLocker struct {
	client *Client
	ttl    time.Duration
}

// NewImportLocker 创建 ImportLocker
func NewImportLocker(client *Client, ttl time.Duration) *ImportLocker {
	return &ImportLocker{client: client, ttl: ttl}
}

// Lock 获取组织的导入锁，返回释放函数
func (l *ImportLocker) Lock(ctx context.Context, organizationID int64) (func(context.Context) error, error) {
	lock, err := l.client.AcquireImportLock(ctx, organizationID, l.ttl)
	if err != nil {
		return nil, err
	}
	return lock.Release, nil
}
