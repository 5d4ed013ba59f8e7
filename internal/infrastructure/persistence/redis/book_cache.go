package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// BookCache 图书详情缓存（Cache-Aside）
// 写操作由调用方负责删除缓存
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

func bookKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// Get 读取缓存，未命中时返回 (nil, false, nil)
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, bool, error) {
	data, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, apperrors.ErrRedisError.WithMessage("读取图书缓存失败: %v", err)
	}

	var b book.Book
	if err := json.Unmarshal(data, &b); err != nil {
		// 脏数据按未命中处理，随后会被覆盖
		return nil, false, nil
	}
	return &b, true, nil
}

func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	data, err := json.Marshal(b)
	if err != nil {
		return apperrors.Wrap(err, "序列化图书失败")
	}
	if err := c.client.Set(ctx, bookKey(b.ID), data, c.ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithMessage("写入图书缓存失败: %v", err)
	}
	return nil
}

func (c *BookCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		return apperrors.ErrRedisError.WithMessage("删除图书缓存失败: %v", err)
	}
	return nil
}
