package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

const (
	bookCacheSize = 1024
	sessionSize   = 4096
)

// BookCache 进程内图书缓存，未配置Redis时使用
type BookCache struct {
	lru *expirable.LRU[uint, book.Book]
}

// NewBookCache 创建进程内图书缓存
func NewBookCache(ttl time.Duration) *BookCache {
	return &BookCache{lru: expirable.NewLRU[uint, book.Book](bookCacheSize, nil, ttl)}
}

func (c *BookCache) Get(_ context.Context, id uint) (*book.Book, bool, error) {
	b, ok := c.lru.Get(id)
	if !ok {
		return nil, false, nil
	}
	return cloneBook(&b), true, nil
}

func (c *BookCache) Set(_ context.Context, b *book.Book) error {
	c.lru.Add(b.ID, *cloneBook(b))
	return nil
}

func (c *BookCache) Delete(_ context.Context, id uint) error {
	c.lru.Remove(id)
	return nil
}

// SessionStore 进程内会话存储
// 过期时间在创建时固定：会话按Refresh Token有效期，黑名单按Access Token有效期
type SessionStore struct {
	sessions  *expirable.LRU[uint, map[string]string]
	blacklist *expirable.LRU[string, struct{}]
}

// NewSessionStore 创建进程内会话存储
func NewSessionStore(sessionTTL, revokeTTL time.Duration) *SessionStore {
	return &SessionStore{
		sessions:  expirable.NewLRU[uint, map[string]string](sessionSize, nil, sessionTTL),
		blacklist: expirable.NewLRU[string, struct{}](sessionSize, nil, revokeTTL),
	}
}

func (s *SessionStore) SaveSession(_ context.Context, userID uint, data map[string]interface{}, _ time.Duration) error {
	m := make(map[string]string, len(data))
	for k, v := range data {
		m[k] = fmt.Sprint(v)
	}
	s.sessions.Add(userID, m)
	return nil
}

func (s *SessionStore) GetSession(_ context.Context, userID uint) (map[string]string, error) {
	m, ok := s.sessions.Get(userID)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	return m, nil
}

func (s *SessionStore) DeleteSession(_ context.Context, userID uint) error {
	s.sessions.Remove(userID)
	return nil
}

func (s *SessionStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.blacklist.Add(token, struct{}{})
	return nil
}

func (s *SessionStore) IsRevoked(_ context.Context, token string) (bool, error) {
	return s.blacklist.Contains(token), nil
}
