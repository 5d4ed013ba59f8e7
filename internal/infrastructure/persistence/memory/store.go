// Package memory 进程内存储实现，用于本地开发（database.driver=memory）和单元测试
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

// Store 所有聚合的内存表
type Store struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	seq        uint
	books      map[uint]*book.Book
	categories map[uint]*category.Category
	carts      map[uint]*cart.ShoppingCart // key: cart id
	orders     map[uint]*order.Order
	users      map[uint]*user.User
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{
		books:      make(map[uint]*book.Book),
		categories: make(map[uint]*category.Category),
		carts:      make(map[uint]*cart.ShoppingCart),
		orders:     make(map[uint]*order.Order),
		users:      make(map[uint]*user.User),
	}
}

// nextID 全局自增ID，调用方需持有写锁
func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

type txKey struct{}

// undoLog 事务内写操作的回滚步骤
type undoLog struct {
	steps []func()
}

func undoFrom(ctx context.Context) *undoLog {
	log, _ := ctx.Value(txKey{}).(*undoLog)
	return log
}

// remember 在事务内记录行被写入前的值，调用方需持有写锁
// 不在事务内的写操作不记录，回滚也不会触及它们
func remember[T any](ctx context.Context, table map[uint]*T, id uint, clone func(*T) *T) {
	log := undoFrom(ctx)
	if log == nil {
		return
	}
	prev, existed := table[id]
	if existed {
		prev = clone(prev)
	}
	log.steps = append(log.steps, func() {
		if existed {
			table[id] = prev
		} else {
			delete(table, id)
		}
	})
}

func (s *Store) rollback(log *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(log.steps) - 1; i >= 0; i-- {
		log.steps[i]()
	}
}

// TxManager 内存事务:事务之间串行执行，fn返回错误时按undo日志撤销本事务写过的行
// 自增ID不回收，与MySQL的AUTO_INCREMENT一致
type TxManager struct {
	store *Store
}

// NewTxManager 创建内存事务管理器
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Transaction 执行事务，已在事务中时直接加入外层事务
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if undoFrom(ctx) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		m.store.rollback(log)
		return err
	}
	return nil
}

// =========================================
// 复制与排序辅助
// =========================================

func cloneBook(b *book.Book) *book.Book {
	cp := *b
	cp.CategoryIDs = append([]uint(nil), b.CategoryIDs...)
	return &cp
}

func cloneCategory(c *category.Category) *category.Category {
	cp := *c
	return &cp
}

func cloneCart(c *cart.ShoppingCart) *cart.ShoppingCart {
	cp := *c
	cp.Items = append([]cart.CartItem(nil), c.Items...)
	return &cp
}

func cloneOrder(o *order.Order) *order.Order {
	cp := *o
	cp.Items = append([]order.OrderItem(nil), o.Items...)
	return &cp
}

func cloneUser(u *user.User) *user.User {
	cp := *u
	cp.Roles = append([]user.RoleName(nil), u.Roles...)
	return &cp
}

// sortBy 按排序条件排序，compare返回负数表示a在前
// 排序条件全部相等时按id升序，保证分页结果稳定；compare遇到未知属性时应比较id
func sortBy[T any](items []T, orders []pagination.Order, compare func(a, b T, property string) int) {
	orders = append(orders[:len(orders):len(orders)], pagination.Order{Property: "id"})
	sort.SliceStable(items, func(i, j int) bool {
		for _, o := range orders {
			c := compare(items[i], items[j], o.Property)
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}
