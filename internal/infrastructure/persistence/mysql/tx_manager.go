package mysql

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务管理器，事务DB通过context传递给仓储
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务，fn返回error时回滚，否则提交
// 已在事务中时复用外层事务（GORM使用SavePoint）
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if err := orderRepo.Create(ctx, o); err != nil {
//	        return err
//	    }
//	    return cartRepo.ClearItems(ctx, cartID)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return dbFromContext(ctx, m.db).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
