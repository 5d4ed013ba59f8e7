package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/pkg/pagination"
)

type txKey struct{}

// withTx 把事务DB放进context
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFromContext 优先使用context中的事务DB
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// isDuplicateError 判断是否为唯一索引冲突（MySQL 1062）
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// notDeleted 过滤已软删除的记录，所有读路径显式使用
func notDeleted(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Table: table, Name: "is_deleted"}, Value: false})
	}
}

// paginate 分页
func paginate(p pagination.Pageable) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Size)
	}
}

// sortBy 把排序条件映射为白名单中的列，未知属性忽略
func sortBy(p pagination.Pageable, columns map[string]clause.Column, defaults ...pagination.Order) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, o := range p.Sorted(defaults...).Sort {
			col, ok := columns[o.Property]
			if !ok {
				continue
			}
			db = db.Order(clause.OrderByColumn{Column: col, Desc: o.Desc})
		}
		return db
	}
}
