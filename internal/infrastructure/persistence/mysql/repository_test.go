package mysql

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestSpecScope_SQL(t *testing.T) {
	db, _ := newMockDB(t)
	p := pagination.Of(2, 10)

	tests := []struct {
		name     string
		params   book.SearchParams
		contains []string
		absent   []string
	}{
		{
			name:     "空条件只过滤软删除",
			params:   book.SearchParams{},
			contains: []string{"`books`.`is_deleted` = false", "ORDER BY `books`.`id`", "LIMIT 10 OFFSET 10"},
			absent:   []string{"`books`.`title`", "`books`.`author`"},
		},
		{
			name:     "多值为IN",
			params:   book.SearchParams{Titles: []string{"Dune", "Emma"}},
			contains: []string{"`books`.`title` IN ('Dune','Emma')"},
		},
		{
			name:   "多字段AND组合",
			params: book.SearchParams{Titles: []string{"Dune"}, Authors: []string{"Herbert", "Anderson"}, ISBN: "111"},
			contains: []string{
				"`books`.`title` = 'Dune'",
				"`books`.`author` IN ('Herbert','Anderson')",
				"`books`.`isbn` = '111'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := book.NewSpecificationBuilder().Build(tt.params)
			sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				var models []BookModel
				return tx.Model(&BookModel{}).
					Scopes(notDeleted(booksTable), specScope(spec)).
					Scopes(sortBy(p, bookSortColumns, pagination.Order{Property: "id"}), paginate(p)).
					Find(&models)
			})
			for _, c := range tt.contains {
				assert.Contains(t, sql, c)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, sql, a)
			}
		})
	}
}

func TestSortBy_IgnoresUnknownColumns(t *testing.T) {
	db, _ := newMockDB(t)
	p := pagination.Of(1, 5, pagination.Order{Property: "price", Desc: true}, pagination.Order{Property: "password"})

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var models []BookModel
		return tx.Model(&BookModel{}).Scopes(sortBy(p, bookSortColumns)).Find(&models)
	})
	assert.Contains(t, sql, "ORDER BY `books`.`price` DESC")
	assert.NotContains(t, sql, "password")
}

func TestBookRepository_SoftDeleteMissingIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `books` SET `is_deleted`=")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SoftDelete(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `books` WHERE")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_CreateDuplicateISBN(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `books`")).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '111' for key 'books.idx_books_isbn'"))

	err := repo.Create(context.Background(), &book.Book{Title: "Dune", Author: "Herbert", ISBN: "111", Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, book.ErrISBNDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	t.Run("已删除或不存在的订单", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE `orders` SET")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), &order.Order{ID: 9, Status: order.StatusDelivered})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("正常更新", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE `orders` SET")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), &order.Order{ID: 9, Status: order.StatusCompleted, IsDeleted: true})
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderHistory_DefaultSort(t *testing.T) {
	db, _ := newMockDB(t)
	p := pagination.Of(1, 20)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var models []OrderModel
		return tx.Model(&OrderModel{}).
			Scopes(notDeleted(ordersTable)).
			Scopes(sortBy(p, orderSortColumns, pagination.Order{Property: "order_date", Desc: true})).
			Find(&models)
	})
	assert.Contains(t, sql, "`orders`.`is_deleted` = false")
	assert.Contains(t, sql, "ORDER BY `orders`.`order_date` DESC")
}

func TestTxManager_PutsTxInContext(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := tm.Transaction(context.Background(), func(ctx context.Context) error {
		_, ok := ctx.Value(txKey{}).(*gorm.DB)
		assert.True(t, ok)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
