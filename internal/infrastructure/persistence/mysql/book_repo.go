package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

const booksTable = "books"

// bookSortColumns 允许排序的列
var bookSortColumns = map[string]clause.Column{
	"id":     {Table: booksTable, Name: "id"},
	"title":  {Table: booksTable, Name: "title"},
	"author": {Table: booksTable, Name: "author"},
	"price":  {Table: booksTable, Name: "price"},
	"isbn":   {Table: booksTable, Name: "isbn"},
}

// bookFieldColumns 搜索字段到列的映射
var bookFieldColumns = map[book.Field]clause.Column{
	book.FieldTitle:  {Table: booksTable, Name: "title"},
	book.FieldAuthor: {Table: booksTable, Name: "author"},
	book.FieldISBN:   {Table: booksTable, Name: "isbn"},
}

// bookRepository 图书仓储实现(MySQL)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书及分类关联，分类记录本身不做upsert
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := dbFromContext(ctx, r.db).Omit("Categories.*").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.query(ctx).
		Where(clause.Eq{Column: bookSortColumns["id"], Value: id}).
		Preload("Categories", notDeleted("categories")).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []BookModel
	if err := r.query(ctx).Where("books.id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntities(models), nil
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := r.query(ctx).Where(clause.Eq{Column: bookFieldColumns[book.FieldISBN], Value: isbn}).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 更新全部字段并替换分类关联
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(model).
			Scopes(notDeleted(booksTable)).
			Select("title", "author", "isbn", "price", "description", "cover_image", "updated_at").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return book.NotFound(b.ID)
		}
		return tx.Model(model).Association("Categories").Replace(model.Categories)
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// SoftDelete 标记删除，记录不存在时不报错
func (r *bookRepository) SoftDelete(ctx context.Context, id uint) error {
	err := dbFromContext(ctx, r.db).
		Model(&BookModel{}).
		Where(clause.Eq{Column: bookSortColumns["id"], Value: id}).
		Scopes(notDeleted(booksTable)).
		Update("is_deleted", true).Error
	if err != nil {
		return apperrors.Wrap(err, "删除图书失败")
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, p pagination.Pageable) ([]*book.Book, int64, error) {
	return r.Search(ctx, book.Specification{}, p)
}

// Search 规约中的每个谓词翻译为 column IN (...)，谓词之间AND
func (r *bookRepository) Search(ctx context.Context, spec book.Specification, p pagination.Pageable) ([]*book.Book, int64, error) {
	return r.page(ctx, p, specScope(spec))
}

func (r *bookRepository) ListByCategory(ctx context.Context, categoryID uint, p pagination.Pageable) ([]*book.Book, int64, error) {
	return r.page(ctx, p, inCategory(categoryID))
}

// page 统计总数并查询当前页
func (r *bookRepository) page(ctx context.Context, p pagination.Pageable, filters ...func(*gorm.DB) *gorm.DB) ([]*book.Book, int64, error) {
	var total int64
	if err := r.query(ctx).Scopes(filters...).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	var models []BookModel
	err := r.query(ctx).
		Scopes(filters...).
		Scopes(sortBy(p, bookSortColumns, pagination.Order{Property: "id"}), paginate(p)).
		Preload("Categories", notDeleted("categories")).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}
	return toBookEntities(models), total, nil
}

// query 带软删除过滤的基础查询
func (r *bookRepository) query(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).Model(&BookModel{}).Scopes(notDeleted(booksTable))
}

// specScope 把搜索规约翻译为WHERE条件
func specScope(spec book.Specification) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range spec.Predicates {
			col, ok := bookFieldColumns[p.Field]
			if !ok || len(p.Values) == 0 {
				continue
			}
			db = db.Where(clause.IN{Column: col, Values: toInterfaces(p.Values)})
		}
		return db
	}
}

func inCategory(categoryID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN books_categories bc ON bc.book_id = books.id").
			Where("bc.category_id = ?", categoryID)
	}
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// =========================================
// 模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	categories := make([]CategoryModel, 0, len(b.CategoryIDs))
	for _, id := range b.CategoryIDs {
		categories = append(categories, CategoryModel{ID: id})
	}
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		IsDeleted:   b.IsDeleted,
		Categories:  categories,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookEntity(model *BookModel) *book.Book {
	var ids []uint
	for _, c := range model.Categories {
		ids = append(ids, c.ID)
	}
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Author:      model.Author,
		ISBN:        model.ISBN,
		Price:       model.Price,
		Description: model.Description,
		CoverImage:  model.CoverImage,
		CategoryIDs: ids,
		IsDeleted:   model.IsDeleted,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
