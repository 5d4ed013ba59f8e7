package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

type bookRepository struct {
	s *Store
}

// NewBookRepository 创建内存图书仓储
func NewBookRepository(s *Store) book.Repository {
	return &bookRepository{s: s}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.books {
		if existing.ISBN == b.ISBN {
			return book.ErrISBNDuplicate
		}
	}

	b.ID = r.s.nextID()
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	remember(ctx, r.s.books, b.ID, cloneBook)
	r.s.books[b.ID] = cloneBook(b)
	return nil
}

func (r *bookRepository) FindByID(_ context.Context, id uint) (*book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.books[id]
	if !ok || b.IsDeleted {
		return nil, book.NotFound(id)
	}
	return cloneBook(b), nil
}

func (r *bookRepository) FindByIDs(_ context.Context, ids []uint) ([]*book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*book.Book
	for _, id := range ids {
		if b, ok := r.s.books[id]; ok && !b.IsDeleted {
			out = append(out, cloneBook(b))
		}
	}
	return out, nil
}

func (r *bookRepository) FindByISBN(_ context.Context, isbn string) (*book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.books {
		if b.ISBN == isbn && !b.IsDeleted {
			return cloneBook(b), nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.books[b.ID]
	if !ok || current.IsDeleted {
		return book.NotFound(b.ID)
	}
	for id, existing := range r.s.books {
		if id != b.ID && existing.ISBN == b.ISBN {
			return book.ErrISBNDuplicate
		}
	}

	b.CreatedAt = current.CreatedAt
	b.UpdatedAt = time.Now()
	remember(ctx, r.s.books, b.ID, cloneBook)
	r.s.books[b.ID] = cloneBook(b)
	return nil
}

func (r *bookRepository) SoftDelete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if b, ok := r.s.books[id]; ok {
		remember(ctx, r.s.books, id, cloneBook)
		b.IsDeleted = true
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, p pagination.Pageable) ([]*book.Book, int64, error) {
	return r.Search(ctx, book.Specification{}, p)
}

func (r *bookRepository) Search(_ context.Context, spec book.Specification, p pagination.Pageable) ([]*book.Book, int64, error) {
	return r.page(spec.IsSatisfiedBy, p), r.count(spec.IsSatisfiedBy), nil
}

func (r *bookRepository) ListByCategory(_ context.Context, categoryID uint, p pagination.Pageable) ([]*book.Book, int64, error) {
	match := func(b *book.Book) bool {
		return !b.IsDeleted && slices.Contains(b.CategoryIDs, categoryID)
	}
	return r.page(match, p), r.count(match), nil
}

func (r *bookRepository) filter(match func(*book.Book) bool) []*book.Book {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*book.Book
	for _, b := range r.s.books {
		if match(b) {
			out = append(out, cloneBook(b))
		}
	}
	return out
}

func (r *bookRepository) count(match func(*book.Book) bool) int64 {
	return int64(len(r.filter(match)))
}

func (r *bookRepository) page(match func(*book.Book) bool, p pagination.Pageable) []*book.Book {
	books := r.filter(match)
	sortBy(books, p.Sorted(pagination.Order{Property: "id"}).Sort, compareBooks)
	return pagination.Window(books, p)
}

func compareBooks(a, b *book.Book, property string) int {
	switch property {
	case "title":
		return cmp.Compare(a.Title, b.Title)
	case "author":
		return cmp.Compare(a.Author, b.Author)
	case "isbn":
		return cmp.Compare(a.ISBN, b.ISBN)
	case "price":
		return a.Price.Cmp(b.Price)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}
