package memory

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/user"
)

type userRepository struct {
	s *Store
}

// NewUserRepository 创建内存用户仓储
func NewUserRepository(s *Store) user.Repository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return user.ErrEmailDuplicate
		}
	}
	u.ID = r.s.nextID()
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	remember(ctx, r.s.users, u.ID, cloneUser)
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id uint) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}
