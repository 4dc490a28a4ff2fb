package ports

import (
	"context"

	"github.com/gregsyu/task-manager/internal/core/domain"
)

type UserRepository interface {
	Insert(ctx context.Context, input domain.CreateUserInput) (domain.User, error)
	FindByID(ctx context.Context, id uint64) (domain.User, error)
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (domain.User, error)
	// Delete removes the user; all tasks owned by the user go with it.
	Delete(ctx context.Context, id uint64) error
}
