package ports

import (
	"context"

	"github.com/gregsyu/task-manager/internal/core/domain"
)

// TaskFilter narrows and pages a per-owner task listing. Skip and Limit are
// validated at the HTTP boundary (skip >= 0, 1 <= limit <= 100).
type TaskFilter struct {
	Status *domain.TaskStatus
	Skip   int
	Limit  int
}

type TaskRepository interface {
	Insert(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error)
	FindByID(ctx context.Context, id uint64) (domain.Task, error)
	ListByOwner(ctx context.Context, ownerID uint64, filter TaskFilter) ([]domain.Task, error)
	// Update applies the partial input and re-checks existence and ownership
	// inside the same transaction as the mutation.
	Update(ctx context.Context, id, ownerID uint64, input domain.UpdateTaskInput) (domain.Task, error)
	Delete(ctx context.Context, id, ownerID uint64) error
}

type TaskService interface {
	CreateTask(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, requesterID, taskID uint64) (domain.Task, error)
	ListTasks(ctx context.Context, requesterID uint64, filter TaskFilter) ([]domain.Task, error)
	UpdateTask(ctx context.Context, requesterID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, requesterID, taskID uint64) error
}
