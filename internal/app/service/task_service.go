package service

import (
	"context"
	"unicode/utf8"

	"github.com/gregsyu/task-manager/internal/core/domain"
	"github.com/gregsyu/task-manager/internal/core/ports"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
)

type TaskService struct {
	taskRepository ports.TaskRepository
}

var _ ports.TaskService = (*TaskService)(nil)

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository}
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	if input.Status == "" {
		input.Status = domain.TaskStatusPending
	}
	if input.Priority == "" {
		input.Priority = domain.TaskPriorityMedium
	}

	// Column widths are utf8mb4, so bounds count runes rather than bytes.
	if input.Title == "" || utf8.RuneCountInString(input.Title) > maxTitleLength {
		return domain.Task{}, &domain.InvalidFieldError{Field: "title"}
	}
	if input.Description != nil && utf8.RuneCountInString(*input.Description) > maxDescriptionLength {
		return domain.Task{}, &domain.InvalidFieldError{Field: "description"}
	}
	if !input.Status.Valid() {
		return domain.Task{}, &domain.InvalidFieldError{Field: "status"}
	}
	if !input.Priority.Valid() {
		return domain.Task{}, &domain.InvalidFieldError{Field: "priority"}
	}

	return s.taskRepository.Insert(ctx, ownerID, input)
}

// GetTask checks existence before ownership, so a missing task is 404 and a
// foreign task is 403.
func (s *TaskService) GetTask(ctx context.Context, requesterID, taskID uint64) (domain.Task, error) {
	task, err := s.taskRepository.FindByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	if task.OwnerID != requesterID {
		return domain.Task{}, domain.ErrTaskForbidden
	}

	return task, nil
}

// ListTasks is always scoped to the requester; the filter cannot widen it.
func (s *TaskService) ListTasks(ctx context.Context, requesterID uint64, filter ports.TaskFilter) ([]domain.Task, error) {
	return s.taskRepository.ListByOwner(ctx, requesterID, filter)
}

// UpdateTask resolves existence and ownership before validating the payload,
// so a missing or foreign task wins over a malformed field. The whole partial
// payload is then validated before touching the store, and the repository
// re-checks ownership under lock, so an invalid field leaves the task
// completely unchanged.
func (s *TaskService) UpdateTask(ctx context.Context, requesterID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	task, err := s.GetTask(ctx, requesterID, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	if input.Empty() {
		return task, nil
	}

	if err := validateUpdateInput(input); err != nil {
		return domain.Task{}, err
	}

	return s.taskRepository.Update(ctx, taskID, requesterID, input)
}

func (s *TaskService) DeleteTask(ctx context.Context, requesterID, taskID uint64) error {
	return s.taskRepository.Delete(ctx, taskID, requesterID)
}

func validateUpdateInput(input domain.UpdateTaskInput) error {
	if input.Title != nil && (*input.Title == "" || utf8.RuneCountInString(*input.Title) > maxTitleLength) {
		return &domain.InvalidFieldError{Field: "title"}
	}
	if input.DescriptionSet && input.Description != nil && utf8.RuneCountInString(*input.Description) > maxDescriptionLength {
		return &domain.InvalidFieldError{Field: "description"}
	}
	if input.Status != nil && !input.Status.Valid() {
		return &domain.InvalidFieldError{Field: "status"}
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return &domain.InvalidFieldError{Field: "priority"}
	}
	return nil
}
