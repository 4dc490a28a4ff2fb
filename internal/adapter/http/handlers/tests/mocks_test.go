package tests

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gregsyu/task-manager/internal/core/domain"
	"github.com/gregsyu/task-manager/internal/core/ports"
)

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, usernameOrEmail, password string) (string, error) {
	args := m.Called(ctx, usernameOrEmail, password)
	return args.String(0), args.Error(1)
}

func (m *authServiceMock) Authenticate(ctx context.Context, token string) (domain.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.User), args.Error(1)
}

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, requesterID, taskID uint64) (domain.Task, error) {
	args := m.Called(ctx, requesterID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, requesterID uint64, filter ports.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, requesterID, filter)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, requesterID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, requesterID, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, requesterID, taskID uint64) error {
	args := m.Called(ctx, requesterID, taskID)
	return args.Error(0)
}

var (
	_ ports.AuthService = (*authServiceMock)(nil)
	_ ports.TaskService = (*taskServiceMock)(nil)
)
