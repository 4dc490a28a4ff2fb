package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gregsyu/task-manager/internal/core/domain"
	"github.com/gregsyu/task-manager/internal/core/ports"
)

const (
	insertTaskQuery = `
INSERT INTO tasks (title, description, status, priority, due_date, owner_id)
VALUES (?, ?, ?, ?, ?, ?);
`
	findTaskByIDQuery = `
SELECT * FROM tasks WHERE id = ?;
`
	findTaskByIDForUpdateQuery = `
SELECT * FROM tasks WHERE id = ? FOR UPDATE;
`
	deleteTaskQuery = `
DELETE FROM tasks WHERE id = ?;
`
)

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          uint64         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	Priority    string         `db:"priority"`
	DueDate     sql.NullTime   `db:"due_date"`
	OwnerID     uint64         `db:"owner_id"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Insert writes the row and reads it back in the same transaction, so the
// returned task cannot vanish between the two statements.
func (r *TaskRepository) Insert(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, insertTaskQuery,
		input.Title,
		input.Description,
		string(input.Status),
		string(input.Priority),
		input.DueDate,
		ownerID,
	)
	if err != nil {
		return domain.Task{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Task{}, err
	}

	var row taskRow
	if err := tx.GetContext(ctx, &row, findTaskByIDQuery, id); err != nil {
		return domain.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Task{}, err
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, findTaskByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uint64, filter ports.TaskFilter) ([]domain.Task, error) {
	query := "SELECT * FROM tasks WHERE owner_id = ?"
	args := []any{ownerID}

	if filter.Status != nil {
		query += " AND status = ?"
		args = append(args, string(*filter.Status))
	}

	// id breaks ties between tasks created within the same second.
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Skip)

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

// Update locks the row, re-checks existence and ownership, and applies the
// partial input, all inside one transaction. A concurrent delete of the same
// task therefore surfaces as ErrTaskNotFound, never a lost update.
func (r *TaskRepository) Update(ctx context.Context, id, ownerID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := lockTaskRow(ctx, tx, id, ownerID); err != nil {
		return domain.Task{}, err
	}

	assignments := make([]string, 0, 6)
	args := make([]any, 0, 7)

	if input.Title != nil {
		assignments = append(assignments, "title = ?")
		args = append(args, *input.Title)
	}
	if input.DescriptionSet {
		assignments = append(assignments, "description = ?")
		args = append(args, input.Description)
	}
	if input.Status != nil {
		assignments = append(assignments, "status = ?")
		args = append(args, string(*input.Status))
	}
	if input.Priority != nil {
		assignments = append(assignments, "priority = ?")
		args = append(args, string(*input.Priority))
	}
	if input.DueDateSet {
		assignments = append(assignments, "due_date = ?")
		args = append(args, input.DueDate)
	}

	if len(assignments) > 0 {
		assignments = append(assignments, "updated_at = ?")
		args = append(args, time.Now().UTC())

		query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(assignments, ", "))
		args = append(args, id)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return domain.Task{}, err
		}
	}

	var row taskRow
	if err := tx.GetContext(ctx, &row, findTaskByIDQuery, id); err != nil {
		return domain.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Task{}, err
	}

	return mapTaskRowToDomainTask(row), nil
}

// Delete re-checks existence and ownership under a row lock in the same
// transaction as the delete.
func (r *TaskRepository) Delete(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := lockTaskRow(ctx, tx, id, ownerID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, deleteTaskQuery, id); err != nil {
		return err
	}

	return tx.Commit()
}

func lockTaskRow(ctx context.Context, tx *sqlx.Tx, id, ownerID uint64) (taskRow, error) {
	var row taskRow
	if err := tx.GetContext(ctx, &row, findTaskByIDForUpdateQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return taskRow{}, domain.ErrTaskNotFound
		}
		return taskRow{}, err
	}

	if row.OwnerID != ownerID {
		return taskRow{}, domain.ErrTaskForbidden
	}

	return row, nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Status:    domain.TaskStatus(row.Status),
		Priority:  domain.TaskPriority(row.Priority),
		OwnerID:   row.OwnerID,
		CreatedAt: row.CreatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	if row.UpdatedAt.Valid {
		value := row.UpdatedAt.Time
		task.UpdatedAt = &value
	}

	return task
}
