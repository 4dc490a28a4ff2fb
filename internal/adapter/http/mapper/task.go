package mapper

import (
	"time"

	"github.com/gregsyu/task-manager/internal/adapter/http/dto"
	"github.com/gregsyu/task-manager/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		Status:    string(task.Status),
		Priority:  string(task.Priority),
		OwnerID:   task.OwnerID,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(time.RFC3339)
		item.DueDate = &value
	}

	if task.UpdatedAt != nil {
		value := task.UpdatedAt.Format(time.RFC3339)
		item.UpdatedAt = &value
	}

	return item
}
