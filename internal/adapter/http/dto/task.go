package dto

type TaskItem struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date,omitempty"`
	OwnerID     uint64  `json:"owner_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}

// Status and priority are deliberately unconstrained here; enum membership
// is checked by the service so a bad value comes back as 422 naming the
// field instead of a generic binding failure.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type ListTasksQuery struct {
	Status *string `form:"status"`
	Skip   int     `form:"skip,default=0" binding:"gte=0"`
	Limit  int     `form:"limit,default=20" binding:"gte=1,lte=100"`
}
