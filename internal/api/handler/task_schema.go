package handler

import "time"

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Status      string     `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

type listTasksQuery struct {
	Status   string `query:"status"   validate:"omitempty,oneof=pending in_progress completed"`
	Priority string `query:"priority" validate:"omitempty,oneof=low medium high"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type ownerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type taskResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Owner       ownerResponse `json:"owner"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listTasksResponse struct {
	Data       []taskResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type statCountResponse struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type taskStatsResponse struct {
	Total      int64               `json:"total"`
	ByStatus   []statCountResponse `json:"by_status"`
	ByPriority []statCountResponse `json:"by_priority"`
}

type activityItemResponse struct {
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type taskActivityResponse struct {
	TaskID string                 `json:"task_id"`
	Items  []activityItemResponse `json:"items"`
}
