package handler

import (
	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
}

func toUpdateInput(req updateTaskRequest) ports.UpdateTaskInput {
	return ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
}

// --- Domain → HTTP response ---

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Owner:       ownerResponse{ID: t.Owner.ID, Email: t.Owner.Email},
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func toListResponse(r *ports.ListTasksResult) listTasksResponse {
	items := make([]taskResponse, len(r.Items))
	for i, t := range r.Items {
		items[i] = toTaskResponse(t)
	}
	return listTasksResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toStatsResponse(s *ports.TaskStats) taskStatsResponse {
	return taskStatsResponse{
		Total:      s.Total,
		ByStatus:   toStatCounts(s.ByStatus),
		ByPriority: toStatCounts(s.ByPriority),
	}
}

func toStatCounts(in []ports.StatusCount) []statCountResponse {
	out := make([]statCountResponse, len(in))
	for i, c := range in {
		out[i] = statCountResponse{Key: c.Key, Count: c.Count}
	}
	return out
}

func toActivityResponse(taskID string, items []*domain.TaskActivity) taskActivityResponse {
	out := make([]activityItemResponse, len(items))
	for i, a := range items {
		out[i] = activityItemResponse{
			Action:    a.Action,
			ActorID:   a.ActorID,
			Detail:    a.Detail,
			Timestamp: a.Timestamp.UTC(),
		}
	}
	return taskActivityResponse{TaskID: taskID, Items: out}
}
