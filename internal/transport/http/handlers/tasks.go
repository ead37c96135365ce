package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-task-tracker/internal/models"
	"github.com/pribylovaa/go-task-tracker/internal/service"
	apierrors "github.com/pribylovaa/go-task-tracker/internal/transport/http/errors"
)

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status"`
}

type batchRequest struct {
	TaskIDs []string `json:"task_ids"`
	Action  string   `json:"action"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type taskListResponse struct {
	Tasks []taskResponse `json:"tasks"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type batchItemResponse struct {
	TaskID  string `json:"task_id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type taskStatsResponse struct {
	Total          int64 `json:"total"`
	Completed      int64 `json:"completed"`
	InProgress     int64 `json:"in_progress"`
	Pending        int64 `json:"pending"`
	Overdue        int64 `json:"overdue"`
	HighPriority   int64 `json:"high_priority"`
	MediumPriority int64 `json:"medium_priority"`
	LowPriority    int64 `json:"low_priority"`
}

func taskFromModel(t *models.Task) taskResponse {
	return taskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		UserID:      t.UserID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	var in createTaskRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	task, err := h.svc.CreateTask(r.Context(), actor, service.CreateTaskParams{
		Title:       in.Title,
		Description: in.Description,
		Priority:    models.TaskPriority(in.Priority),
		DueDate:     in.DueDate,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, taskFromModel(task))
}

func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	task, err := h.svc.TaskByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, taskFromModel(task))
}

func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.TaskFilter{
		Status:   models.TaskStatus(q.Get("status")),
		Priority: models.TaskPriority(q.Get("priority")),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	tasks, total, err := h.svc.ListTasks(r.Context(), filter)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := taskListResponse{
		Tasks: make([]taskResponse, 0, len(tasks)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	if out.Page < 1 {
		out.Page = 1
	}
	if out.Limit < 1 {
		out.Limit = 10
	}
	for i := range tasks {
		out.Tasks = append(out.Tasks, taskFromModel(&tasks[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	var in updateTaskRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	params := service.UpdateTaskParams{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
	}
	if in.Status != nil {
		status := models.TaskStatus(*in.Status)
		params.Status = &status
	}
	if in.Priority != nil {
		priority := models.TaskPriority(*in.Priority)
		params.Priority = &priority
	}

	task, err := h.svc.UpdateTask(r.Context(), actor, id, params)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, taskFromModel(task))
}

func (h *Handlers) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	var in updateTaskStatusRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	task, err := h.svc.UpdateTaskStatus(r.Context(), actor, id, models.TaskStatus(in.Status))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, taskFromModel(task))
}

func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.svc.DeleteTask(r.Context(), actor, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) BatchProcess(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	var in batchRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	ids := make([]uuid.UUID, 0, len(in.TaskIDs))
	for _, raw := range in.TaskIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			apierrors.WriteError(w, r, service.ErrInvalidArgument)
			return
		}
		ids = append(ids, id)
	}

	results, err := h.svc.BatchProcess(r.Context(), actor, ids, in.Action)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]batchItemResponse, 0, len(results))
	for _, res := range results {
		out = append(out, batchItemResponse{
			TaskID:  res.TaskID.String(),
			Success: res.Success,
			Error:   res.Error,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

func (h *Handlers) TaskStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.TaskStatistics(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, taskStatsResponse{
		Total:          stats.Total,
		Completed:      stats.Completed,
		InProgress:     stats.InProgress,
		Pending:        stats.Pending,
		Overdue:        stats.Overdue,
		HighPriority:   stats.HighPriority,
		MediumPriority: stats.MediumPriority,
		LowPriority:    stats.LowPriority,
	})
}
