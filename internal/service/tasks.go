package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-task-tracker/internal/models"
	"github.com/pribylovaa/go-task-tracker/internal/pkg/log"
	"github.com/pribylovaa/go-task-tracker/internal/queue"
	"github.com/pribylovaa/go-task-tracker/internal/storage"
)

// Действия пакетной обработки.
const (
	BatchActionComplete = "complete"
	BatchActionDelete   = "delete"
)

// CreateTaskParams — параметры создания задачи.
type CreateTaskParams struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// UpdateTaskParams — частичное обновление задачи: nil-поле не трогается.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	DueDate     *time.Time
}

// BatchItemResult — результат обработки одного элемента пакета.
type BatchItemResult struct {
	TaskID  uuid.UUID
	Success bool
	Error   string
}

// CreateTask создает задачу от имени actorID. Статус новой задачи — PENDING,
// приоритет по умолчанию — MEDIUM.
func (s *Service) CreateTask(ctx context.Context, actorID uuid.UUID, params CreateTaskParams) (*models.Task, error) {
	const op = "service.tasks.CreateTask"

	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	priority := params.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		Status:      models.TaskStatusPending,
		Priority:    priority,
		DueDate:     params.DueDate,
		UserID:      actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.enqueueTaskJob(ctx, queue.JobTaskStatusUpdate, task.ID, task.Status)

	log.From(ctx).Info("task_created",
		slog.String("op", op),
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", actorID.String()),
	)

	return task, nil
}

// TaskByID возвращает задачу по идентификатору.
func (s *Service) TaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	const op = "service.tasks.TaskByID"

	task, err := s.storage.TaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return task, nil
}

// ListTasks возвращает страницу задач и общее количество под фильтром.
// Нормализует пагинацию: page >= 1, 1 <= limit <= 100 (по умолчанию 10).
func (s *Service) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, int64, error) {
	const op = "service.tasks.ListTasks"

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, 0, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	tasks, total, err := s.storage.ListTasks(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return tasks, total, nil
}

// UpdateTask частично обновляет задачу. Смена статуса ставит задание
// task-status-update в очередь.
func (s *Service) UpdateTask(ctx context.Context, actorID, taskID uuid.UUID, params UpdateTaskParams) (*models.Task, error) {
	const op = "service.tasks.UpdateTask"

	task, err := s.taskForWrite(ctx, actorID, taskID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	statusChanged := false

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		task.Title = title
	}
	if params.Description != nil {
		task.Description = strings.TrimSpace(*params.Description)
	}
	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		statusChanged = task.Status != *params.Status
		task.Status = *params.Status
	}
	if params.Priority != nil {
		if !params.Priority.Valid() {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		task.Priority = *params.Priority
	}
	if params.DueDate != nil {
		task.DueDate = params.DueDate
	}

	task.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if statusChanged {
		s.enqueueTaskJob(ctx, queue.JobTaskStatusUpdate, task.ID, task.Status)
	}

	return task, nil
}

// UpdateTaskStatus меняет только статус задачи.
func (s *Service) UpdateTaskStatus(ctx context.Context, actorID, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	const op = "service.tasks.UpdateTaskStatus"

	task, err := s.UpdateTask(ctx, actorID, taskID, UpdateTaskParams{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return task, nil
}

// DeleteTask удаляет задачу.
func (s *Service) DeleteTask(ctx context.Context, actorID, taskID uuid.UUID) error {
	const op = "service.tasks.DeleteTask"

	if _, err := s.taskForWrite(ctx, actorID, taskID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("task_deleted",
		slog.String("op", op),
		slog.String("task_id", taskID.String()),
	)

	return nil
}

// BatchProcess применяет действие (complete|delete) к списку задач.
// Элементы обрабатываются независимо: ошибка одной задачи не прерывает
// обработку остальных, итог — по результату на элемент.
func (s *Service) BatchProcess(ctx context.Context, actorID uuid.UUID, taskIDs []uuid.UUID, action string) ([]BatchItemResult, error) {
	const op = "service.tasks.BatchProcess"

	if len(taskIDs) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if action != BatchActionComplete && action != BatchActionDelete {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	results := make([]BatchItemResult, 0, len(taskIDs))
	for _, id := range taskIDs {
		var err error
		switch action {
		case BatchActionComplete:
			_, err = s.UpdateTaskStatus(ctx, actorID, id, models.TaskStatusCompleted)
		case BatchActionDelete:
			err = s.DeleteTask(ctx, actorID, id)
		}

		res := BatchItemResult{TaskID: id, Success: err == nil}
		if err != nil {
			res.Error = batchErrorMessage(err)
		}

		results = append(results, res)
	}

	return results, nil
}

// TaskStatistics возвращает агрегаты по задачам.
func (s *Service) TaskStatistics(ctx context.Context) (*models.TaskStats, error) {
	const op = "service.tasks.TaskStatistics"

	stats, err := s.storage.TaskStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}

// SweepOverdue переводит просроченные PENDING-задачи в OVERDUE одним запросом
// и ставит задание task-overdue для каждой. Возвращает число помеченных задач.
func (s *Service) SweepOverdue(ctx context.Context) (int, error) {
	const op = "service.tasks.SweepOverdue"

	ids, err := s.storage.MarkOverdueTasks(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, id := range ids {
		s.enqueueTaskJob(ctx, queue.JobTaskOverdue, id, models.TaskStatusOverdue)
	}

	if len(ids) > 0 {
		log.From(ctx).Info("overdue_sweep",
			slog.String("op", op),
			slog.Int("marked", len(ids)),
		)
	}

	return len(ids), nil
}

// taskForWrite поднимает задачу и проверяет право на запись:
// владелец или администратор.
func (s *Service) taskForWrite(ctx context.Context, actorID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.storage.TaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	if err := s.authorizeSelfOrAdmin(ctx, actorID, task.UserID); err != nil {
		return nil, err
	}

	return task, nil
}

// enqueueTaskJob ставит задание в очередь, если очередь сконфигурирована.
// Ошибка очереди не проваливает мутацию задачи: задание вторично
// по отношению к записи в БД, факт потери фиксируется в логе.
func (s *Service) enqueueTaskJob(ctx context.Context, jobType string, taskID uuid.UUID, status models.TaskStatus) {
	if s.jobs == nil {
		return
	}

	job, err := queue.NewJob(jobType, queue.TaskJobPayload{
		TaskID: taskID.String(),
		Status: string(status),
	})
	if err != nil {
		log.From(ctx).Error("job_marshal_failed",
			slog.String("type", jobType),
			slog.String("err", err.Error()),
		)
		return
	}

	if err := s.jobs.Enqueue(ctx, job); err != nil {
		log.From(ctx).Error("job_enqueue_failed",
			slog.String("type", jobType),
			slog.String("task_id", taskID.String()),
			slog.String("err", err.Error()),
		)
	}
}

// batchErrorMessage переводит ошибку элемента пакета в короткий код для ответа.
func batchErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "internal"
	}
}
